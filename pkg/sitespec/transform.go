package sitespec

import (
	"fmt"
	"time"

	"github.com/sitesmith-inc/sitesmith-engine/pkg/jsonutil"
)

// DefaultYearlyPriceMultiplier derives a yearly price from a monthly one
// (two months free). Configurable because the heuristic is a product
// default, not a law.
const DefaultYearlyPriceMultiplier = 10

const defaultReviewRating = 5

// storageTypes maps generation-time type names to the storage type names the
// renderer expects. Types not listed here keep their name.
var storageTypes = map[string]string{
	TypeContact: "contact-form",
	TypeText:    "content-block",
	TypeGallery: "image-gallery",
}

// TransformedBlock is the storage/render shape of one component. Content
// only ever contains fields the target renderer knows for the block's type;
// passthrough blocks carry their original props verbatim.
type TransformedBlock struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Content map[string]any `json:"content"`
}

// Transformer maps validated components to renderer-shaped blocks. It is a
// pure mapping except for the timestamp folded into block IDs.
type Transformer struct {
	yearlyMultiplier int
	now              func() time.Time
}

// NewTransformer creates a Transformer. A non-positive multiplier selects
// the default.
func NewTransformer(yearlyMultiplier int) *Transformer {
	if yearlyMultiplier <= 0 {
		yearlyMultiplier = DefaultYearlyPriceMultiplier
	}
	return &Transformer{
		yearlyMultiplier: yearlyMultiplier,
		now:              time.Now,
	}
}

// Transform maps each component into its storage shape. It never fails:
// unrecognized components pass their props through unchanged. Block IDs are
// unique within a document by construction (shared timestamp + ordinal).
func (t *Transformer) Transform(components []ComponentSpec) []TransformedBlock {
	stamp := t.now().UnixMilli()

	blocks := make([]TransformedBlock, 0, len(components))
	for i, component := range components {
		storageType := component.Type
		if mapped, ok := storageTypes[component.Type]; ok {
			storageType = mapped
		}

		blocks = append(blocks, TransformedBlock{
			ID:      fmt.Sprintf("%s-%d-%d", storageType, stamp, i),
			Type:    storageType,
			Content: t.reshape(component),
		})
	}

	return blocks
}

func (t *Transformer) reshape(c ComponentSpec) map[string]any {
	if !c.Recognized {
		return cloneProps(c.Props)
	}

	switch c.Type {
	case TypeHero:
		return t.reshapeHero(c.Props)
	case TypeFeatures:
		return t.reshapeFeatures(c.Props)
	case TypePricing:
		return t.reshapePricing(c.Props)
	case TypeTestimonials:
		return t.reshapeTestimonials(c.Props)
	case TypeFAQ:
		return t.reshapeFAQ(c.Props)
	case TypeContact:
		return t.reshapeContact(c.Props)
	case TypeText:
		return t.reshapeText(c.Props)
	case TypeGallery:
		return t.reshapeGallery(c.Props)
	default:
		return cloneProps(c.Props)
	}
}

func (t *Transformer) reshapeHero(props map[string]any) map[string]any {
	content := map[string]any{
		"title": jsonutil.CoerceString(props["title"]),
	}
	if subtitle := jsonutil.CoerceString(props["subtitle"]); subtitle != "" {
		content["subtitle"] = subtitle
	}

	// ctaText/ctaLink collapse into a single-element action list with the
	// default visual variant.
	if label := jsonutil.CoerceString(props["ctaText"]); label != "" {
		href := jsonutil.CoerceString(props["ctaLink"])
		if href == "" {
			href = "#"
		}
		content["actions"] = []map[string]any{
			{"label": label, "href": href, "variant": "primary"},
		}
	}

	return content
}

func (t *Transformer) reshapeFeatures(props map[string]any) map[string]any {
	items := make([]map[string]any, 0)
	for _, raw := range toAnySlice(props["features"]) {
		switch feature := raw.(type) {
		case string:
			items = append(items, map[string]any{"title": feature})
		case map[string]any:
			item := map[string]any{
				"title": jsonutil.CoerceString(feature["title"]),
			}
			if desc := jsonutil.CoerceString(feature["description"]); desc != "" {
				item["description"] = desc
			}
			if icon := jsonutil.CoerceString(feature["icon"]); icon != "" {
				item["icon"] = icon
			}
			items = append(items, item)
		}
	}

	content := map[string]any{
		"title": jsonutil.CoerceString(props["title"]),
		"items": items,
	}
	if subtitle := jsonutil.CoerceString(props["subtitle"]); subtitle != "" {
		content["subtitle"] = subtitle
	}
	return content
}

func (t *Transformer) reshapePricing(props map[string]any) map[string]any {
	plans := make([]map[string]any, 0)
	for _, raw := range jsonutil.CoerceMapSlice(props["plans"]) {
		monthly := jsonutil.CoerceInt(firstPresent(raw, "price", "monthlyPrice"), 0)
		plan := map[string]any{
			"name":         jsonutil.CoerceString(raw["name"]),
			"monthlyPrice": monthly,
			"yearlyPrice":  monthly * t.yearlyMultiplier,
			"features":     jsonutil.CoerceStringSlice(raw["features"]),
		}
		if highlighted, ok := raw["highlighted"].(bool); ok && highlighted {
			plan["highlighted"] = true
		}
		plans = append(plans, plan)
	}

	return map[string]any{
		"title": jsonutil.CoerceString(props["title"]),
		"plans": plans,
	}
}

func (t *Transformer) reshapeTestimonials(props map[string]any) map[string]any {
	reviews := make([]map[string]any, 0)
	for _, raw := range jsonutil.CoerceMapSlice(props["testimonials"]) {
		review := map[string]any{
			"author": jsonutil.CoerceString(firstPresent(raw, "name", "author")),
			"quote":  jsonutil.CoerceString(firstPresent(raw, "quote", "text")),
			"rating": jsonutil.CoerceInt(raw["rating"], defaultReviewRating),
		}
		if role := jsonutil.CoerceString(firstPresent(raw, "role", "title")); role != "" {
			review["role"] = role
		}
		reviews = append(reviews, review)
	}

	return map[string]any{
		"title":   jsonutil.CoerceString(props["title"]),
		"reviews": reviews,
	}
}

func (t *Transformer) reshapeFAQ(props map[string]any) map[string]any {
	items := make([]map[string]any, 0)
	for _, raw := range jsonutil.CoerceMapSlice(props["questions"]) {
		items = append(items, map[string]any{
			"question": jsonutil.CoerceString(raw["question"]),
			"answer":   jsonutil.CoerceString(raw["answer"]),
		})
	}

	return map[string]any{
		"title": jsonutil.CoerceString(props["title"]),
		"items": items,
	}
}

func (t *Transformer) reshapeContact(props map[string]any) map[string]any {
	content := map[string]any{
		"title": jsonutil.CoerceString(props["title"]),
	}
	if desc := jsonutil.CoerceString(props["description"]); desc != "" {
		content["description"] = desc
	}
	if email := jsonutil.CoerceString(props["email"]); email != "" {
		content["email"] = email
	}
	if phone := jsonutil.CoerceString(props["phone"]); phone != "" {
		content["phone"] = phone
	}
	return content
}

func (t *Transformer) reshapeText(props map[string]any) map[string]any {
	return map[string]any{
		"title": jsonutil.CoerceString(props["title"]),
		"body":  jsonutil.CoerceString(props["content"]),
	}
}

func (t *Transformer) reshapeGallery(props map[string]any) map[string]any {
	images := make([]map[string]any, 0)
	for _, raw := range toAnySlice(props["images"]) {
		switch image := raw.(type) {
		case string:
			images = append(images, map[string]any{"src": image, "alt": ""})
		case map[string]any:
			images = append(images, map[string]any{
				"src": jsonutil.CoerceString(firstPresent(image, "src", "url", "image")),
				"alt": jsonutil.CoerceString(firstPresent(image, "alt", "caption")),
			})
		}
	}

	return map[string]any{
		"title":  jsonutil.CoerceString(props["title"]),
		"images": images,
	}
}

func toAnySlice(v any) []any {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	return arr
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func cloneProps(props map[string]any) map[string]any {
	clone := make(map[string]any, len(props))
	for k, v := range props {
		clone[k] = v
	}
	return clone
}
