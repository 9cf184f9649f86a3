package sitespec

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/sitesmith-inc/sitesmith-engine/pkg/apperrors"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/jsonutil"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/sanitize"
)

const (
	SubdomainMinLen   = 3
	SubdomainMaxLen   = 30
	DescriptionMaxLen = 160
	MinComponents     = 3
	MaxComponents     = 8

	// DefaultPrimaryColor is used when the generator returns something that
	// is not a hex color ("blue", "brand", ...).
	DefaultPrimaryColor = "#4F46E5"

	defaultIndustry = "general"
)

var (
	subdomainPattern = regexp.MustCompile(`^[a-z0-9-]{3,30}$`)
	hexColorPattern  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// rawDocument defers field decoding so scalar type confusion from the
// generator (numbers for strings etc.) can be coerced instead of failing
// the whole unmarshal.
type rawDocument struct {
	Name         json.RawMessage `json:"name"`
	Subdomain    json.RawMessage `json:"subdomain"`
	Description  json.RawMessage `json:"description"`
	Industry     json.RawMessage `json:"industry"`
	PrimaryColor json.RawMessage `json:"primaryColor"`
	Components   json.RawMessage `json:"components"`
}

type rawComponent struct {
	Type  json.RawMessage `json:"type"`
	Props map[string]any  `json:"props"`
}

// Validate parses sanitized JSON text and checks it against the recognized
// document shape, returning the fully typed SiteSpec or a precise failure.
// A document is never partially accepted: the first field-level violation
// aborts validation.
func Validate(text string) (*SiteSpec, error) {
	var doc rawDocument
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		// One wider repair attempt: strip every control character from the
		// whole input, then declare ParseFailed if it still will not parse.
		repaired := sanitize.StripControlChars(text)
		if err2 := json.Unmarshal([]byte(repaired), &doc); err2 != nil {
			return nil, parseError(err2)
		}
	}

	spec := &SiteSpec{}

	name := strings.TrimSpace(jsonutil.FlexibleStringValue(doc.Name))
	if name == "" {
		return nil, NewFieldError("name", "required")
	}
	spec.Name = name

	subdomain, err := normalizeSubdomain(jsonutil.FlexibleStringValue(doc.Subdomain))
	if err != nil {
		return nil, err
	}
	spec.Subdomain = subdomain

	if len(doc.Description) == 0 {
		return nil, NewFieldError("description", "required")
	}
	spec.Description = truncateRunes(strings.TrimSpace(jsonutil.FlexibleStringValue(doc.Description)), DescriptionMaxLen)

	if len(doc.Industry) == 0 {
		return nil, NewFieldError("industry", "required")
	}
	spec.Industry = strings.TrimSpace(strings.ToLower(jsonutil.FlexibleStringValue(doc.Industry)))
	if spec.Industry == "" {
		spec.Industry = defaultIndustry
	}

	if len(doc.PrimaryColor) == 0 {
		return nil, NewFieldError("primaryColor", "required")
	}
	spec.PrimaryColor = normalizeHexColor(jsonutil.FlexibleStringValue(doc.PrimaryColor))

	components, err := validateComponents(doc.Components)
	if err != nil {
		return nil, err
	}
	spec.Components = components

	return spec, nil
}

func validateComponents(raw json.RawMessage) ([]ComponentSpec, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, apperrors.ErrMissingComponents
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, apperrors.ErrInvalidComponentsType
	}
	if len(elements) == 0 {
		return nil, apperrors.ErrMissingComponents
	}
	// The leading hero requirement outranks every other component check,
	// including the count bound and the first component's own prop errors.
	// Only the type tag is needed to decide it.
	if componentTypeTag(elements[0]) != TypeHero {
		return nil, apperrors.ErrMissingHero
	}
	if len(elements) < MinComponents {
		return nil, NewFieldError("components", "expected at least 3 components")
	}
	// Over-generation is clipped rather than rejected.
	if len(elements) > MaxComponents {
		elements = elements[:MaxComponents]
	}

	components := make([]ComponentSpec, 0, len(elements))
	for i, element := range elements {
		component, err := validateComponent(i, element)
		if err != nil {
			return nil, err
		}
		components = append(components, *component)
	}

	return components, nil
}

// componentTypeTag extracts the normalized type tag of a component element.
// Undecodable elements yield an empty tag.
func componentTypeTag(raw json.RawMessage) string {
	var rc rawComponent
	if err := json.Unmarshal(raw, &rc); err != nil {
		return ""
	}
	return strings.TrimSpace(strings.ToLower(jsonutil.FlexibleStringValue(rc.Type)))
}

func validateComponent(index int, raw json.RawMessage) (*ComponentSpec, error) {
	path := componentPath(index)

	var rc rawComponent
	if err := json.Unmarshal(raw, &rc); err != nil {
		return nil, NewFieldError(path, "not an object")
	}

	typ := strings.TrimSpace(strings.ToLower(jsonutil.FlexibleStringValue(rc.Type)))
	if typ == "" {
		return nil, NewFieldError(path+".type", "required")
	}

	props := rc.Props
	if props == nil {
		props = map[string]any{}
	}

	required, recognized := requiredProps[typ]
	if !recognized {
		// Passthrough variant: kept verbatim for forward compatibility.
		return &ComponentSpec{Type: typ, Recognized: false, Props: props}, nil
	}

	for _, req := range required {
		value, present := props[req.name]
		if !present || value == nil {
			return nil, NewFieldError(path+".props."+req.name, "required")
		}
		switch req.kind {
		case kindScalar:
			switch value.(type) {
			case string, float64, bool:
			default:
				return nil, NewFieldError(path+".props."+req.name, "expected a scalar value")
			}
		case kindArray:
			if _, ok := value.([]any); !ok {
				return nil, NewFieldError(path+".props."+req.name, "expected an array")
			}
		}
	}

	return &ComponentSpec{Type: typ, Recognized: true, Props: props}, nil
}

func componentPath(index int) string {
	return "components[" + strconv.Itoa(index) + "]"
}

// normalizeSubdomain lowercases the requested subdomain, maps separators to
// hyphens, drops everything else outside [a-z0-9-], and enforces the length
// bounds. The result always matches the subdomain pattern or an error is
// returned.
func normalizeSubdomain(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || unicode.IsSpace(r):
			b.WriteByte('-')
		}
	}

	normalized := collapseHyphens(b.String())
	if len(normalized) > SubdomainMaxLen {
		normalized = strings.Trim(normalized[:SubdomainMaxLen], "-")
	}
	if !subdomainPattern.MatchString(normalized) {
		return "", NewFieldError("subdomain", "must match [a-z0-9-]{3,30}")
	}
	return normalized, nil
}

func collapseHyphens(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

func normalizeHexColor(s string) string {
	s = strings.TrimSpace(s)
	if s != "" && s[0] != '#' {
		s = "#" + s
	}
	if !hexColorPattern.MatchString(s) {
		return DefaultPrimaryColor
	}
	return strings.ToUpper(s)
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func parseError(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{Offset: syntaxErr.Offset, Err: err}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &ParseError{Offset: typeErr.Offset, Err: err}
	}
	return &ParseError{Err: err}
}
