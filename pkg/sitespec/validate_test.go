package sitespec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitesmith-inc/sitesmith-engine/pkg/apperrors"
)

const validDoc = `{
	"name": "Luxury Pet Hotel",
	"subdomain": "luxury-pet-hotel",
	"description": "A luxury pet hotel in Dubai.",
	"industry": "Hospitality",
	"primaryColor": "#C8A24B",
	"components": [
		{"type": "hero", "props": {"title": "Five-star stays for your pet", "subtitle": "Dubai", "ctaText": "Book now", "ctaLink": "/contact"}},
		{"type": "features", "props": {"title": "Why us", "features": ["Grooming", "Spa", "24/7 care"]}},
		{"type": "testimonials", "props": {"title": "Happy owners", "testimonials": [{"name": "Aisha", "quote": "Wonderful!"}]}},
		{"type": "contact", "props": {"title": "Get in touch", "email": "stay@example.com"}}
	]
}`

func TestValidate_FullDocument(t *testing.T) {
	spec, err := Validate(validDoc)
	require.NoError(t, err)

	assert.Equal(t, "Luxury Pet Hotel", spec.Name)
	assert.Equal(t, "luxury-pet-hotel", spec.Subdomain)
	assert.Equal(t, "hospitality", spec.Industry)
	assert.Equal(t, "#C8A24B", spec.PrimaryColor)
	require.Len(t, spec.Components, 4)
	assert.Equal(t, TypeHero, spec.Components[0].Type)
	assert.True(t, spec.Components[0].Recognized)
}

func TestValidate_ParseFailure(t *testing.T) {
	_, err := Validate(`{"name": "x", "components": [}`)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Greater(t, parseErr.Offset, int64(0))
}

func TestValidate_SecondRepairPassRecovers(t *testing.T) {
	// A control character outside string context defeats the first parse but
	// is removed by the wider second pass.
	doc := strings.Replace(validDoc, `"name":`, "\"name\":\x01", 1)
	spec, err := Validate(doc)
	require.NoError(t, err)
	assert.Equal(t, "Luxury Pet Hotel", spec.Name)
}

func TestValidate_MissingTopLevelFields(t *testing.T) {
	cases := []struct {
		name  string
		field string
	}{
		{"name", "name"},
		{"subdomain", "subdomain"},
		{"description", "description"},
		{"industry", "industry"},
		{"primaryColor", "primaryColor"},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			doc := strings.Replace(validDoc, `"`+tc.field+`":`, `"`+tc.field+`_gone":`, 1)
			_, err := Validate(doc)

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tc.field, fieldErr.Path)
		})
	}
}

func TestValidate_MissingComponents(t *testing.T) {
	_, err := Validate(`{"name":"x","subdomain":"abc","description":"d","industry":"i","primaryColor":"#fff"}`)
	assert.ErrorIs(t, err, apperrors.ErrMissingComponents)

	_, err = Validate(`{"name":"x","subdomain":"abc","description":"d","industry":"i","primaryColor":"#fff","components":[]}`)
	assert.ErrorIs(t, err, apperrors.ErrMissingComponents)
}

func TestValidate_ComponentsNotAnArray(t *testing.T) {
	_, err := Validate(`{"name":"x","subdomain":"abc","description":"d","industry":"i","primaryColor":"#fff","components":"hero"}`)
	assert.ErrorIs(t, err, apperrors.ErrInvalidComponentsType)
}

func TestValidate_MissingHero(t *testing.T) {
	doc := strings.Replace(validDoc, `{"type": "hero"`, `{"type": "features2"`, 1)
	doc = strings.Replace(doc, `"props": {"title": "Five-star stays for your pet", "subtitle": "Dubai", "ctaText": "Book now", "ctaLink": "/contact"}`,
		`"props": {"title": "First"}`, 1)
	_, err := Validate(doc)
	assert.ErrorIs(t, err, apperrors.ErrMissingHero)
}

func TestValidate_FirstComponentFeaturesIsMissingHero(t *testing.T) {
	doc := `{
		"name": "x", "subdomain": "abc", "description": "d", "industry": "i", "primaryColor": "#fff",
		"components": [
			{"type": "features", "props": {"title": "t", "features": []}},
			{"type": "hero", "props": {"title": "t"}},
			{"type": "contact", "props": {"title": "t"}}
		]
	}`
	_, err := Validate(doc)
	assert.ErrorIs(t, err, apperrors.ErrMissingHero)
}

func TestValidate_MissingHeroOutranksCountCheck(t *testing.T) {
	doc := `{
		"name": "x", "subdomain": "abc", "description": "d", "industry": "i", "primaryColor": "#fff",
		"components": [
			{"type": "features", "props": {"title": "t", "features": []}}
		]
	}`
	_, err := Validate(doc)
	assert.ErrorIs(t, err, apperrors.ErrMissingHero)
}

func TestValidate_MissingHeroOutranksFirstComponentPropErrors(t *testing.T) {
	doc := `{
		"name": "x", "subdomain": "abc", "description": "d", "industry": "i", "primaryColor": "#fff",
		"components": [
			{"type": "features", "props": {}},
			{"type": "hero", "props": {"title": "t"}},
			{"type": "contact", "props": {"title": "t"}}
		]
	}`
	_, err := Validate(doc)
	assert.ErrorIs(t, err, apperrors.ErrMissingHero)
}

func TestValidate_UnknownTypePassesThrough(t *testing.T) {
	doc := strings.Replace(validDoc, `{"type": "contact", "props": {"title": "Get in touch", "email": "stay@example.com"}}`,
		`{"type": "countdown", "props": {"until": "2027-01-01"}}`, 1)
	spec, err := Validate(doc)
	require.NoError(t, err)

	last := spec.Components[3]
	assert.Equal(t, "countdown", last.Type)
	assert.False(t, last.Recognized)
	assert.Equal(t, "2027-01-01", last.Props["until"])
}

func TestValidate_MissingRequiredProp(t *testing.T) {
	doc := strings.Replace(validDoc, `"props": {"title": "Why us", "features": ["Grooming", "Spa", "24/7 care"]}`,
		`"props": {"title": "Why us"}`, 1)
	_, err := Validate(doc)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "components[1].props.features", fieldErr.Path)
}

func TestValidate_WrongPropKind(t *testing.T) {
	doc := strings.Replace(validDoc, `"features": ["Grooming", "Spa", "24/7 care"]`, `"features": "Grooming"`, 1)
	_, err := Validate(doc)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "components[1].props.features", fieldErr.Path)
}

func TestValidate_TooFewComponents(t *testing.T) {
	doc := `{
		"name": "x", "subdomain": "abc", "description": "d", "industry": "i", "primaryColor": "#fff",
		"components": [
			{"type": "hero", "props": {"title": "t"}},
			{"type": "contact", "props": {"title": "t"}}
		]
	}`
	_, err := Validate(doc)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "components", fieldErr.Path)
}

func TestValidate_SubdomainNormalization(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"Luxury Pet Hotel", "luxury-pet-hotel"},
		{"my_site", "my-site"},
		{"--edge--case--", "edge-case"},
		{"CAFÉ-corner", "caf-corner"},
	}
	for _, tc := range cases {
		got, err := normalizeSubdomain(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.expected, got)
	}
}

func TestValidate_SubdomainTooShort(t *testing.T) {
	_, err := normalizeSubdomain("!!")
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "subdomain", fieldErr.Path)
}

func TestValidate_SubdomainTruncatedToMax(t *testing.T) {
	got, err := normalizeSubdomain(strings.Repeat("a", 50))
	require.NoError(t, err)
	assert.Len(t, got, SubdomainMaxLen)
}

func TestValidate_DescriptionTruncated(t *testing.T) {
	doc := strings.Replace(validDoc, "A luxury pet hotel in Dubai.", strings.Repeat("x", 400), 1)
	spec, err := Validate(doc)
	require.NoError(t, err)
	assert.Len(t, spec.Description, DescriptionMaxLen)
}

func TestValidate_NonHexColorDefaults(t *testing.T) {
	doc := strings.Replace(validDoc, "#C8A24B", "gold", 1)
	spec, err := Validate(doc)
	require.NoError(t, err)
	assert.Equal(t, DefaultPrimaryColor, spec.PrimaryColor)
}

func TestValidate_HexColorWithoutHash(t *testing.T) {
	assert.Equal(t, "#AABBCC", normalizeHexColor("aabbcc"))
	assert.Equal(t, "#FFF", normalizeHexColor("#fff"))
}

func TestValidate_ScalarCoercion(t *testing.T) {
	// Generators confuse numbers and strings; the validator coerces scalars.
	doc := strings.Replace(validDoc, `"name": "Luxury Pet Hotel"`, `"name": 42`, 1)
	spec, err := Validate(doc)
	require.NoError(t, err)
	assert.Equal(t, "42", spec.Name)
}

func TestValidate_NeverPanicsOnHostileShapes(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"components": [1, 2, 3]}`,
		`{"name": {}, "subdomain": [], "description": 1, "industry": 2, "primaryColor": 3, "components": [{}]}`,
		`{"name":"x","subdomain":"abc","description":"d","industry":"i","primaryColor":"#fff","components":[null,null,null]}`,
	}
	for _, input := range inputs {
		_, err := Validate(input)
		assert.Error(t, err, input)
	}
}

func TestValidate_OverlongComponentListClipped(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"name":"x","subdomain":"abc","description":"d","industry":"i","primaryColor":"#fff","components":[`)
	b.WriteString(`{"type":"hero","props":{"title":"t"}}`)
	for i := 0; i < 11; i++ {
		b.WriteString(`,{"type":"text","props":{"title":"t","content":"c"}}`)
	}
	b.WriteString(`]}`)

	spec, err := Validate(b.String())
	require.NoError(t, err)
	assert.Len(t, spec.Components, MaxComponents)
}
