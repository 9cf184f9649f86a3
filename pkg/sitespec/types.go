// Package sitespec turns sanitized generator output into a typed website
// document: a validated site descriptor plus an ordered list of components,
// and the transformation of those components into renderer-shaped blocks.
package sitespec

// Recognized component type tags. Components carrying any other tag are
// retained as opaque passthrough variants rather than rejected, so new
// generator vocabulary degrades gracefully.
const (
	TypeHero         = "hero"
	TypeFeatures     = "features"
	TypePricing      = "pricing"
	TypeTestimonials = "testimonials"
	TypeFAQ          = "faq"
	TypeContact      = "contact"
	TypeText         = "text"
	TypeGallery      = "gallery"
)

// SiteSpec is the validated intermediate representation of a generated site.
type SiteSpec struct {
	Name         string
	Subdomain    string
	Description  string
	Industry     string
	PrimaryColor string
	Components   []ComponentSpec
}

// ComponentSpec is one element of the generated component list. Recognized
// reports whether Type is in the closed variant set; unrecognized components
// keep their props untouched and are passed through by the transformer.
type ComponentSpec struct {
	Type       string
	Recognized bool
	Props      map[string]any
}

type propKind int

const (
	kindScalar propKind = iota
	kindArray
)

type propReq struct {
	name string
	kind propKind
}

// requiredProps defines the per-variant required-field shapes. Scalar means
// a JSON string, number, or boolean; generators frequently confuse the three
// and the transformer coerces them.
var requiredProps = map[string][]propReq{
	TypeHero:         {{"title", kindScalar}},
	TypeFeatures:     {{"title", kindScalar}, {"features", kindArray}},
	TypePricing:      {{"title", kindScalar}, {"plans", kindArray}},
	TypeTestimonials: {{"title", kindScalar}, {"testimonials", kindArray}},
	TypeFAQ:          {{"title", kindScalar}, {"questions", kindArray}},
	TypeContact:      {{"title", kindScalar}},
	TypeText:         {{"title", kindScalar}, {"content", kindScalar}},
	TypeGallery:      {{"title", kindScalar}, {"images", kindArray}},
}
