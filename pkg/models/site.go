package models

import (
	"time"

	"github.com/google/uuid"
)

// Site represents one generated website, owned by exactly one tenant. The
// subdomain is globally unique; the datastore enforces uniqueness and the
// pipeline treats a violation at commit time as the collision signal.
type Site struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Name        string     `json:"name"`
	Subdomain   string     `json:"subdomain"`
	Description string     `json:"description"`
	Industry    string     `json:"industry"`
	Styles      SiteStyles `json:"styles"`
	Navigation  []NavItem  `json:"navigation"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SiteStyles is the site-wide style palette, stored as JSONB.
type SiteStyles struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	FontFamily     string `json:"fontFamily,omitempty"`
}

// NavItem is one entry in the site's navigation skeleton, stored as JSONB.
type NavItem struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// DefaultNavigation returns the fixed navigation skeleton every freshly
// generated site starts with. The editor reshapes it later.
func DefaultNavigation() []NavItem {
	return []NavItem{
		{Label: "Home", Href: "/"},
		{Label: "About", Href: "#about"},
		{Label: "Contact", Href: "#contact"},
	}
}
