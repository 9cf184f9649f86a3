package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Page represents one page of a site. Generation creates exactly one page,
// the home page, with draft and published content both set to the
// transformed block list.
type Page struct {
	ID               uuid.UUID       `json:"id"`
	SiteID           uuid.UUID       `json:"site_id"`
	Title            string          `json:"title"`
	Slug             string          `json:"slug"`
	IsHomePage       bool            `json:"is_home_page"`
	DraftContent     json.RawMessage `json:"draft_content"`
	PublishedContent json.RawMessage `json:"published_content"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
