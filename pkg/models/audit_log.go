package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction constants for the actions this service records.
const (
	AuditActionSiteGenerated = "site_generated"
)

// AuditLogEntry represents a single immutable entry in the audit log.
// Entries are append-only: nothing in this service ever updates or deletes
// one.
type AuditLogEntry struct {
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"tenant_id"`
	SiteID   uuid.UUID `json:"site_id"`
	ActorID  uuid.UUID `json:"actor_id"`
	Action   string    `json:"action"`

	// Metadata carries action-specific detail, e.g. for site_generated:
	// the prompt, industry and block count.
	Metadata map[string]any `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
