// Package models contains domain types for sitesmith-engine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant status constants.
const (
	TenantStatusActive    = "active"
	TenantStatusSuspended = "suspended"
)

// Tenant represents one customer account. A tenant owns sites; generation
// always happens inside a tenant.
type Tenant struct {
	ID          uuid.UUID `json:"id"`
	OwnerUserID uuid.UUID `json:"owner_user_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
