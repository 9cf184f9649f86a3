package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sitesmith-inc/sitesmith-engine/pkg/apperrors"
)

// Actor is the authenticated user behind a request, reduced to what the
// pipeline needs for ownership and audit attribution.
type Actor struct {
	ID          uuid.UUID
	DisplayName string
	Email       string
}

// GetActorFromContext extracts the actor from JWT claims in the context.
// Returns false if the request is unauthenticated or the subject is not a
// valid UUID.
func GetActorFromContext(ctx context.Context) (*Actor, bool) {
	claims, ok := GetClaims(ctx)
	if !ok || claims == nil {
		return nil, false
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, false
	}

	return &Actor{
		ID:          id,
		DisplayName: displayName(claims, id),
		Email:       claims.Email,
	}, true
}

// RequireActorFromContext extracts the actor from context; an absent or
// malformed identity maps to apperrors.ErrUnauthorized so callers can
// refuse before doing any work.
func RequireActorFromContext(ctx context.Context) (*Actor, error) {
	actor, ok := GetActorFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: no authenticated actor in context", apperrors.ErrUnauthorized)
	}
	return actor, nil
}

// displayName picks the best available human-readable name: the name claim,
// then the email local part, then a stable id-derived fallback.
func displayName(claims *Claims, id uuid.UUID) string {
	if name := strings.TrimSpace(claims.Name); name != "" {
		return name
	}
	if claims.Email != "" {
		if local, _, found := strings.Cut(claims.Email, "@"); found && local != "" {
			return local
		}
	}
	return "user-" + id.String()[:8]
}
