package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sitesmith-inc/sitesmith-engine/pkg/apperrors"
)

func contextWithClaims(claims *Claims) context.Context {
	return context.WithValue(context.Background(), ClaimsKey, claims)
}

func TestGetActorFromContext(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		ctx      context.Context
		wantOK   bool
		wantName string
	}{
		{
			name: "name claim preferred",
			ctx: contextWithClaims(&Claims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
				Name:             "Aisha Khan",
				Email:            "aisha@example.com",
			}),
			wantOK:   true,
			wantName: "Aisha Khan",
		},
		{
			name: "email local part fallback",
			ctx: contextWithClaims(&Claims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
				Email:            "aisha@example.com",
			}),
			wantOK:   true,
			wantName: "aisha",
		},
		{
			name: "id-derived fallback",
			ctx: contextWithClaims(&Claims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
			}),
			wantOK:   true,
			wantName: "user-" + userID.String()[:8],
		},
		{
			name:   "no claims in context",
			ctx:    context.Background(),
			wantOK: false,
		},
		{
			name: "non-UUID subject",
			ctx: contextWithClaims(&Claims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: "service-account"},
			}),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor, ok := GetActorFromContext(tt.ctx)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if actor.ID != userID {
				t.Errorf("ID = %v, want %v", actor.ID, userID)
			}
			if actor.DisplayName != tt.wantName {
				t.Errorf("DisplayName = %q, want %q", actor.DisplayName, tt.wantName)
			}
		})
	}
}

func TestRequireActorFromContext_Unauthorized(t *testing.T) {
	_, err := RequireActorFromContext(context.Background())
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}
