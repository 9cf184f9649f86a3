// Package audit provides security audit logging for SIEM consumption.
// It logs security-relevant events in structured JSON format for easy parsing
// and integration with security information and event management systems.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitesmith-inc/sitesmith-engine/pkg/auth"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/sitespec"
)

// SecurityEventType categorizes security-relevant events for filtering and alerting.
type SecurityEventType string

const (
	// EventContentInjectionAttempt is logged when libinjection flags XSS
	// payloads inside generated site content.
	EventContentInjectionAttempt SecurityEventType = "content_injection_attempt"
	// EventGenerationRejected is logged when a generation request is refused
	// before persistence (validation or screening failure).
	EventGenerationRejected SecurityEventType = "generation_rejected"
	// EventSiteGenerated is logged for successful site generation.
	EventSiteGenerated SecurityEventType = "site_generated"
)

// SecurityEvent represents an auditable security event with all relevant context
// for SIEM ingestion and analysis.
type SecurityEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType SecurityEventType `json:"event_type"`
	TenantID  uuid.UUID         `json:"tenant_id,omitempty"`
	SiteID    uuid.UUID         `json:"site_id,omitempty"`
	UserID    string            `json:"user_id,omitempty"`
	Details   any               `json:"details"`
	Severity  string            `json:"severity"` // info, warning, critical
}

// ContentInjectionDetails contains specifics of flagged generated content.
type ContentInjectionDetails struct {
	BlockID string `json:"block_id"`
	Path    string `json:"path"`
	Value   string `json:"value"`
}

// SecurityAuditor logs security events for SIEM consumption.
// Events are logged in structured JSON format with appropriate severity levels.
type SecurityAuditor struct {
	logger *zap.Logger
}

// NewSecurityAuditor creates a new security auditor with a dedicated logger
// namespace ("security_audit") for easy filtering in SIEM systems.
func NewSecurityAuditor(logger *zap.Logger) *SecurityAuditor {
	return &SecurityAuditor{logger: logger.Named("security_audit")}
}

// LogContentInjection records generated content flagged by the XSS screen.
// Logged at ERROR level with "critical" severity: the model produced markup
// that would have executed in a visitor's browser had it been persisted.
func (a *SecurityAuditor) LogContentInjection(
	ctx context.Context,
	tenantID uuid.UUID,
	violations []sitespec.ContentViolation,
) {
	userID := userIDFromContext(ctx)

	for _, v := range violations {
		event := SecurityEvent{
			Timestamp: time.Now().UTC(),
			EventType: EventContentInjectionAttempt,
			TenantID:  tenantID,
			UserID:    userID,
			Details: ContentInjectionDetails{
				BlockID: v.BlockID,
				Path:    v.Path,
				Value:   v.Value,
			},
			Severity: "critical",
		}

		// Ignoring marshal error as these are known types
		eventJSON, _ := json.Marshal(event)

		a.logger.Error("Content injection attempt detected",
			zap.String("event_json", string(eventJSON)),
			zap.String("tenant_id", tenantID.String()),
			zap.String("block_id", v.BlockID),
			zap.String("path", v.Path),
			zap.String("user_id", userID),
			zap.String("severity", "critical"),
		)
	}
}

// LogGenerationRejected records a generation request refused before commit.
// Logged at WARN level; these are usually model output defects, not attacks.
func (a *SecurityAuditor) LogGenerationRejected(
	ctx context.Context,
	tenantID uuid.UUID,
	reason string,
) {
	userID := userIDFromContext(ctx)

	event := SecurityEvent{
		Timestamp: time.Now().UTC(),
		EventType: EventGenerationRejected,
		TenantID:  tenantID,
		UserID:    userID,
		Details: map[string]string{
			"reason": reason,
		},
		Severity: "warning",
	}

	eventJSON, _ := json.Marshal(event)

	a.logger.Warn("Generation request rejected",
		zap.String("event_json", string(eventJSON)),
		zap.String("tenant_id", tenantID.String()),
		zap.String("reason", reason),
		zap.String("user_id", userID),
		zap.String("severity", "warning"),
	)
}

// LogSiteGenerated records a successful generation for the audit trail.
func (a *SecurityAuditor) LogSiteGenerated(
	ctx context.Context,
	tenantID, siteID uuid.UUID,
	subdomain string,
) {
	userID := userIDFromContext(ctx)

	event := SecurityEvent{
		Timestamp: time.Now().UTC(),
		EventType: EventSiteGenerated,
		TenantID:  tenantID,
		SiteID:    siteID,
		UserID:    userID,
		Details: map[string]string{
			"subdomain": subdomain,
		},
		Severity: "info",
	}

	eventJSON, _ := json.Marshal(event)

	a.logger.Info("Site generated",
		zap.String("event_json", string(eventJSON)),
		zap.String("tenant_id", tenantID.String()),
		zap.String("site_id", siteID.String()),
		zap.String("subdomain", subdomain),
		zap.String("user_id", userID),
		zap.String("severity", "info"),
	)
}

func userIDFromContext(ctx context.Context) string {
	if actor, ok := auth.GetActorFromContext(ctx); ok {
		return actor.ID.String()
	}
	return ""
}
