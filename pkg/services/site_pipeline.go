package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitesmith-inc/sitesmith-engine/pkg/apperrors"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/audit"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/auth"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/generator"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/logging"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/models"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/prompts"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/sanitize"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/sitespec"
)

// PipelineConfig carries the pipeline's tuning knobs.
type PipelineConfig struct {
	MaxSubdomainAttempts  int
	YearlyPriceMultiplier int
	PromptMinLength       int
	PromptMaxLength       int
	Temperature           float64
}

// GenerationResult is the only state the pipeline exposes to callers.
type GenerationResult struct {
	SiteID    uuid.UUID `json:"site_id"`
	Subdomain string    `json:"subdomain"`
}

// SitePipeline turns a business description into a persisted site.
type SitePipeline interface {
	// GenerateSite runs prompt -> generation -> sanitize -> validate ->
	// transform -> resolve -> commit. Stages before resolution are pure;
	// nothing is persisted unless the whole pipeline succeeds.
	GenerateSite(ctx context.Context, promptText string) (*GenerationResult, error)
}

type sitePipeline struct {
	gen         generator.TextGenerator
	transformer *sitespec.Transformer
	resolver    SubdomainResolver
	store       Store
	auditor     *audit.SecurityAuditor
	cfg         PipelineConfig
	logger      *zap.Logger
}

// NewSitePipeline wires the pipeline stages together.
func NewSitePipeline(
	gen generator.TextGenerator,
	resolver SubdomainResolver,
	store Store,
	auditor *audit.SecurityAuditor,
	cfg PipelineConfig,
	logger *zap.Logger,
) SitePipeline {
	return &sitePipeline{
		gen:         gen,
		transformer: sitespec.NewTransformer(cfg.YearlyPriceMultiplier),
		resolver:    resolver,
		store:       store,
		auditor:     auditor,
		cfg:         cfg,
		logger:      logger.Named("site_pipeline"),
	}
}

var _ SitePipeline = (*sitePipeline)(nil)

func (p *sitePipeline) GenerateSite(ctx context.Context, promptText string) (*GenerationResult, error) {
	// Identity first: no generator call without an authenticated actor.
	actor, err := auth.RequireActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := p.checkPromptBounds(promptText); err != nil {
		return nil, err
	}

	p.logger.Info("generation started",
		zap.String("actor_id", actor.ID.String()),
		zap.String("prompt", logging.SanitizePrompt(promptText)))

	raw, err := p.gen.GenerateSite(ctx,
		prompts.BuildSiteGenerationPrompt(promptText),
		prompts.SiteGenerationSystemMessage,
		p.cfg.Temperature)
	if err != nil {
		p.logger.Warn("generation provider failed", zap.String("error", logging.SanitizeError(err)))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrGenerationUnavailable, logging.SanitizeError(err))
	}

	sanitized, err := sanitize.Sanitize(raw)
	if err != nil {
		p.auditor.LogGenerationRejected(ctx, uuid.Nil, err.Error())
		return nil, err
	}

	spec, err := sitespec.Validate(sanitized)
	if err != nil {
		p.auditor.LogGenerationRejected(ctx, uuid.Nil, err.Error())
		return nil, err
	}

	blocks := p.transformer.Transform(spec.Components)

	if violations := sitespec.ScreenBlocks(blocks); len(violations) > 0 {
		p.auditor.LogContentInjection(ctx, uuid.Nil, violations)
		return nil, fmt.Errorf("%w: %d flagged values", apperrors.ErrUnsafeContent, len(violations))
	}

	// Tenant creation is an idempotent precondition; it stays outside the
	// atomic unit and is never rolled back.
	tenant, err := p.store.FindOrCreateTenant(ctx, actor)
	if err != nil {
		return nil, err
	}

	return p.commitWithResolution(ctx, actor, tenant, spec, blocks, promptText)
}

// commitWithResolution resolves a subdomain and commits, retrying both on a
// commit-time uniqueness violation. The probe-then-insert sequence is racy
// under concurrency; the unique constraint is the arbiter and a 23505 sends
// us back to resolution.
func (p *sitePipeline) commitWithResolution(
	ctx context.Context,
	actor *auth.Actor,
	tenant *models.Tenant,
	spec *sitespec.SiteSpec,
	blocks []sitespec.TransformedBlock,
	promptText string,
) (*GenerationResult, error) {
	content, err := json.Marshal(blocks)
	if err != nil {
		return nil, fmt.Errorf("marshal blocks: %w", err)
	}

	for attempt := 1; attempt <= p.cfg.MaxSubdomainAttempts; attempt++ {
		subdomain, err := p.resolver.Resolve(ctx, spec.Subdomain)
		if err != nil {
			return nil, err
		}

		site := &models.Site{
			TenantID:    tenant.ID,
			Name:        spec.Name,
			Subdomain:   subdomain,
			Description: spec.Description,
			Industry:    spec.Industry,
			Styles:      models.SiteStyles{PrimaryColor: spec.PrimaryColor},
			Navigation:  models.DefaultNavigation(),
			IsPublished: true,
		}
		page := &models.Page{
			Title:            spec.Name,
			Slug:             "home",
			IsHomePage:       true,
			DraftContent:     content,
			PublishedContent: content,
		}
		entry := &models.AuditLogEntry{
			TenantID: tenant.ID,
			ActorID:  actor.ID,
			Action:   models.AuditActionSiteGenerated,
			Metadata: map[string]any{
				"prompt":      promptText,
				"industry":    spec.Industry,
				"block_count": len(blocks),
			},
		}

		err = p.store.CommitSite(ctx, site, page, entry)
		if err == nil {
			p.auditor.LogSiteGenerated(ctx, tenant.ID, site.ID, subdomain)
			p.logger.Info("generation committed",
				zap.String("site_id", site.ID.String()),
				zap.String("subdomain", subdomain),
				zap.Int("attempt", attempt))
			return &GenerationResult{SiteID: site.ID, Subdomain: subdomain}, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}

		p.logger.Debug("commit lost subdomain race",
			zap.String("subdomain", subdomain),
			zap.Int("attempt", attempt))
	}

	return nil, fmt.Errorf("%w: commit retries spent for %q", apperrors.ErrSubdomainExhausted, spec.Subdomain)
}

func (p *sitePipeline) checkPromptBounds(promptText string) error {
	if len(promptText) < p.cfg.PromptMinLength {
		return sitespec.NewFieldError("promptText",
			fmt.Sprintf("must be at least %d characters", p.cfg.PromptMinLength))
	}
	if len(promptText) > p.cfg.PromptMaxLength {
		return sitespec.NewFieldError("promptText",
			fmt.Sprintf("must be at most %d characters", p.cfg.PromptMaxLength))
	}
	return nil
}
