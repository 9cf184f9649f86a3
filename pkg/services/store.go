package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sitesmith-inc/sitesmith-engine/pkg/apperrors"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/auth"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/database"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/models"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/repositories"
)

// Store is the persistence boundary of the pipeline. It exposes the two
// write operations with their transactional semantics made explicit:
// tenant creation is idempotent and runs outside the atomic unit, site
// commit is all-or-nothing.
type Store interface {
	// FindOrCreateTenant returns the actor's tenant, creating one if absent.
	// Safe to call concurrently for the same actor: the loser of a creation
	// race falls back to reading the winner's row.
	FindOrCreateTenant(ctx context.Context, actor *auth.Actor) (*models.Tenant, error)

	// CommitSite creates the site, its home page and the audit entry in one
	// transaction. A subdomain collision surfaces as apperrors.ErrConflict
	// with no rows written.
	CommitSite(ctx context.Context, site *models.Site, page *models.Page, entry *models.AuditLogEntry) error

	// SubdomainExists reports whether a site already claims the subdomain.
	SubdomainExists(ctx context.Context, subdomain string) (bool, error)
}

type pgStore struct {
	db      *database.DB
	tenants repositories.TenantRepository
	sites   repositories.SiteRepository
	pages   repositories.PageRepository
	audits  repositories.AuditRepository
}

// NewStore creates the PostgreSQL-backed Store.
func NewStore(db *database.DB) Store {
	return &pgStore{
		db:      db,
		tenants: repositories.NewTenantRepository(db.Pool),
		sites:   repositories.NewSiteRepository(db.Pool),
		pages:   repositories.NewPageRepository(db.Pool),
		audits:  repositories.NewAuditRepository(db.Pool),
	}
}

var _ Store = (*pgStore)(nil)

func (s *pgStore) FindOrCreateTenant(ctx context.Context, actor *auth.Actor) (*models.Tenant, error) {
	tenant, err := s.tenants.GetByOwner(ctx, actor.ID)
	if err == nil {
		return tenant, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("find tenant: %w", err)
	}

	tenant = &models.Tenant{
		OwnerUserID: actor.ID,
		Name:        actor.DisplayName,
		Slug:        tenantSlug(actor.ID),
	}
	if err := s.tenants.Create(ctx, tenant); err != nil {
		// Concurrent creation for the same owner: read the winner's row.
		if errors.Is(err, apperrors.ErrConflict) {
			return s.tenants.GetByOwner(ctx, actor.ID)
		}
		return nil, fmt.Errorf("create tenant: %w", err)
	}

	return tenant, nil
}

func (s *pgStore) CommitSite(ctx context.Context, site *models.Site, page *models.Page, entry *models.AuditLogEntry) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.sites.WithTx(tx).Create(ctx, site); err != nil {
		return err
	}

	page.SiteID = site.ID
	if err := s.pages.WithTx(tx).Create(ctx, page); err != nil {
		return err
	}

	entry.SiteID = site.ID
	if err := s.audits.WithTx(tx).Create(ctx, entry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (s *pgStore) SubdomainExists(ctx context.Context, subdomain string) (bool, error) {
	return s.sites.SubdomainExists(ctx, subdomain)
}

// tenantSlug derives a stable slug from the owner's id.
func tenantSlug(ownerID uuid.UUID) string {
	return "tenant-" + strings.Split(ownerID.String(), "-")[0]
}
