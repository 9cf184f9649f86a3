package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sitesmith-inc/sitesmith-engine/pkg/apperrors"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/models"
)

// SiteRepository provides data access for sites.
type SiteRepository interface {
	// Create inserts a new site. A subdomain collision surfaces as
	// apperrors.ErrConflict.
	Create(ctx context.Context, site *models.Site) error

	// GetBySubdomain returns the site with the given subdomain, or
	// apperrors.ErrNotFound.
	GetBySubdomain(ctx context.Context, subdomain string) (*models.Site, error)

	// SubdomainExists reports whether a site already claims the subdomain.
	SubdomainExists(ctx context.Context, subdomain string) (bool, error)

	// GetByID returns the site with the given id, or apperrors.ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Site, error)

	// WithTx returns a copy of the repository bound to the given transaction.
	WithTx(tx pgx.Tx) SiteRepository
}

type siteRepository struct {
	db DBTX
}

// NewSiteRepository creates a new SiteRepository over the given pool or
// transaction.
func NewSiteRepository(db DBTX) SiteRepository {
	return &siteRepository{db: db}
}

var _ SiteRepository = (*siteRepository)(nil)

func (r *siteRepository) WithTx(tx pgx.Tx) SiteRepository {
	return &siteRepository{db: tx}
}

func (r *siteRepository) Create(ctx context.Context, site *models.Site) error {
	if site.ID == uuid.Nil {
		site.ID = uuid.New()
	}
	now := time.Now()
	site.CreatedAt = now
	site.UpdatedAt = now
	if site.IsPublished && site.PublishedAt == nil {
		site.PublishedAt = &now
	}

	stylesJSON, err := json.Marshal(site.Styles)
	if err != nil {
		return fmt.Errorf("failed to marshal styles: %w", err)
	}
	navigationJSON, err := json.Marshal(site.Navigation)
	if err != nil {
		return fmt.Errorf("failed to marshal navigation: %w", err)
	}

	query := `
		INSERT INTO sites (
			id, tenant_id, name, subdomain, description, industry,
			styles, navigation, is_published, published_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = r.db.Exec(ctx, query,
		site.ID,
		site.TenantID,
		site.Name,
		site.Subdomain,
		site.Description,
		site.Industry,
		stylesJSON,
		navigationJSON,
		site.IsPublished,
		site.PublishedAt,
		site.CreatedAt,
		site.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("subdomain %q taken: %w", site.Subdomain, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create site: %w", err)
	}

	return nil
}

func (r *siteRepository) GetBySubdomain(ctx context.Context, subdomain string) (*models.Site, error) {
	query := selectSite + ` WHERE subdomain = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, subdomain))
}

func (r *siteRepository) SubdomainExists(ctx context.Context, subdomain string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM sites WHERE subdomain = $1)`, subdomain,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check subdomain: %w", err)
	}
	return exists, nil
}

func (r *siteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Site, error) {
	query := selectSite + ` WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

const selectSite = `
	SELECT id, tenant_id, name, subdomain, description, industry,
	       styles, navigation, is_published, published_at, created_at, updated_at
	FROM sites`

func (r *siteRepository) scanOne(row pgx.Row) (*models.Site, error) {
	var (
		site           models.Site
		stylesJSON     []byte
		navigationJSON []byte
	)
	err := row.Scan(
		&site.ID,
		&site.TenantID,
		&site.Name,
		&site.Subdomain,
		&site.Description,
		&site.Industry,
		&stylesJSON,
		&navigationJSON,
		&site.IsPublished,
		&site.PublishedAt,
		&site.CreatedAt,
		&site.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan site: %w", err)
	}

	if err := json.Unmarshal(stylesJSON, &site.Styles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal styles: %w", err)
	}
	if err := json.Unmarshal(navigationJSON, &site.Navigation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal navigation: %w", err)
	}

	return &site, nil
}
