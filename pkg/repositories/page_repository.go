package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sitesmith-inc/sitesmith-engine/pkg/apperrors"
	"github.com/sitesmith-inc/sitesmith-engine/pkg/models"
)

// PageRepository provides data access for pages.
type PageRepository interface {
	// Create inserts a new page.
	Create(ctx context.Context, page *models.Page) error

	// GetHomePage returns the home page of a site, or apperrors.ErrNotFound.
	GetHomePage(ctx context.Context, siteID uuid.UUID) (*models.Page, error)

	// WithTx returns a copy of the repository bound to the given transaction.
	WithTx(tx pgx.Tx) PageRepository
}

type pageRepository struct {
	db DBTX
}

// NewPageRepository creates a new PageRepository over the given pool or
// transaction.
func NewPageRepository(db DBTX) PageRepository {
	return &pageRepository{db: db}
}

var _ PageRepository = (*pageRepository)(nil)

func (r *pageRepository) WithTx(tx pgx.Tx) PageRepository {
	return &pageRepository{db: tx}
}

func (r *pageRepository) Create(ctx context.Context, page *models.Page) error {
	if page.ID == uuid.Nil {
		page.ID = uuid.New()
	}
	now := time.Now()
	page.CreatedAt = now
	page.UpdatedAt = now

	query := `
		INSERT INTO pages (
			id, site_id, title, slug, is_home_page,
			draft_content, published_content, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		page.ID,
		page.SiteID,
		page.Title,
		page.Slug,
		page.IsHomePage,
		[]byte(page.DraftContent),
		[]byte(page.PublishedContent),
		page.CreatedAt,
		page.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create page: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create page: %w", err)
	}

	return nil
}

func (r *pageRepository) GetHomePage(ctx context.Context, siteID uuid.UUID) (*models.Page, error) {
	query := `
		SELECT id, site_id, title, slug, is_home_page,
		       draft_content, published_content, created_at, updated_at
		FROM pages
		WHERE site_id = $1 AND is_home_page = true`

	var page models.Page
	err := r.db.QueryRow(ctx, query, siteID).Scan(
		&page.ID,
		&page.SiteID,
		&page.Title,
		&page.Slug,
		&page.IsHomePage,
		&page.DraftContent,
		&page.PublishedContent,
		&page.CreatedAt,
		&page.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan page: %w", err)
	}

	return &page, nil
}
