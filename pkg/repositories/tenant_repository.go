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

// TenantRepository provides data access for tenants.
type TenantRepository interface {
	// Create inserts a new tenant.
	Create(ctx context.Context, tenant *models.Tenant) error

	// GetByOwner returns the tenant owned by the given user, or
	// apperrors.ErrNotFound.
	GetByOwner(ctx context.Context, ownerUserID uuid.UUID) (*models.Tenant, error)

	// GetByID returns the tenant with the given id, or apperrors.ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)

	// WithTx returns a copy of the repository bound to the given transaction.
	WithTx(tx pgx.Tx) TenantRepository
}

type tenantRepository struct {
	db DBTX
}

// NewTenantRepository creates a new TenantRepository over the given pool or
// transaction.
func NewTenantRepository(db DBTX) TenantRepository {
	return &tenantRepository{db: db}
}

var _ TenantRepository = (*tenantRepository)(nil)

func (r *tenantRepository) WithTx(tx pgx.Tx) TenantRepository {
	return &tenantRepository{db: tx}
}

func (r *tenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}
	now := time.Now()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now
	if tenant.Status == "" {
		tenant.Status = models.TenantStatusActive
	}

	query := `
		INSERT INTO tenants (id, owner_user_id, name, slug, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		tenant.ID,
		tenant.OwnerUserID,
		tenant.Name,
		tenant.Slug,
		tenant.Status,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create tenant: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	return nil
}

func (r *tenantRepository) GetByOwner(ctx context.Context, ownerUserID uuid.UUID) (*models.Tenant, error) {
	query := `
		SELECT id, owner_user_id, name, slug, status, created_at, updated_at
		FROM tenants
		WHERE owner_user_id = $1`

	return r.scanOne(r.db.QueryRow(ctx, query, ownerUserID))
}

func (r *tenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	query := `
		SELECT id, owner_user_id, name, slug, status, created_at, updated_at
		FROM tenants
		WHERE id = $1`

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *tenantRepository) scanOne(row pgx.Row) (*models.Tenant, error) {
	var tenant models.Tenant
	err := row.Scan(
		&tenant.ID,
		&tenant.OwnerUserID,
		&tenant.Name,
		&tenant.Slug,
		&tenant.Status,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan tenant: %w", err)
	}
	return &tenant, nil
}
