package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sitesmith-inc/sitesmith-engine/pkg/models"
)

// AuditRepository provides data access for the audit log. Entries are
// append-only; there are no update or delete operations.
type AuditRepository interface {
	// Create inserts a new audit log entry.
	Create(ctx context.Context, entry *models.AuditLogEntry) error

	// GetByTenant returns audit log entries for a tenant, newest first.
	GetByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]*models.AuditLogEntry, error)

	// WithTx returns a copy of the repository bound to the given transaction.
	WithTx(tx pgx.Tx) AuditRepository
}

type auditRepository struct {
	db DBTX
}

// NewAuditRepository creates a new AuditRepository over the given pool or
// transaction.
func NewAuditRepository(db DBTX) AuditRepository {
	return &auditRepository{db: db}
}

var _ AuditRepository = (*auditRepository)(nil)

func (r *auditRepository) WithTx(tx pgx.Tx) AuditRepository {
	return &auditRepository{db: tx}
}

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()

	metadataJSON := []byte("{}")
	if len(entry.Metadata) > 0 {
		var err error
		metadataJSON, err = json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
	}

	query := `
		INSERT INTO audit_log (id, tenant_id, site_id, actor_id, action, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.TenantID,
		entry.SiteID,
		entry.ActorID,
		entry.Action,
		metadataJSON,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}

	return nil
}

func (r *auditRepository) GetByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]*models.AuditLogEntry, error) {
	query := `
		SELECT id, tenant_id, site_id, actor_id, action, metadata, created_at
		FROM audit_log
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditLogEntry
	for rows.Next() {
		var (
			entry        models.AuditLogEntry
			metadataJSON []byte
		)
		err := rows.Scan(
			&entry.ID,
			&entry.TenantID,
			&entry.SiteID,
			&entry.ActorID,
			&entry.Action,
			&metadataJSON,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log entry: %w", err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
			}
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit log entries: %w", err)
	}

	return entries, nil
}
