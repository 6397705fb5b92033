package postgres

import (
	"context"
	"fmt"

	"github.com/alialif/JoinUp-Event-Management/internal/audit"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/ids"
	"github.com/jackc/pgx/v5/pgtype"
)

var _ audit.Repository = (*AuditRepository)(nil)

func (r *AuditRepository) Append(ctx context.Context, entry audit.Entry) (*audit.Entry, error) {
	if entry.ID == "" {
		entry.ID = ids.MustNewULID()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO audit_log (id, actor_id, action, entity_type, entity_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`,
		entry.ID,
		entry.ActorID,
		entry.Action,
		nullIfEmpty(entry.EntityType),
		nullIfEmpty(entry.EntityID),
		entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("append audit entry: %w", err)
	}
	return &entry, nil
}

func (r *AuditRepository) List(ctx context.Context, limit int) ([]audit.Entry, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, actor_id, action, entity_type, entity_id, created_at
  FROM audit_log
 ORDER BY created_at DESC
 LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var result []audit.Entry
	for rows.Next() {
		var (
			entry      audit.Entry
			entityType *string
			entityID   *string
			createdAt  pgtype.Timestamptz
		)
		if err := rows.Scan(&entry.ID, &entry.ActorID, &entry.Action, &entityType, &entityID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entry.EntityType = derefString(entityType)
		entry.EntityID = derefString(entityID)
		entry.CreatedAt = timestampValue(createdAt)
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return result, nil
}
