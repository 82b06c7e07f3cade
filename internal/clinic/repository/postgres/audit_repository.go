package postgres

import (
	"context"
	"fmt"

	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
)

type AuditRepository struct {
	db DB
}

func NewAuditRepository(db DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_events (id, actor_user_id, action, target_type, target_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.ID, nullableID(event.ActorUserID), event.Action, event.TargetType,
		event.TargetID, event.Details, event.CreatedAt)
	return err
}

func (r *AuditRepository) List(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, COALESCE(actor_user_id::text, ''), action, target_type, target_id, details, created_at
		FROM audit_events
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []domain.AuditEvent
	for rows.Next() {
		var e domain.AuditEvent
		if err := rows.Scan(&e.ID, &e.ActorUserID, &e.Action, &e.TargetType, &e.TargetID, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
