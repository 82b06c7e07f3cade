package postgres

import (
	"context"
	"fmt"
)

type SystemRepository struct {
	db DB
}

func NewSystemRepository(db DB) *SystemRepository {
	return &SystemRepository{db: db}
}

// ClearClientData truncates clients and appointments in one statement.
// Users and audit_events stay.
func (r *SystemRepository) ClearClientData(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `TRUNCATE TABLE appointments, clients CASCADE`); err != nil {
		return fmt.Errorf("clear client data: %w", err)
	}
	return nil
}
