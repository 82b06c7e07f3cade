package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The slot-uniqueness constraint on appointments is load-bearing: two
// concurrent bookings of the same (therapist_id, appointment_time) must not
// both succeed, and the application-level pre-check alone cannot guarantee
// that.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		age INT NOT NULL DEFAULT 0,
		gender TEXT NOT NULL DEFAULT '',
		contact_no TEXT NOT NULL DEFAULT '',
		address_city TEXT NOT NULL DEFAULT '',
		case_type TEXT NOT NULL DEFAULT '',
		assigned_therapist_id UUID REFERENCES users(id) ON DELETE SET NULL,
		status TEXT NOT NULL DEFAULT 'Open',
		case_history_document TEXT NOT NULL DEFAULT '',
		session_summary_document TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id UUID PRIMARY KEY,
		client_id UUID NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		therapist_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		appointment_time TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT appointments_slot_unique UNIQUE (therapist_id, appointment_time)
	)`,
	`CREATE TABLE IF NOT EXISTS audit_events (
		id UUID PRIMARY KEY,
		actor_user_id UUID,
		action TEXT NOT NULL,
		target_type TEXT NOT NULL DEFAULT '',
		target_id TEXT NOT NULL DEFAULT '',
		details TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate applies the schema. Statements are idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
