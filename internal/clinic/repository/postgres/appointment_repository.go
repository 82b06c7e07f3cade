package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
	apperrors "github.com/thenoobgamer12/margawellness/internal/errors"
)

type AppointmentRepository struct {
	db DB
}

func NewAppointmentRepository(db DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create inserts the appointment. The appointments_slot_unique constraint is
// what decides races between concurrent bookers; its violation surfaces as
// ErrSlotConflict.
func (r *AppointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO appointments (id, client_id, therapist_id, appointment_time, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		appt.ID, appt.ClientID, appt.TherapistID, appt.Time, appt.CreatedAt)
	if isPgError(err, codeUniqueViolation) {
		return apperrors.ErrSlotConflict
	}
	if isPgError(err, codeForeignKeyViolation) {
		return fmt.Errorf("%w: unknown client or therapist", apperrors.ErrInvalidRequest)
	}
	return err
}

// GetByTherapistAndTime returns nil, nil when the slot is free.
func (r *AppointmentRepository) GetByTherapistAndTime(ctx context.Context, therapistID string, at time.Time) (*domain.Appointment, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, client_id, therapist_id, appointment_time, created_at
		FROM appointments
		WHERE therapist_id = $1 AND appointment_time = $2
		LIMIT 1`, therapistID, at)

	var a domain.Appointment
	err := row.Scan(&a.ID, &a.ClientID, &a.TherapistID, &a.Time, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return &a, nil
}

// ListByTherapist returns appointments in [start, end), or [start, end] when
// inclusiveEnd is set, ordered by time ascending.
func (r *AppointmentRepository) ListByTherapist(ctx context.Context, therapistID string, start, end time.Time, inclusiveEnd bool) ([]domain.Appointment, error) {
	endOp := "<"
	if inclusiveEnd {
		endOp = "<="
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, client_id, therapist_id, appointment_time, created_at
		FROM appointments
		WHERE therapist_id = $1 AND appointment_time >= $2 AND appointment_time `+endOp+` $3
		ORDER BY appointment_time ASC`, therapistID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query appointments: %w", err)
	}
	defer rows.Close()

	var appts []domain.Appointment
	for rows.Next() {
		var a domain.Appointment
		if err := rows.Scan(&a.ID, &a.ClientID, &a.TherapistID, &a.Time, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}
