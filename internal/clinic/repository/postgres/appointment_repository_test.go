package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
	repo "github.com/thenoobgamer12/margawellness/internal/clinic/repository/postgres"
	apperrors "github.com/thenoobgamer12/margawellness/internal/errors"
)

var appointmentColumns = []string{"id", "client_id", "therapist_id", "appointment_time", "created_at"}

func TestAppointmentRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewAppointmentRepository(mock)
	ctx := context.Background()

	appt := &domain.Appointment{
		ID:          "a1",
		ClientID:    "c1",
		TherapistID: "t1",
		Time:        time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		CreatedAt:   time.Now(),
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO appointments").
			WithArgs(appt.ID, appt.ClientID, appt.TherapistID, appt.Time, appt.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := r.Create(ctx, appt)
		assert.NoError(t, err)
	})

	t.Run("slot already taken", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO appointments").
			WithArgs(appt.ID, appt.ClientID, appt.TherapistID, appt.Time, appt.CreatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "appointments_slot_unique"})

		err := r.Create(ctx, appt)
		assert.ErrorIs(t, err, apperrors.ErrSlotConflict)
	})

	t.Run("unknown client or therapist", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO appointments").
			WithArgs(appt.ID, appt.ClientID, appt.TherapistID, appt.Time, appt.CreatedAt).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		err := r.Create(ctx, appt)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})
}

func TestAppointmentRepository_GetByTherapistAndTime(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewAppointmentRepository(mock)
	ctx := context.Background()
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("booked slot", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, client_id").
			WithArgs("t1", at).
			WillReturnRows(pgxmock.NewRows(appointmentColumns).
				AddRow("a1", "c1", "t1", at, time.Now()))

		appt, err := r.GetByTherapistAndTime(ctx, "t1", at)
		require.NoError(t, err)
		assert.Equal(t, "a1", appt.ID)
	})

	t.Run("free slot", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, client_id").
			WithArgs("t1", at).
			WillReturnError(pgx.ErrNoRows)

		appt, err := r.GetByTherapistAndTime(ctx, "t1", at)
		require.NoError(t, err)
		assert.Nil(t, appt)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, client_id").
			WithArgs("t1", at).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetByTherapistAndTime(ctx, "t1", at)
		assert.Error(t, err)
	})
}

func TestAppointmentRepository_ListByTherapist(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewAppointmentRepository(mock)
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	t.Run("half-open range", func(t *testing.T) {
		rows := pgxmock.NewRows(appointmentColumns).
			AddRow("a1", "c1", "t1", start.Add(10*time.Hour), time.Now()).
			AddRow("a2", "c2", "t1", start.Add(11*time.Hour), time.Now())

		mock.ExpectQuery(`appointment_time < \$3`).
			WithArgs("t1", start, end).
			WillReturnRows(rows)

		appts, err := r.ListByTherapist(ctx, "t1", start, end, false)
		require.NoError(t, err)
		assert.Len(t, appts, 2)
	})

	t.Run("inclusive end", func(t *testing.T) {
		mock.ExpectQuery(`appointment_time <= \$3`).
			WithArgs("t1", start, end).
			WillReturnRows(pgxmock.NewRows(appointmentColumns))

		appts, err := r.ListByTherapist(ctx, "t1", start, end, true)
		require.NoError(t, err)
		assert.Empty(t, appts)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, client_id").
			WithArgs("t1", start, end).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.ListByTherapist(ctx, "t1", start, end, false)
		assert.Error(t, err)
	})
}
