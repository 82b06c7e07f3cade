package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/thenoobgamer12/margawellness/config"
	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
	"github.com/thenoobgamer12/margawellness/internal/clinic/dto"
	"github.com/thenoobgamer12/margawellness/internal/clinic/policy"
	apperrors "github.com/thenoobgamer12/margawellness/internal/errors"
)

// ScheduleService manages the slot board. Booking is Admin-only; the
// database's unique constraint on (therapist, time) is what makes concurrent
// bookings of one slot mutually exclusive.
type ScheduleService struct {
	repo  domain.AppointmentRepository
	cfg   config.ScheduleConfig
	audit AuditSink
}

func NewScheduleService(repo domain.AppointmentRepository, cfg config.ScheduleConfig, audit AuditSink) *ScheduleService {
	return &ScheduleService{repo: repo, cfg: cfg, audit: audit}
}

// ListSlots returns every slot of the therapist's working day, each annotated
// with the appointment occupying it, if any. Read-only and deterministic for
// a given (therapist, day).
func (s *ScheduleService) ListSlots(ctx context.Context, acting *domain.Claims, therapistID string, day time.Time) ([]domain.Slot, error) {
	if therapistID == "" {
		return nil, fmt.Errorf("%w: therapist_id is required", apperrors.ErrInvalidRequest)
	}
	if err := policy.Authorize(acting, policy.ActionReadSchedule, policy.Resource{Type: "schedule", OwnerTherapistID: therapistID}); err != nil {
		return nil, err
	}

	loc := s.cfg.Location()
	starts := slotTimes(day, loc, s.cfg.StartHour, s.cfg.EndHour, s.cfg.SlotDuration())
	if len(starts) == 0 {
		return nil, nil
	}

	dayEnd := starts[len(starts)-1].Add(s.cfg.SlotDuration())
	appts, err := s.repo.ListByTherapist(ctx, therapistID, starts[0], dayEnd, false)
	if err != nil {
		return nil, err
	}

	booked := make(map[int64]*domain.Appointment, len(appts))
	for i := range appts {
		booked[appts[i].Time.Unix()] = &appts[i]
	}

	slots := make([]domain.Slot, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, domain.Slot{
			Time:        start,
			Label:       SlotLabel(start, loc),
			Appointment: booked[start.Unix()],
		})
	}
	return slots, nil
}

// Book reserves a slot for a client. The lookup gives double-bookings a clean
// conflict error; when two bookers race past it, the unique constraint turns
// exactly one insert into ErrSlotConflict.
func (s *ScheduleService) Book(ctx context.Context, acting *domain.Claims, input dto.BookingInput) (*domain.Appointment, error) {
	if err := policy.Authorize(acting, policy.ActionBookAppointment, policy.Resource{Type: "schedule", OwnerTherapistID: input.TherapistID}); err != nil {
		return nil, err
	}

	slotTime := input.AppointmentTime.UTC()

	existing, err := s.repo.GetByTherapistAndTime(ctx, input.TherapistID, slotTime)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrSlotConflict
	}

	appt := &domain.Appointment{
		ID:          uuid.NewString(),
		ClientID:    input.ClientID,
		TherapistID: input.TherapistID,
		Time:        slotTime,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		ActorUserID: acting.UserID,
		Action:      domain.AuditSlotBooked,
		TargetType:  "appointment",
		TargetID:    appt.ID,
		Details:     fmt.Sprintf("therapist %s at %s", appt.TherapistID, appt.Time.Format(time.RFC3339)),
	})

	return appt, nil
}

// ListAppointments returns a therapist's appointments inside [start, end),
// or [start, end] when inclusiveEnd is set, ordered by time ascending.
func (s *ScheduleService) ListAppointments(ctx context.Context, acting *domain.Claims, therapistID string, start, end time.Time, inclusiveEnd bool) ([]domain.Appointment, error) {
	if therapistID == "" || start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: therapist_id, start_date and end_date are required", apperrors.ErrInvalidRequest)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date before start_date", apperrors.ErrInvalidRequest)
	}
	if err := policy.Authorize(acting, policy.ActionReadSchedule, policy.Resource{Type: "schedule", OwnerTherapistID: therapistID}); err != nil {
		return nil, err
	}

	return s.repo.ListByTherapist(ctx, therapistID, start, end, inclusiveEnd)
}
