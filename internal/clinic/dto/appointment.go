package dto

import (
	"time"

	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
)

type BookingInput struct {
	ClientID        string    `json:"client_id" validate:"required"`
	TherapistID     string    `json:"therapist_id" validate:"required"`
	AppointmentTime time.Time `json:"appointment_time" validate:"required"`
}

type AppointmentOutput struct {
	ID              string    `json:"id"`
	ClientID        string    `json:"client_id"`
	TherapistID     string    `json:"therapist_id"`
	AppointmentTime time.Time `json:"appointment_time"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewAppointmentOutput(a *domain.Appointment) AppointmentOutput {
	return AppointmentOutput{
		ID:              a.ID,
		ClientID:        a.ClientID,
		TherapistID:     a.TherapistID,
		AppointmentTime: a.Time,
		CreatedAt:       a.CreatedAt,
	}
}

type SlotOutput struct {
	Time        time.Time          `json:"time"`
	Label       string             `json:"label"`
	Booked      bool               `json:"booked"`
	Appointment *AppointmentOutput `json:"appointment,omitempty"`
}

func NewSlotOutput(s domain.Slot) SlotOutput {
	out := SlotOutput{
		Time:   s.Time,
		Label:  s.Label,
		Booked: s.Booked(),
	}
	if s.Appointment != nil {
		appt := NewAppointmentOutput(s.Appointment)
		out.Appointment = &appt
	}
	return out
}
