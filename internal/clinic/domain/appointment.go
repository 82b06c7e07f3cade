package domain

import "time"

// Appointment occupies one slot of a therapist's day. The pair
// (TherapistID, Time) is unique; the database constraint is the guarantee,
// application-level checks only improve the error message.
type Appointment struct {
	ID          string
	ClientID    string
	TherapistID string
	Time        time.Time
	CreatedAt   time.Time
}

// Slot is one fixed-width interval of a therapist's working day.
// Appointment is nil when the slot is free.
type Slot struct {
	Time        time.Time
	Label       string
	Appointment *Appointment
}

// Booked reports whether the slot is taken.
func (s Slot) Booked() bool {
	return s.Appointment != nil
}
