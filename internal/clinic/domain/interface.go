package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
}

type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	Update(ctx context.Context, client *Client) error
	UpdateDocuments(ctx context.Context, id, caseHistoryDoc, sessionSummaryDoc string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, scope ClientScope) ([]Client, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt *Appointment) error
	GetByTherapistAndTime(ctx context.Context, therapistID string, at time.Time) (*Appointment, error)
	ListByTherapist(ctx context.Context, therapistID string, start, end time.Time, inclusiveEnd bool) ([]Appointment, error)
}

type AuditRepository interface {
	Insert(ctx context.Context, event *AuditEvent) error
	List(ctx context.Context, limit int) ([]AuditEvent, error)
}

// SystemRepository covers destructive maintenance. Users and the audit trail
// survive a clear; client and appointment data do not.
type SystemRepository interface {
	ClearClientData(ctx context.Context) error
}
