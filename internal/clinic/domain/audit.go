package domain

import "time"

// AuditEvent records a security- or data-relevant action. Writes are
// fire-and-forget: a failed audit insert never fails the action it describes.
type AuditEvent struct {
	ID          string
	ActorUserID string
	Action      string
	TargetType  string
	TargetID    string
	Details     string
	CreatedAt   time.Time
}

// Audit action names, kept stable for log consumers.
const (
	AuditUserRegistered  = "USER_REGISTERED"
	AuditUserUpdated     = "USER_UPDATED"
	AuditUserDeleted     = "USER_DELETED"
	AuditLoginSuccess    = "LOGIN_SUCCESS"
	AuditLoginFailure    = "LOGIN_FAILURE"
	AuditPasswordChanged = "PASSWORD_CHANGED"
	AuditClientCreated   = "CLIENT_CREATED"
	AuditClientUpdated   = "CLIENT_UPDATED"
	AuditClientDeleted   = "CLIENT_DELETED"
	AuditSlotBooked      = "APPOINTMENT_BOOKED"
	AuditClearSuccess    = "CLEAR_DATABASE_SUCCESS"
	AuditClearFailure    = "CLEAR_DATABASE_FAILURE"
)
