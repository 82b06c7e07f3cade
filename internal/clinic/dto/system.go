package dto

import (
	"time"

	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
)

type ClearDatabaseInput struct {
	// Password re-authenticates the acting admin before the wipe.
	Password string `json:"password" validate:"required"`
}

type AuditEventOutput struct {
	ID          string    `json:"id"`
	ActorUserID string    `json:"actor_user_id,omitempty"`
	Action      string    `json:"action"`
	TargetType  string    `json:"target_type,omitempty"`
	TargetID    string    `json:"target_id,omitempty"`
	Details     string    `json:"details,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewAuditEventOutput(e *domain.AuditEvent) AuditEventOutput {
	return AuditEventOutput{
		ID:          e.ID,
		ActorUserID: e.ActorUserID,
		Action:      e.Action,
		TargetType:  e.TargetType,
		TargetID:    e.TargetID,
		Details:     e.Details,
		CreatedAt:   e.CreatedAt,
	}
}
