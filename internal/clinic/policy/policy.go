// Package policy is the access rule table for the clinic core. It is the only
// place role semantics live; services ask Authorize instead of comparing roles
// themselves.
package policy

import (
	"time"

	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
	apperrors "github.com/thenoobgamer12/margawellness/internal/errors"
)

// Action is a closed set of operations subject to authorization.
type Action string

const (
	ActionReadClient            Action = "client:read"
	ActionCreateClient          Action = "client:create"
	ActionUpdateClient          Action = "client:update"
	ActionUpdateClientDocuments Action = "client:update-documents"
	ActionDeleteClient          Action = "client:delete"
	ActionReadSchedule          Action = "schedule:read"
	ActionBookAppointment       Action = "schedule:book"
	ActionManageUsers           Action = "users:manage"
	ActionDeleteUser            Action = "users:delete"
	ActionListTherapists        Action = "users:list-therapists"
	ActionChangePassword        Action = "users:change-password"
	ActionClearData             Action = "system:clear-data"
	ActionReadAuditLog          Action = "audit:read"
)

// Resource identifies the target of an action. OwnerTherapistID carries the
// assigned therapist of a client, or the therapist whose calendar is being
// read; ID carries the target's own identifier (for user-targeted actions).
type Resource struct {
	Type             string
	ID               string
	OwnerTherapistID string
}

// Authorize evaluates the rule table in order and returns nil on allow,
// ErrUnauthenticated for missing or expired claims, and ErrForbidden on deny.
func Authorize(claims *domain.Claims, action Action, res Resource) error {
	if claims == nil || claims.Expired(time.Now()) {
		return apperrors.ErrUnauthenticated
	}

	switch claims.Role {
	case domain.RoleAdmin:
		// Admins may do everything except remove their own account.
		if action == ActionDeleteUser && res.ID == claims.UserID {
			return apperrors.ErrForbidden
		}
		return nil

	case domain.RoleTherapist:
		switch action {
		case ActionReadClient, ActionUpdateClientDocuments:
			if res.OwnerTherapistID != "" && res.OwnerTherapistID == claims.UserID {
				return nil
			}
			return apperrors.ErrForbidden
		case ActionReadSchedule:
			if res.OwnerTherapistID == claims.UserID {
				return nil
			}
			return apperrors.ErrForbidden
		case ActionChangePassword:
			if res.ID == claims.UserID {
				return nil
			}
			return apperrors.ErrForbidden
		case ActionListTherapists:
			return nil
		}
		return apperrors.ErrForbidden
	}

	return apperrors.ErrForbidden
}

// ClientScope returns the row filter for list-type client reads. It is applied
// at the query boundary so out-of-scope rows are never fetched, not filtered
// afterwards.
func ClientScope(claims *domain.Claims) domain.ClientScope {
	if claims != nil && claims.Role == domain.RoleTherapist {
		id := claims.UserID
		return domain.ClientScope{TherapistID: &id}
	}
	return domain.ClientScope{}
}

// RequiresCurrentPassword reports whether a password change must present the
// current password: always for self-service, never for an Admin acting on
// another account.
func RequiresCurrentPassword(claims *domain.Claims, targetUserID string) bool {
	if claims == nil {
		return true
	}
	return claims.Role != domain.RoleAdmin || claims.UserID == targetUserID
}
