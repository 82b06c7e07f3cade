package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
	"github.com/thenoobgamer12/margawellness/internal/clinic/policy"
	apperrors "github.com/thenoobgamer12/margawellness/internal/errors"
)

// SystemService covers destructive maintenance and the audit log view.
type SystemService struct {
	users     domain.UserRepository
	system    domain.SystemRepository
	auditRepo domain.AuditRepository
	audit     AuditSink
}

func NewSystemService(users domain.UserRepository, system domain.SystemRepository, auditRepo domain.AuditRepository, audit AuditSink) *SystemService {
	return &SystemService{
		users:     users,
		system:    system,
		auditRepo: auditRepo,
		audit:     audit,
	}
}

// ClearDatabase wipes client and appointment data after re-authenticating the
// acting admin with their password. User accounts and the audit trail are
// kept. A bearer token alone is not enough for this one.
func (s *SystemService) ClearDatabase(ctx context.Context, acting *domain.Claims, password string) error {
	if err := policy.Authorize(acting, policy.ActionClearData, policy.Resource{Type: "system"}); err != nil {
		return err
	}

	admin, err := s.users.GetByID(ctx, acting.UserID)
	if err != nil {
		return err
	}
	if admin == nil {
		return apperrors.ErrNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return fmt.Errorf("%w: incorrect admin password", apperrors.ErrUnauthenticated)
	}

	if err := s.system.ClearClientData(ctx); err != nil {
		s.audit.Record(domain.AuditEvent{
			ActorUserID: acting.UserID,
			Action:      domain.AuditClearFailure,
			TargetType:  "system",
			Details:     err.Error(),
		})
		return err
	}

	s.audit.Record(domain.AuditEvent{
		ActorUserID: acting.UserID,
		Action:      domain.AuditClearSuccess,
		TargetType:  "system",
		Details:     "cleared clients and appointments",
	})

	return nil
}

// ListAuditEvents returns the newest audit entries. Admin only.
func (s *SystemService) ListAuditEvents(ctx context.Context, acting *domain.Claims, limit int) ([]domain.AuditEvent, error) {
	if err := policy.Authorize(acting, policy.ActionReadAuditLog, policy.Resource{Type: "audit"}); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.auditRepo.List(ctx, limit)
}
