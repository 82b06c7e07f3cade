package service

//go:generate mockgen -destination=../../mocks/mock_repositories.go -package=mocks github.com/thenoobgamer12/margawellness/internal/clinic/domain UserRepository,ClientRepository,AppointmentRepository,AuditRepository,SystemRepository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
	"github.com/thenoobgamer12/margawellness/internal/clinic/dto"
	"github.com/thenoobgamer12/margawellness/internal/clinic/policy"
	apperrors "github.com/thenoobgamer12/margawellness/internal/errors"
	"github.com/thenoobgamer12/margawellness/pkg/constant"
)

// dummyHash keeps login cost uniform when the username does not exist: the
// bcrypt comparison runs either way, so absent and present users are not
// distinguishable by timing.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("margawellness-timing-pad"), constant.BcryptCost)

type UserService struct {
	repo   domain.UserRepository
	tokens TokenGenerator
	audit  AuditSink
}

func NewUserService(repo domain.UserRepository, tokens TokenGenerator, audit AuditSink) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		audit:  audit,
	}
}

// Register creates a user with a bcrypt-hashed password. A duplicate username
// fails with ErrUsernameTaken whether it is caught by the lookup or by the
// unique constraint underneath.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidRequest, err)
	}

	existing, err := s.repo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), constant.BcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		ActorUserID: user.ID,
		Action:      domain.AuditUserRegistered,
		TargetType:  "user",
		TargetID:    user.ID,
		Details:     fmt.Sprintf("registered %s as %s", user.Username, user.Role),
	})

	return user, nil
}

// Login verifies credentials and issues a session token. The error is the
// same whether the user is absent or the password is wrong.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResponse, error) {
	user, err := s.repo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}

	hash := dummyHash
	if user != nil {
		hash = []byte(user.PasswordHash)
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(input.Password)) != nil || user == nil {
		s.audit.Record(domain.AuditEvent{
			Action:     domain.AuditLoginFailure,
			TargetType: "user",
			Details:    fmt.Sprintf("failed login for %q", input.Username),
		})
		return nil, apperrors.ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		ActorUserID: user.ID,
		Action:      domain.AuditLoginSuccess,
		TargetType:  "user",
		TargetID:    user.ID,
	})

	return &dto.LoginResponse{
		Token: token,
		User:  dto.NewUserOutput(user),
	}, nil
}

// Verify validates a raw token string and returns its claim set.
func (s *UserService) Verify(tokenString string) (*domain.Claims, error) {
	return s.tokens.Verify(tokenString)
}

// ChangePassword replaces the target user's password hash. Self-service
// requires the current password; an Admin acting on another account does not.
// Existing session tokens stay valid until they expire.
func (s *UserService) ChangePassword(ctx context.Context, acting *domain.Claims, targetID string, input dto.ChangePasswordInput) error {
	if err := policy.Authorize(acting, policy.ActionChangePassword, policy.Resource{Type: "user", ID: targetID}); err != nil {
		return err
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return apperrors.ErrNotFound
	}

	if policy.RequiresCurrentPassword(acting, targetID) {
		if bcrypt.CompareHashAndPassword([]byte(target.PasswordHash), []byte(input.OldPassword)) != nil {
			return apperrors.ErrInvalidCredentials
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), constant.BcryptCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, targetID, string(hash)); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEvent{
		ActorUserID: acting.UserID,
		Action:      domain.AuditPasswordChanged,
		TargetType:  "user",
		TargetID:    targetID,
	})

	return nil
}

// ListUsers returns every account. Admin only.
func (s *UserService) ListUsers(ctx context.Context, acting *domain.Claims) ([]domain.User, error) {
	if err := policy.Authorize(acting, policy.ActionManageUsers, policy.Resource{Type: "user"}); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// ListTherapists returns therapist accounts for schedule and assignment
// pickers. Available to any authenticated caller.
func (s *UserService) ListTherapists(ctx context.Context, acting *domain.Claims) ([]domain.User, error) {
	if err := policy.Authorize(acting, policy.ActionListTherapists, policy.Resource{Type: "user"}); err != nil {
		return nil, err
	}
	return s.repo.ListByRole(ctx, domain.RoleTherapist)
}

// UpdateUser changes username and role. Admin only.
func (s *UserService) UpdateUser(ctx context.Context, acting *domain.Claims, targetID string, input dto.UpdateUserInput) (*domain.User, error) {
	if err := policy.Authorize(acting, policy.ActionManageUsers, policy.Resource{Type: "user", ID: targetID}); err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidRequest, err)
	}

	user, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}

	user.Username = input.Username
	user.Role = role
	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		ActorUserID: acting.UserID,
		Action:      domain.AuditUserUpdated,
		TargetType:  "user",
		TargetID:    targetID,
	})

	return user, nil
}

// DeleteUser removes an account. Admins cannot delete themselves. Clients of
// a deleted therapist are unassigned by the store; their appointments go with
// the account.
func (s *UserService) DeleteUser(ctx context.Context, acting *domain.Claims, targetID string) error {
	if err := policy.Authorize(acting, policy.ActionDeleteUser, policy.Resource{Type: "user", ID: targetID}); err != nil {
		return err
	}

	user, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.ErrNotFound
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEvent{
		ActorUserID: acting.UserID,
		Action:      domain.AuditUserDeleted,
		TargetType:  "user",
		TargetID:    targetID,
		Details:     fmt.Sprintf("deleted %s", user.Username),
	})

	return nil
}
