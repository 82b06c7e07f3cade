package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
	"github.com/thenoobgamer12/margawellness/internal/clinic/service"
	apperrors "github.com/thenoobgamer12/margawellness/internal/errors"
	"github.com/thenoobgamer12/margawellness/internal/mocks"
)

func TestSystemService_ClearDatabase(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &domain.User{ID: "admin-1", Username: "admin", Role: domain.RoleAdmin, PasswordHash: string(hash)}

	t.Run("correct password clears the data", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUsers := mocks.NewMockUserRepository(ctrl)
		mockSystem := mocks.NewMockSystemRepository(ctrl)
		mockSink := mocks.NewMockAuditSink(ctrl)
		s := service.NewSystemService(mockUsers, mockSystem, mocks.NewMockAuditRepository(ctrl), mockSink)

		mockUsers.EXPECT().GetByID(gomock.Any(), "admin-1").Return(admin, nil)
		mockSystem.EXPECT().ClearClientData(gomock.Any()).Return(nil)
		mockSink.EXPECT().Record(gomock.Any()).Do(func(ev domain.AuditEvent) {
			assert.Equal(t, domain.AuditClearSuccess, ev.Action)
		})

		err := s.ClearDatabase(context.Background(), freshClaims("admin-1", domain.RoleAdmin), "adminpass")
		assert.NoError(t, err)
	})

	t.Run("wrong password is rejected before anything is touched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUsers := mocks.NewMockUserRepository(ctrl)
		s := service.NewSystemService(mockUsers, mocks.NewMockSystemRepository(ctrl), mocks.NewMockAuditRepository(ctrl), mocks.NewMockAuditSink(ctrl))

		mockUsers.EXPECT().GetByID(gomock.Any(), "admin-1").Return(admin, nil)

		err := s.ClearDatabase(context.Background(), freshClaims("admin-1", domain.RoleAdmin), "guess")
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("therapist is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s := service.NewSystemService(mocks.NewMockUserRepository(ctrl), mocks.NewMockSystemRepository(ctrl), mocks.NewMockAuditRepository(ctrl), mocks.NewMockAuditSink(ctrl))

		err := s.ClearDatabase(context.Background(), freshClaims("t1", domain.RoleTherapist), "adminpass")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("wipe failure is audited", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUsers := mocks.NewMockUserRepository(ctrl)
		mockSystem := mocks.NewMockSystemRepository(ctrl)
		mockSink := mocks.NewMockAuditSink(ctrl)
		s := service.NewSystemService(mockUsers, mockSystem, mocks.NewMockAuditRepository(ctrl), mockSink)

		wipeErr := errors.New("truncate failed")
		mockUsers.EXPECT().GetByID(gomock.Any(), "admin-1").Return(admin, nil)
		mockSystem.EXPECT().ClearClientData(gomock.Any()).Return(wipeErr)
		mockSink.EXPECT().Record(gomock.Any()).Do(func(ev domain.AuditEvent) {
			assert.Equal(t, domain.AuditClearFailure, ev.Action)
		})

		err := s.ClearDatabase(context.Background(), freshClaims("admin-1", domain.RoleAdmin), "adminpass")
		assert.ErrorIs(t, err, wipeErr)
	})
}

func TestSystemService_ListAuditEvents(t *testing.T) {
	t.Run("admin reads with clamped limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAudit := mocks.NewMockAuditRepository(ctrl)
		s := service.NewSystemService(mocks.NewMockUserRepository(ctrl), mocks.NewMockSystemRepository(ctrl), mockAudit, mocks.NewMockAuditSink(ctrl))

		mockAudit.EXPECT().List(gomock.Any(), 100).Return([]domain.AuditEvent{{ID: "e1"}}, nil)

		events, err := s.ListAuditEvents(context.Background(), freshClaims("admin-1", domain.RoleAdmin), 0)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})

	t.Run("explicit limit passes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAudit := mocks.NewMockAuditRepository(ctrl)
		s := service.NewSystemService(mocks.NewMockUserRepository(ctrl), mocks.NewMockSystemRepository(ctrl), mockAudit, mocks.NewMockAuditSink(ctrl))

		mockAudit.EXPECT().List(gomock.Any(), 25).Return(nil, nil)

		_, err := s.ListAuditEvents(context.Background(), freshClaims("admin-1", domain.RoleAdmin), 25)
		assert.NoError(t, err)
	})

	t.Run("therapist is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s := service.NewSystemService(mocks.NewMockUserRepository(ctrl), mocks.NewMockSystemRepository(ctrl), mocks.NewMockAuditRepository(ctrl), mocks.NewMockAuditSink(ctrl))

		_, err := s.ListAuditEvents(context.Background(), freshClaims("t1", domain.RoleTherapist), 10)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}
