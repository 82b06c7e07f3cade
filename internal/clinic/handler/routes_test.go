package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoobgamer12/margawellness/config"
	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
	"github.com/thenoobgamer12/margawellness/internal/clinic/dto"
	"github.com/thenoobgamer12/margawellness/internal/clinic/handler"
	"github.com/thenoobgamer12/margawellness/internal/clinic/service"
	apperrors "github.com/thenoobgamer12/margawellness/internal/errors"
	"github.com/thenoobgamer12/margawellness/internal/mocks"
)

// apiFixture wires the full route table against mocked repositories, the way
// cmd/main does against Postgres.
type apiFixture struct {
	app          *fiber.App
	tokens       *service.TokenService
	users        *mocks.MockUserRepository
	clients      *mocks.MockClientRepository
	appointments *mocks.MockAppointmentRepository
	auditRepo    *mocks.MockAuditRepository
	system       *mocks.MockSystemRepository
	sink         *mocks.MockAuditSink
}

func newAPIFixture(t *testing.T) *apiFixture {
	return newAPIFixtureTZ(t, "UTC")
}

func newAPIFixtureTZ(t *testing.T, timezone string) *apiFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &apiFixture{
		tokens:       service.NewTokenService("test-secret", 60),
		users:        mocks.NewMockUserRepository(ctrl),
		clients:      mocks.NewMockClientRepository(ctrl),
		appointments: mocks.NewMockAppointmentRepository(ctrl),
		auditRepo:    mocks.NewMockAuditRepository(ctrl),
		system:       mocks.NewMockSystemRepository(ctrl),
		sink:         mocks.NewMockAuditSink(ctrl),
	}
	f.sink.EXPECT().Record(gomock.Any()).AnyTimes()

	scheduleCfg := config.ScheduleConfig{StartHour: 9, EndHour: 20, SlotMinutes: 45, TimezoneName: timezone}

	userService := service.NewUserService(f.users, f.tokens, f.sink)
	clientService := service.NewClientService(f.clients, f.sink)
	scheduleService := service.NewScheduleService(f.appointments, scheduleCfg, f.sink)
	systemService := service.NewSystemService(f.users, f.system, f.auditRepo, f.sink)

	f.app = newTestApp()
	handler.RegisterRoutes(f.app, handler.Handlers{
		Auth:         handler.NewAuthHandler(userService),
		Clients:      handler.NewClientHandler(clientService),
		Appointments: handler.NewAppointmentHandler(scheduleService),
		Users:        handler.NewUserHandler(userService),
		System:       handler.NewSystemHandler(systemService),
	}, f.tokens)

	return f
}

func (f *apiFixture) tokenFor(t *testing.T, id, username string, role domain.Role) string {
	t.Helper()
	token, _, err := f.tokens.Issue(&domain.User{ID: id, Username: username, Role: role})
	require.NoError(t, err)
	return token
}

func (f *apiFixture) do(t *testing.T, req *http.Request, token string) *http.Response {
	t.Helper()
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRoutes_ProtectedWithoutToken(t *testing.T) {
	f := newAPIFixture(t)

	for _, target := range []string{
		"/api/v1/clients",
		"/api/v1/appointments/slots",
		"/api/v1/users",
		"/api/v1/logs",
	} {
		resp := f.do(t, httptest.NewRequest("GET", target, nil), "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, target)
	}
}

func TestRoutes_BookAppointment(t *testing.T) {
	slot := time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC)
	input := dto.BookingInput{ClientID: "c1", TherapistID: "t1", AppointmentTime: slot}

	t.Run("admin books", func(t *testing.T) {
		f := newAPIFixture(t)
		token := f.tokenFor(t, "admin-1", "admin", domain.RoleAdmin)

		f.appointments.EXPECT().GetByTherapistAndTime(gomock.Any(), "t1", slot).Return(nil, nil)
		f.appointments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp := f.do(t, request(t, "POST", "/api/v1/appointments", input), token)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var out dto.AppointmentOutput
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.True(t, out.AppointmentTime.Equal(slot))
	})

	t.Run("taken slot answers 409", func(t *testing.T) {
		f := newAPIFixture(t)
		token := f.tokenFor(t, "admin-1", "admin", domain.RoleAdmin)

		f.appointments.EXPECT().GetByTherapistAndTime(gomock.Any(), "t1", slot).Return(nil, nil)
		f.appointments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(apperrors.ErrSlotConflict)

		resp := f.do(t, request(t, "POST", "/api/v1/appointments", input), token)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "appointment slot already booked", body["error"])
	})

	t.Run("therapist answers 403", func(t *testing.T) {
		f := newAPIFixture(t)
		token := f.tokenFor(t, "t1", "therapist1", domain.RoleTherapist)

		resp := f.do(t, request(t, "POST", "/api/v1/appointments", input), token)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestRoutes_SlotBoard(t *testing.T) {
	f := newAPIFixture(t)
	token := f.tokenFor(t, "t1", "therapist1", domain.RoleTherapist)

	f.appointments.EXPECT().
		ListByTherapist(gomock.Any(), "t1", gomock.Any(), gomock.Any(), false).
		Return(nil, nil)

	req := httptest.NewRequest("GET", "/api/v1/appointments/slots?therapist_id=t1&date=2024-03-04", nil)
	resp := f.do(t, req, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var slots []dto.SlotOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&slots))
	require.Len(t, slots, 15)
	assert.Equal(t, "09:00 AM", slots[0].Label)
	assert.Equal(t, "07:30 PM", slots[14].Label)
	for _, s := range slots {
		assert.False(t, s.Booked)
	}
}

func TestRoutes_SlotBoard_WestOfUTC(t *testing.T) {
	f := newAPIFixtureTZ(t, "America/New_York")
	token := f.tokenFor(t, "t1", "therapist1", domain.RoleTherapist)

	f.appointments.EXPECT().
		ListByTherapist(gomock.Any(), "t1", gomock.Any(), gomock.Any(), false).
		Return(nil, nil)

	req := httptest.NewRequest("GET", "/api/v1/appointments/slots?therapist_id=t1&date=2024-01-15", nil)
	resp := f.do(t, req, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var slots []dto.SlotOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&slots))
	require.Len(t, slots, 15)

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	for _, s := range slots {
		y, m, d := s.Time.In(loc).Date()
		assert.Equal(t, 2024, y)
		assert.Equal(t, time.January, m)
		assert.Equal(t, 15, d, "slot %s fell outside the requested day", s.Label)
	}
	assert.Equal(t, "09:00 AM", slots[0].Label)
}

func TestRoutes_SlotBoard_BadDate(t *testing.T) {
	f := newAPIFixture(t)
	token := f.tokenFor(t, "t1", "therapist1", domain.RoleTherapist)

	req := httptest.NewRequest("GET", "/api/v1/appointments/slots?therapist_id=t1&date=04-03-2024", nil)
	resp := f.do(t, req, token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRoutes_ListAppointments(t *testing.T) {
	f := newAPIFixture(t)
	token := f.tokenFor(t, "admin-1", "admin", domain.RoleAdmin)

	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	f.appointments.EXPECT().ListByTherapist(gomock.Any(), "t1", start, end, true).Return(nil, nil)

	target := "/api/v1/appointments?therapist_id=t1&start_date=2024-03-04T00:00:00Z&end_date=2024-03-11T00:00:00Z&inclusive_end=true"
	resp := f.do(t, httptest.NewRequest("GET", target, nil), token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRoutes_ClientScoping(t *testing.T) {
	f := newAPIFixture(t)
	token := f.tokenFor(t, "t1", "therapist1", domain.RoleTherapist)

	f.clients.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, scope domain.ClientScope) ([]domain.Client, error) {
			require.NotNil(t, scope.TherapistID)
			assert.Equal(t, "t1", *scope.TherapistID)
			return []domain.Client{{ID: "c1", Name: "Alice", AssignedTherapistID: "t1", Status: domain.ClientOpen}}, nil
		})

	resp := f.do(t, httptest.NewRequest("GET", "/api/v1/clients", nil), token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []dto.ClientOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, "Alice", out[0].Name)
}

func TestRoutes_AuditLogAdminOnly(t *testing.T) {
	t.Run("admin reads the log", func(t *testing.T) {
		f := newAPIFixture(t)
		token := f.tokenFor(t, "admin-1", "admin", domain.RoleAdmin)

		f.auditRepo.EXPECT().List(gomock.Any(), 100).
			Return([]domain.AuditEvent{{ID: "e1", Action: domain.AuditSlotBooked, CreatedAt: time.Now()}}, nil)

		resp := f.do(t, httptest.NewRequest("GET", "/api/v1/logs", nil), token)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out []dto.AuditEventOutput
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Len(t, out, 1)
		assert.Equal(t, domain.AuditSlotBooked, out[0].Action)
	})

	t.Run("therapist is refused", func(t *testing.T) {
		f := newAPIFixture(t)
		token := f.tokenFor(t, "t1", "therapist1", domain.RoleTherapist)

		resp := f.do(t, httptest.NewRequest("GET", "/api/v1/logs", nil), token)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestRoutes_ClearDatabase(t *testing.T) {
	f := newAPIFixture(t)
	token := f.tokenFor(t, "admin-1", "admin", domain.RoleAdmin)

	f.users.EXPECT().GetByID(gomock.Any(), "admin-1").
		Return(&domain.User{ID: "admin-1", Role: domain.RoleAdmin, PasswordHash: "$2a$04$invalidhashinvalidhashinvalidhashinvalid"}, nil)

	resp := f.do(t, request(t, "POST", "/api/v1/system/clear-database", dto.ClearDatabaseInput{Password: "wrong"}), token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
