package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/thenoobgamer12/margawellness/internal/clinic/dto"
	"github.com/thenoobgamer12/margawellness/internal/clinic/service"
	apperrors "github.com/thenoobgamer12/margawellness/internal/errors"
)

type AppointmentHandler struct {
	schedule *service.ScheduleService
}

func NewAppointmentHandler(schedule *service.ScheduleService) *AppointmentHandler {
	return &AppointmentHandler{schedule: schedule}
}

// List serves GET /appointments?therapist_id&start_date&end_date with an
// optional inclusive_end flag. Dates are RFC 3339 instants.
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	therapistID := c.Query("therapist_id")
	start, err := parseInstant(c.Query("start_date"), "start_date")
	if err != nil {
		return err
	}
	end, err := parseInstant(c.Query("end_date"), "end_date")
	if err != nil {
		return err
	}
	inclusiveEnd := c.QueryBool("inclusive_end")

	appts, err := h.schedule.ListAppointments(c.Context(), ClaimsFromContext(c), therapistID, start, end, inclusiveEnd)
	if err != nil {
		return err
	}

	out := make([]dto.AppointmentOutput, 0, len(appts))
	for i := range appts {
		out = append(out, dto.NewAppointmentOutput(&appts[i]))
	}
	return c.JSON(out)
}

// Slots serves GET /appointments/slots?therapist_id&date, the slot board for
// one calendar day.
func (h *AppointmentHandler) Slots(c *fiber.Ctx) error {
	therapistID := c.Query("therapist_id")
	rawDay := c.Query("date")
	if rawDay == "" {
		return fmt.Errorf("%w: date is required", apperrors.ErrInvalidRequest)
	}
	day, err := time.Parse("2006-01-02", rawDay)
	if err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrInvalidRequest)
	}

	slots, err := h.schedule.ListSlots(c.Context(), ClaimsFromContext(c), therapistID, day)
	if err != nil {
		return err
	}

	out := make([]dto.SlotOutput, 0, len(slots))
	for _, s := range slots {
		out = append(out, dto.NewSlotOutput(s))
	}
	return c.JSON(out)
}

func (h *AppointmentHandler) Book(c *fiber.Ctx) error {
	var input dto.BookingInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	appt, err := h.schedule.Book(c.Context(), ClaimsFromContext(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewAppointmentOutput(appt))
}

func parseInstant(raw, name string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", apperrors.ErrInvalidRequest, name)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be RFC 3339", apperrors.ErrInvalidRequest, name)
	}
	return t, nil
}
