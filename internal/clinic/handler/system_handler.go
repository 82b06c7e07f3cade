package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thenoobgamer12/margawellness/internal/clinic/dto"
	"github.com/thenoobgamer12/margawellness/internal/clinic/service"
)

type SystemHandler struct {
	system *service.SystemService
}

func NewSystemHandler(system *service.SystemService) *SystemHandler {
	return &SystemHandler{system: system}
}

func (h *SystemHandler) ClearDatabase(c *fiber.Ctx) error {
	var input dto.ClearDatabaseInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	if err := h.system.ClearDatabase(c.Context(), ClaimsFromContext(c), input.Password); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "client and schedule data cleared"})
}

func (h *SystemHandler) ListAuditEvents(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)

	events, err := h.system.ListAuditEvents(c.Context(), ClaimsFromContext(c), limit)
	if err != nil {
		return err
	}

	out := make([]dto.AuditEventOutput, 0, len(events))
	for i := range events {
		out = append(out, dto.NewAuditEventOutput(&events[i]))
	}
	return c.JSON(out)
}
