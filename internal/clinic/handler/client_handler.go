package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thenoobgamer12/margawellness/internal/clinic/dto"
	"github.com/thenoobgamer12/margawellness/internal/clinic/service"
)

type ClientHandler struct {
	clients *service.ClientService
}

func NewClientHandler(clients *service.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

func (h *ClientHandler) List(c *fiber.Ctx) error {
	clients, err := h.clients.List(c.Context(), ClaimsFromContext(c))
	if err != nil {
		return err
	}

	out := make([]dto.ClientOutput, 0, len(clients))
	for i := range clients {
		out = append(out, dto.NewClientOutput(&clients[i]))
	}
	return c.JSON(out)
}

func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var input dto.ClientInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	client, err := h.clients.Create(c.Context(), ClaimsFromContext(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewClientOutput(client))
}

func (h *ClientHandler) Get(c *fiber.Ctx) error {
	client, err := h.clients.Get(c.Context(), ClaimsFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewClientOutput(client))
}

func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var input dto.ClientInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	client, err := h.clients.Update(c.Context(), ClaimsFromContext(c), c.Params("id"), input)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewClientOutput(client))
}

func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.clients.Delete(c.Context(), ClaimsFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
