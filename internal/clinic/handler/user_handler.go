package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thenoobgamer12/margawellness/internal/clinic/domain"
	"github.com/thenoobgamer12/margawellness/internal/clinic/dto"
	"github.com/thenoobgamer12/margawellness/internal/clinic/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.Context(), ClaimsFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(userOutputs(users))
}

func (h *UserHandler) ListTherapists(c *fiber.Ctx) error {
	users, err := h.users.ListTherapists(c.Context(), ClaimsFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(userOutputs(users))
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	var input dto.UpdateUserInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	user, err := h.users.UpdateUser(c.Context(), ClaimsFromContext(c), c.Params("id"), input)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewUserOutput(user))
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.DeleteUser(c.Context(), ClaimsFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangePassword backs both POST /users/:id/change-password and the legacy
// PUT /users/:id/password alias.
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var input dto.ChangePasswordInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	if err := h.users.ChangePassword(c.Context(), ClaimsFromContext(c), c.Params("id"), input); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "password updated"})
}

func userOutputs(users []domain.User) []dto.UserOutput {
	out := make([]dto.UserOutput, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserOutput(&users[i]))
	}
	return out
}
