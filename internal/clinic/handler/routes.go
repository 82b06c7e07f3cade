package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thenoobgamer12/margawellness/internal/clinic/service"
)

// Handlers bundles everything RegisterRoutes mounts.
type Handlers struct {
	Auth         *AuthHandler
	Clients      *ClientHandler
	Appointments *AppointmentHandler
	Users        *UserHandler
	System       *SystemHandler
}

// RegisterRoutes mounts the API. Everything except register and login sits
// behind the bearer-token middleware; finer-grained authorization lives in
// the services.
func RegisterRoutes(app *fiber.App, h Handlers, tokens service.TokenGenerator) {
	api := app.Group("/api/v1")

	api.Post("/auth/register", h.Auth.Register)
	api.Post("/auth/login", h.Auth.Login)

	authed := api.Group("", RequireAuth(tokens))

	authed.Get("/clients", h.Clients.List)
	authed.Post("/clients", h.Clients.Create)
	authed.Get("/clients/:id", h.Clients.Get)
	authed.Put("/clients/:id", h.Clients.Update)
	authed.Delete("/clients/:id", h.Clients.Delete)

	authed.Get("/appointments", h.Appointments.List)
	authed.Get("/appointments/slots", h.Appointments.Slots)
	authed.Post("/appointments", h.Appointments.Book)

	authed.Get("/users", h.Users.List)
	authed.Get("/users/therapists", h.Users.ListTherapists)
	authed.Put("/users/:id", h.Users.Update)
	authed.Delete("/users/:id", h.Users.Delete)
	authed.Post("/users/:id/change-password", h.Users.ChangePassword)
	authed.Put("/users/:id/password", h.Users.ChangePassword)

	authed.Post("/system/clear-database", h.System.ClearDatabase)
	authed.Get("/logs", h.System.ListAuditEvents)
}
