package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/support-desk/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Page         *handlers.PageHandler
	Chat         *handlers.ChatHandler
	Tickets      *handlers.TicketsHandler
	Appointments *handlers.AppointmentsHandler
	Metrics      nethttp.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	app.Get("/", cfg.Page.Index)
	app.Post("/chat", cfg.Page.Chat)
	app.Post("/tickets", cfg.Page.SubmitTicket)
	app.Post("/tickets/:id/toggle", cfg.Page.ToggleTicket)
	app.Post("/appointments", cfg.Page.BookAppointment)
	app.Post("/appointments/:id/cancel", cfg.Page.CancelAppointment)

	api := app.Group("/api")
	api.Get("/chat", cfg.Chat.Transcript)
	api.Post("/chat", cfg.Chat.Send)
	api.Get("/tickets", cfg.Tickets.ListTickets)
	api.Post("/tickets", cfg.Tickets.CreateTicket)
	api.Post("/tickets/:id/toggle", cfg.Tickets.ToggleStatus)
	api.Get("/appointments", cfg.Appointments.List)
	api.Post("/appointments", cfg.Appointments.Book)
	api.Delete("/appointments/:id", cfg.Appointments.Cancel)
}
