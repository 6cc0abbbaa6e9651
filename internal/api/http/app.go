package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/api/http/handlers"
	"github.com/spec-kit/support-desk/internal/config"
	"github.com/spec-kit/support-desk/internal/observability"
	"github.com/spec-kit/support-desk/internal/service"
	"github.com/spec-kit/support-desk/internal/ui"
)

// AppDependencies is everything NewApp wires into the fiber app.
type AppDependencies struct {
	Config       *config.Config
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	Store        handlers.Pinger
	Chat         *service.ChatService
	Tickets      *service.TicketService
	Appointments *service.AppointmentService
}

// NewApp builds the fiber app with views, middlewares and routes.
func NewApp(deps AppDependencies) *fiber.App {
	engine := html.NewFileSystem(nethttp.FS(ui.Templates()), ".html")

	app := fiber.New(fiber.Config{
		AppName:               deps.Config.App.Name,
		Views:                 engine,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, deps.Logger, deps.Metrics, deps.Config.Session, deps.Config.App.RequestTimeout())

	RegisterRoutes(app, RouteConfig{
		Health:       handlers.NewHealthHandler(deps.Config.App.Name, deps.Config.App.Version, deps.Store),
		Page:         handlers.NewPageHandler(deps.Chat, deps.Tickets, deps.Appointments, deps.Logger),
		Chat:         handlers.NewChatHandler(deps.Chat),
		Tickets:      handlers.NewTicketsHandler(deps.Tickets),
		Appointments: handlers.NewAppointmentsHandler(deps.Appointments),
		Metrics:      deps.Metrics.Handler(),
	})
	return app
}
