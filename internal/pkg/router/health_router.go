package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/monitor"

	"github.com/VendoraHQ/Vendora/internal/pkg/constants"
	"github.com/VendoraHQ/Vendora/internal/pkg/env"
)

type HealthRouter struct {
}

func (h HealthRouter) InstallRouter(app *fiber.App) {
	// service banner
	app.Get(constants.PublicRoute, func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"service": "vendora",
			"status":  "ok",
		})
	})

	// fiber metrics
	app.Get(constants.MetricsRoute, basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "test"),
		},
	}), monitor.New())
}

func NewHealthRouter() *HealthRouter {
	return &HealthRouter{}
}
