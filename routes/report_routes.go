package routes

import (
	"github.com/emrekoc/pilates_studio/handlers"
	"github.com/emrekoc/pilates_studio/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReportRoutes(app *fiber.App, h *handlers.ReportHandler) {
	api := app.Group("/api/v1")

	reports := api.Group("/reports", middleware.Protected(), middleware.AdminRequired())
	reports.Get("/dashboard", h.GetDashboardAnalytics)
	reports.Get("/transactions", h.GenerateTransactionReport)
	reports.Get("/classes", h.GenerateClassReport)
}
