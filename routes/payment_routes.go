package routes

import (
	"github.com/emrekoc/pilates_studio/handlers"
	"github.com/emrekoc/pilates_studio/middleware"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	payments := api.Group("/payments", middleware.Protected())
	payments.Post("", handlers.CreatePayment)
	payments.Get("", handlers.ListPayments)
	payments.Get("/summary", handlers.GetPaymentSummary)
}
