package routes

import (
	"github.com/emrekoc/pilates_studio/handlers"
	"github.com/emrekoc/pilates_studio/middleware"
	"github.com/gofiber/fiber/v2"
)

func ClassRoutes(app *fiber.App, h *handlers.ClassHandler) {
	api := app.Group("/api/v1")

	classes := api.Group("/classes", middleware.Protected())
	classes.Post("", h.CreateClass)
	classes.Get("", h.ListClasses)
	classes.Get("/today", h.TodayClasses)
	classes.Get("/upcoming", h.UpcomingClasses)
	classes.Get("/:classId", h.GetClass)
	classes.Put("/:classId", h.UpdateClass)
	classes.Post("/:classId/cancel", h.CancelClass)
}
