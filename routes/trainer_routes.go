package routes

import (
	"github.com/emrekoc/pilates_studio/handlers"
	"github.com/emrekoc/pilates_studio/middleware"
	"github.com/gofiber/fiber/v2"
)

func TrainerRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	trainers := api.Group("/trainers", middleware.Protected())
	trainers.Post("", handlers.CreateTrainer)
	trainers.Get("", handlers.ListTrainers)
	trainers.Get("/:trainerId", handlers.GetTrainer)
	trainers.Put("/:trainerId", handlers.UpdateTrainer)
}
