package routes

import (
	"github.com/emrekoc/pilates_studio/handlers"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func FeedRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Use("/feed", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/feed/schedule", websocket.New(handlers.ServeScheduleFeed))
}
