package routes

import (
	"github.com/emrekoc/pilates_studio/handlers"
	"github.com/emrekoc/pilates_studio/middleware"
	"github.com/gofiber/fiber/v2"
)

func MemberRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	members := api.Group("/members", middleware.Protected())
	members.Post("", handlers.CreateMember)
	members.Get("", handlers.ListMembers)
	members.Get("/:memberId", handlers.GetMember)
	members.Put("/:memberId", handlers.UpdateMember)
	members.Patch("/:memberId/status", handlers.SetMemberStatus)
	members.Post("/:memberId/subscriptions", handlers.CreateSubscription)
	members.Get("/:memberId/subscriptions", handlers.ListSubscriptions)
}
