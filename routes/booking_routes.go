package routes

import (
	"github.com/emrekoc/pilates_studio/handlers"
	"github.com/emrekoc/pilates_studio/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App, h *handlers.BookingHandler) {
	api := app.Group("/api/v1")

	bookings := api.Group("/bookings", middleware.Protected())
	bookings.Post("", h.CreateBooking)
	bookings.Get("/:bookingId", h.GetBooking)
	bookings.Post("/:bookingId/cancel", h.CancelBooking)
	bookings.Post("/:bookingId/promote", h.PromoteBooking)
	bookings.Post("/:bookingId/check-in", h.CheckIn)
	bookings.Post("/:bookingId/no-show", h.MarkNoShow)

	classes := api.Group("/classes", middleware.Protected())
	classes.Get("/:classId/bookings", h.GetBookingsByClass)
	classes.Get("/:classId/waitlist", h.GetWaitlist)

	members := api.Group("/members", middleware.Protected())
	members.Get("/:memberId/bookings", h.GetBookingsByMember)
}
