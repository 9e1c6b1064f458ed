package main

import (
	"log"
	"time"

	"github.com/emrekoc/pilates_studio/database"
	"github.com/emrekoc/pilates_studio/directory"
	"github.com/emrekoc/pilates_studio/handlers"
	"github.com/emrekoc/pilates_studio/jobs"
	"github.com/emrekoc/pilates_studio/notifications"
	"github.com/emrekoc/pilates_studio/routes"
	"github.com/emrekoc/pilates_studio/scheduling"
	"github.com/emrekoc/pilates_studio/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	catalog := scheduling.NewClassCatalog()
	ledger := scheduling.NewBookingLedger()
	desk := scheduling.NewBookingDesk(
		catalog,
		ledger,
		directory.NewMemberDirectory(database.DB),
		directory.NewTrainerDirectory(database.DB),
	)

	classHandler := handlers.NewClassHandler(catalog, desk)
	bookingHandler := handlers.NewBookingHandler(desk, ledger, catalog)
	reportHandler := handlers.NewReportHandler(catalog, ledger)

	c := cron.New()
	c.AddFunc("*/5 * * * *", jobs.CloseOutEndedClasses(desk, catalog, ledger))
	c.AddFunc("*/5 * * * *", jobs.SendClassReminders(catalog, ledger))
	go c.Start()
	log.Println("✅ Cron jobs for attendance and reminders scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:       false,
		AppName:       "Pilates Studio",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization, Content-Disposition",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Europe/Istanbul",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Pilates Studio API",
		})
	})

	routes.AuthRoutes(app)
	routes.MemberRoutes(app)
	routes.TrainerRoutes(app)
	routes.ClassRoutes(app, classHandler)
	routes.BookingRoutes(app, bookingHandler)
	routes.PaymentRoutes(app)
	routes.ReportRoutes(app, reportHandler)
	routes.UploadRoutes(app)
	routes.FeedRoutes(app)

	go websocket.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err := app.Listen(":8080")
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
