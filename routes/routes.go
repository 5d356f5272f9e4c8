package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	controller "teamup/controllers"
	"teamup/middleware"
	"teamup/repository"
	"teamup/utils"
)

// SetupRoutes wires repositories, controllers, and endpoints. The DB handle
// and the dispatcher come from the bootstrap; nothing below reaches for
// globals.
func SetupRoutes(app *fiber.App, db *gorm.DB, dispatcher *utils.Dispatcher) {
	needs := repository.NewNeedRepository(db)
	apps := repository.NewApplicationRepository(db)
	notifications := repository.NewNotificationRepository(db)
	profiles := repository.NewProfileRepository(db)

	needController := controller.NewNeedController(needs, apps, dispatcher, logrus.WithField("component", "needs"))
	appController := controller.NewApplicationController(needs, apps, dispatcher, logrus.WithField("component", "applications"))
	notifyController := controller.NewNotificationController(notifications, logrus.WithField("component", "notifications"))

	requestLog := logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	})

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Need routes: listing, direct view, and counters are public.
	need := app.Group("/needs", requestLog)
	need.Get("/", needController.ListNeeds)
	need.Post("/", middleware.Protected(), middleware.RequireRegistered(profiles), needController.CreateNeed)
	need.Get("/:id", middleware.OptionalAuth(), needController.GetNeed)
	need.Patch("/:id", middleware.Protected(), needController.UpdateNeed)
	need.Delete("/:id", middleware.Protected(), needController.DeleteNeed)
	need.Post("/:id/view", middleware.ViewRateLimiter(), needController.RecordView)
	need.Get("/:id/applications", middleware.Protected(), appController.ListNeedApplications)

	// Application routes
	application := app.Group("/applications", requestLog, middleware.Protected())
	application.Post("/", middleware.RequireRegistered(profiles), appController.CreateApplication)
	application.Get("/:id", appController.GetApplication)
	application.Patch("/:id", appController.UpdateApplication)

	// Per-user listings
	app.Get("/my-needs", middleware.Protected(), needController.MyNeeds)
	app.Get("/my-applications", middleware.Protected(), appController.MyApplications)

	// Notification routes. read-all must be registered ahead of :id.
	notification := app.Group("/notifications", requestLog, middleware.Protected())
	notification.Get("/", notifyController.ListNotifications)
	notification.Patch("/read-all", notifyController.MarkAllNotificationsRead)
	notification.Patch("/:id", notifyController.MarkNotificationRead)
	notification.Delete("/:id", notifyController.DeleteNotification)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "The requested resource was not found")
	})
}
