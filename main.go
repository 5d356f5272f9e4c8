package main

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"teamup/config"
	"teamup/middleware"
	"teamup/repository"
	"teamup/routes"
	"teamup/utils"
	"teamup/worker"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger := logrus.WithField("component", "bootstrap")

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.AppConfig.SentryDSN,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Warnf("Failed to initialize sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize database connection
	db, err := config.ConnectDB()
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Build the notification channel chain in priority order: SMTP, then the
	// transactional API, then log-only.
	var channels []utils.Channel
	if config.AppConfig.SMTPHost != "" {
		channels = append(channels, &utils.SMTPChannel{
			Host:      config.AppConfig.SMTPHost,
			Port:      config.AppConfig.SMTPPort,
			Username:  config.AppConfig.SMTPUsername,
			Password:  config.AppConfig.SMTPPassword,
			FromName:  config.AppConfig.FromName,
			FromEmail: config.AppConfig.FromEmail,
		})
	}
	if config.AppConfig.MailAPIURL != "" {
		channels = append(channels, &utils.APIChannel{
			Client:    resty.New(),
			URL:       config.AppConfig.MailAPIURL,
			APIKey:    config.AppConfig.MailAPIKey,
			FromName:  config.AppConfig.FromName,
			FromEmail: config.AppConfig.FromEmail,
		})
	}
	channels = append(channels, &utils.LogChannel{Logger: logrus.WithField("component", "mail-log")})

	dispatcher := utils.NewDispatcher(
		channels,
		repository.NewNotificationRepository(db),
		logrus.WithField("component", "notify"),
		config.AppConfig.AppURL,
		config.AppConfig.NotifyQueueSize,
		time.Duration(config.AppConfig.NotifyTimeoutSeconds)*time.Second,
	)

	// Initialize and start the notify worker
	notifyWorker := worker.NewNotifyWorker(dispatcher, logrus.WithField("component", "notify-worker"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifyWorker.Start(ctx)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: utils.FiberErrorHandler,
	})

	// Add CORS middleware
	app.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(app, db, dispatcher)

	// Start server
	logger.Infof("Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
