package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"

	"github.com/votehub/votehub-api/internal/avatar"
	"github.com/votehub/votehub-api/internal/config"
	"github.com/votehub/votehub-api/internal/database"
	"github.com/votehub/votehub-api/internal/handlers"
	"github.com/votehub/votehub-api/internal/logging"
	"github.com/votehub/votehub-api/internal/mail"
	"github.com/votehub/votehub-api/internal/middleware"
	"github.com/votehub/votehub-api/internal/oauth"
	"github.com/votehub/votehub-api/internal/repository/postgres"
	"github.com/votehub/votehub-api/internal/routes"
	"github.com/votehub/votehub-api/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment")
	}

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cleanupDone)

	// Repositories
	users := postgres.NewUserRepository(db)
	refreshTokens := postgres.NewRefreshTokenRepository(db)
	otps := postgres.NewOtpRepository(db)
	oauthAccounts := postgres.NewOAuthAccountRepository(db)
	competitions := postgres.NewCompetitionRepository(db)
	options := postgres.NewOptionRepository(db)
	votes := postgres.NewVoteRepository(db)

	// Outbound mail
	var mailer mail.Sender
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			AppName:  cfg.AppName,
		})
	} else {
		slog.Warn("SMTP not configured, emails will be logged only")
		mailer = mail.NewLogSender()
	}

	// Avatar storage
	avatars, err := avatar.NewS3Storage(context.Background(), avatar.Config{
		Region:    cfg.AWSRegion,
		Bucket:    cfg.AWSBucket,
		AccessKey: cfg.AWSAccessKey,
		SecretKey: cfg.AWSSecretKey,
		KeyPrefix: cfg.Environment,
	})
	if err != nil {
		slog.Error("avatar storage init failed", "error", err)
		os.Exit(1)
	}

	// OAuth providers
	google := oauth.NewGoogleProvider(oauth.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		CallbackURL:  cfg.GoogleCallbackURL,
	})
	apple := oauth.NewAppleProvider(oauth.Config{
		ClientID: cfg.AppleClientID,
	})

	// Services
	otpService := services.NewOtpService(otps)
	tokenService := services.NewTokenService(refreshTokens, cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	authService := services.NewAuthService(users, otpService, tokenService, mailer)
	oauthService := services.NewOAuthService(users, oauthAccounts)
	userService := services.NewUserService(users, avatars)
	competitionService := services.NewCompetitionService(competitions)
	optionService := services.NewOptionService(options, competitions)
	voteService := services.NewVoteService(votes, options, competitions)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	oauthHandler := handlers.NewOAuthHandler(oauthService, authService, google, apple)
	userHandler := handlers.NewUserHandler(userService)
	competitionHandler := handlers.NewCompetitionHandler(competitionService, optionService)
	optionHandler := handlers.NewOptionHandler(optionService)
	voteHandler := handlers.NewVoteHandler(voteService)
	adminHandler := handlers.NewAdminHandler(db)
	healthHandler := handlers.NewHealthHandler(db)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, users,
		authHandler, oauthHandler, userHandler,
		competitionHandler, optionHandler, voteHandler,
		adminHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
