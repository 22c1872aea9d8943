package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/votehub/votehub-api/internal/config"
	"github.com/votehub/votehub-api/internal/handlers"
	"github.com/votehub/votehub-api/internal/middleware"
	"github.com/votehub/votehub-api/internal/repository"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	users repository.UserRepository,
	authHandler *handlers.AuthHandler,
	oauthHandler *handlers.OAuthHandler,
	userHandler *handlers.UserHandler,
	competitionHandler *handlers.CompetitionHandler,
	optionHandler *handlers.OptionHandler,
	voteHandler *handlers.VoteHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	api.Get("/health", healthHandler.Health)

	// Auth, public
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/verify-email", middleware.JWTProtected(cfg), authHandler.VerifyEmail)
	auth.Post("/resend-verification", middleware.JWTProtected(cfg), authHandler.ResendVerification)
	auth.Post("/password-reset", authHandler.RequestPasswordReset)
	auth.Post("/password-reset/confirm", authHandler.ResetPassword)
	auth.Post("/verify-token", authHandler.VerifyToken)

	// OAuth sign-in, also public
	auth.Get("/google", oauthHandler.GoogleRedirect)
	auth.Get("/google/callback", oauthHandler.GoogleCallback)
	auth.Post("/apple", oauthHandler.AppleSignIn)

	// Everything below requires a valid access token and a live user row.
	protected := api.Group("", middleware.JWTProtected(cfg), middleware.LoadUser(users))

	me := protected.Group("/users/me")
	me.Get("", userHandler.Me)
	me.Put("", userHandler.UpdateMe)
	me.Post("/avatar", userHandler.UploadAvatar)
	me.Delete("", userHandler.DeleteMe)
	me.Get("/votes", voteHandler.ListMine)

	competitions := protected.Group("/competitions")
	competitions.Post("", competitionHandler.Create)
	competitions.Get("", competitionHandler.List)
	competitions.Get("/:id", competitionHandler.Get)
	competitions.Put("/:id", competitionHandler.Update)
	competitions.Delete("/:id", competitionHandler.Delete)
	competitions.Post("/:id/options", optionHandler.Create)
	competitions.Get("/:id/results", voteHandler.Results)

	protected.Put("/options/:optionId", optionHandler.Update)
	protected.Delete("/options/:optionId", optionHandler.Delete)

	protected.Post("/votes", voteHandler.Cast)

	admin := protected.Group("/admin", middleware.AdminRequired())
	admin.Get("/logs", adminHandler.ListLogs)
}
