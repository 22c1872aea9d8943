package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/votehub/votehub-api/internal/dto"
	"github.com/votehub/votehub-api/internal/middleware"
	"github.com/votehub/votehub-api/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || len(req.Password) < 8 {
		return badRequest(c, "Email required and password must be at least 8 characters")
	}

	result, err := h.authService.Register(c.UserContext(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return unauthorized(c, err.Error())
		}
		return internalError(c)
	}

	return c.JSON(result)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	accessToken, err := h.authService.RefreshAccessToken(c.UserContext(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRefreshToken) {
			return unauthorized(c, err.Error())
		}
		return internalError(c)
	}

	return c.JSON(dto.AccessTokenResponse{AccessToken: accessToken})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.authService.RevokeRefreshToken(c.UserContext(), req.RefreshToken); err != nil {
		return internalError(c)
	}

	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c, "Unauthorized")
	}

	var req dto.VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.authService.VerifyEmail(c.UserContext(), userID, req.Email, req.Code); err != nil {
		return otpError(c, err)
	}

	return c.JSON(dto.MessageResponse{Message: "Email verified successfully"})
}

func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c, "Unauthorized")
	}

	var req dto.ResendVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.authService.ResendVerification(c.UserContext(), userID, req.Email); err != nil {
		return internalError(c)
	}

	return c.JSON(dto.MessageResponse{Message: "Verification code sent"})
}

func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.authService.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c)
	}

	return c.JSON(dto.MessageResponse{Message: "Password reset instructions sent to your email"})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.NewPassword) < 8 {
		return badRequest(c, "Password must be at least 8 characters")
	}

	if err := h.authService.ResetPassword(c.UserContext(), req.Email, req.Code, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return otpError(c, err)
	}

	return c.JSON(dto.MessageResponse{Message: "Password reset successful"})
}

// VerifyToken is the liveness probe other services call; it always answers
// 200 with a tagged result.
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	var req dto.VerifyTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	return c.JSON(h.authService.VerifyToken(c.UserContext(), req.Token))
}

func otpError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrInvalidCode) || errors.Is(err, services.ErrExpiredCode) {
		return unauthorized(c, err.Error())
	}
	return internalError(c)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
