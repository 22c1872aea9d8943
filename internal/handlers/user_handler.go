package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/votehub/votehub-api/internal/dto"
	"github.com/votehub/votehub-api/internal/middleware"
	"github.com/votehub/votehub-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c, "Unauthorized")
	}
	return c.JSON(user)
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c, "Unauthorized")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	updated, err := h.userService.UpdateSelf(c.UserContext(), user.ID, services.UpdateProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		OldPassword: req.OldPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return unauthorized(c, "Invalid old password")
		case errors.Is(err, services.ErrDuplicateEmail):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrUserNotFound):
			return notFound(c, err.Error())
		default:
			return internalError(c)
		}
	}

	return c.JSON(updated)
}

func (h *UserHandler) UploadAvatar(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c, "Unauthorized")
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return badRequest(c, "Avatar file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "Failed to read avatar file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return badRequest(c, "Failed to read avatar file")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	updated, err := h.userService.UpdateAvatar(c.UserContext(), user.ID, data, contentType)
	if err != nil {
		return internalError(c)
	}

	return c.JSON(updated)
}

func (h *UserHandler) DeleteMe(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c, "Unauthorized")
	}

	var req dto.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.userService.DeleteSelf(c.UserContext(), user.ID, req.Password); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return unauthorized(c, "Incorrect password. Please try again.")
		}
		return internalError(c)
	}

	return c.JSON(dto.MessageResponse{Message: "Account deleted successfully"})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}
