package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/votehub/votehub-api/internal/dto"
	"github.com/votehub/votehub-api/internal/middleware"
	"github.com/votehub/votehub-api/internal/services"
)

type OptionHandler struct {
	optionService *services.OptionService
}

func NewOptionHandler(optionService *services.OptionService) *OptionHandler {
	return &OptionHandler{optionService: optionService}
}

func (h *OptionHandler) Create(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c, "Unauthorized")
	}
	competitionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid competition id")
	}

	var req dto.CreateOptionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Title == "" {
		return badRequest(c, "Title is required")
	}

	option, err := h.optionService.Create(c.UserContext(), user, competitionID, services.CreateOptionInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return votingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(option)
}

func (h *OptionHandler) Update(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("optionId"))
	if err != nil {
		return badRequest(c, "Invalid option id")
	}

	var req dto.UpdateOptionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	option, err := h.optionService.Update(c.UserContext(), user, id, services.UpdateOptionInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return votingError(c, err)
	}
	return c.JSON(option)
}

func (h *OptionHandler) Delete(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("optionId"))
	if err != nil {
		return badRequest(c, "Invalid option id")
	}

	if err := h.optionService.Delete(c.UserContext(), user, id); err != nil {
		return votingError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Option deleted"})
}
