package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/votehub/votehub-api/internal/dto"
	"github.com/votehub/votehub-api/internal/middleware"
	"github.com/votehub/votehub-api/internal/services"
)

type CompetitionHandler struct {
	competitionService *services.CompetitionService
	optionService      *services.OptionService
}

func NewCompetitionHandler(competitionService *services.CompetitionService, optionService *services.OptionService) *CompetitionHandler {
	return &CompetitionHandler{
		competitionService: competitionService,
		optionService:      optionService,
	}
}

func (h *CompetitionHandler) Create(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c, "Unauthorized")
	}

	var req dto.CreateCompetitionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Title == "" || req.EndDate.IsZero() {
		return badRequest(c, "Title and end date are required")
	}

	competition, err := h.competitionService.Create(c.UserContext(), user, services.CreateCompetitionInput{
		Title:       req.Title,
		Description: req.Description,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(competition)
}

func (h *CompetitionHandler) List(c *fiber.Ctx) error {
	competitions, err := h.competitionService.List(c.UserContext())
	if err != nil {
		return internalError(c)
	}
	return c.JSON(competitions)
}

func (h *CompetitionHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid competition id")
	}

	competition, err := h.competitionService.GetByID(c.UserContext(), id)
	if err != nil {
		return votingError(c, err)
	}

	options, err := h.optionService.ListByCompetition(c.UserContext(), id)
	if err != nil {
		return votingError(c, err)
	}

	return c.JSON(fiber.Map{
		"competition": competition,
		"options":     options,
	})
}

func (h *CompetitionHandler) Update(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid competition id")
	}

	var req dto.UpdateCompetitionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	competition, err := h.competitionService.Update(c.UserContext(), user, id, services.UpdateCompetitionInput{
		Title:       req.Title,
		Description: req.Description,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return votingError(c, err)
	}
	return c.JSON(competition)
}

func (h *CompetitionHandler) Delete(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid competition id")
	}

	if err := h.competitionService.Delete(c.UserContext(), user, id); err != nil {
		return votingError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Competition deleted"})
}

// votingError maps the voting service errors onto HTTP statuses.
func votingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrCompetitionNotFound),
		errors.Is(err, services.ErrOptionNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrResultsNotVisible):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrCompetitionEnded),
		errors.Is(err, services.ErrAlreadyVoted):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}
