package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/votehub/votehub-api/internal/dto"
	"github.com/votehub/votehub-api/internal/middleware"
	"github.com/votehub/votehub-api/internal/services"
)

type VoteHandler struct {
	voteService *services.VoteService
}

func NewVoteHandler(voteService *services.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

func (h *VoteHandler) Cast(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c, "Unauthorized")
	}

	var req dto.CreateVoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	competitionID, err := uuid.Parse(req.CompetitionID)
	if err != nil {
		return badRequest(c, "Invalid competition id")
	}
	optionID, err := uuid.Parse(req.OptionID)
	if err != nil {
		return badRequest(c, "Invalid option id")
	}

	if err := h.voteService.Cast(c.UserContext(), user, competitionID, optionID); err != nil {
		return votingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Vote recorded"})
}

func (h *VoteHandler) ListMine(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c, "Unauthorized")
	}

	votes, err := h.voteService.ListMine(c.UserContext(), user)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(votes)
}

func (h *VoteHandler) Results(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthorized(c, "Unauthorized")
	}
	competitionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid competition id")
	}

	results, err := h.voteService.Results(c.UserContext(), user, competitionID)
	if err != nil {
		return votingError(c, err)
	}
	return c.JSON(results)
}
