package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/votehub/votehub-api/internal/models"
	"github.com/votehub/votehub-api/internal/repository"
)

type CreateOptionInput struct {
	Title       string
	Description string
}

type UpdateOptionInput struct {
	Title       *string
	Description *string
}

type OptionService struct {
	options      repository.OptionRepository
	competitions repository.CompetitionRepository
}

func NewOptionService(options repository.OptionRepository, competitions repository.CompetitionRepository) *OptionService {
	return &OptionService{options: options, competitions: competitions}
}

// Create adds an option to a competition; only the creator or an admin may
// change the ballot.
func (s *OptionService) Create(ctx context.Context, actor *models.User, competitionID uuid.UUID, input CreateOptionInput) (*models.Option, error) {
	competition, err := s.competitions.GetByID(ctx, competitionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to load competition: %w", err)
	}
	if competition.CreatorID != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	option := &models.Option{
		ID:            uuid.New(),
		Title:         input.Title,
		Description:   input.Description,
		CompetitionID: competitionID,
	}
	if err := s.options.Create(ctx, option); err != nil {
		return nil, fmt.Errorf("failed to create option: %w", err)
	}
	return option, nil
}

func (s *OptionService) ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.Option, error) {
	if _, err := s.competitions.GetByID(ctx, competitionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to load competition: %w", err)
	}
	return s.options.ListByCompetition(ctx, competitionID)
}

func (s *OptionService) Update(ctx context.Context, actor *models.User, id uuid.UUID, input UpdateOptionInput) (*models.Option, error) {
	option, err := s.options.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOptionNotFound
		}
		return nil, fmt.Errorf("failed to load option: %w", err)
	}

	if err := s.authorizeBallotChange(ctx, actor, option.CompetitionID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		option.Title = *input.Title
	}
	if input.Description != nil {
		option.Description = *input.Description
	}

	if err := s.options.Update(ctx, option); err != nil {
		return nil, fmt.Errorf("failed to update option: %w", err)
	}
	return option, nil
}

func (s *OptionService) Delete(ctx context.Context, actor *models.User, id uuid.UUID) error {
	option, err := s.options.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOptionNotFound
		}
		return fmt.Errorf("failed to load option: %w", err)
	}

	if err := s.authorizeBallotChange(ctx, actor, option.CompetitionID); err != nil {
		return err
	}

	if err := s.options.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete option: %w", err)
	}
	return nil
}

func (s *OptionService) authorizeBallotChange(ctx context.Context, actor *models.User, competitionID uuid.UUID) error {
	competition, err := s.competitions.GetByID(ctx, competitionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCompetitionNotFound
		}
		return fmt.Errorf("failed to load competition: %w", err)
	}
	if competition.CreatorID != actor.ID && !actor.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
