package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/votehub/votehub-api/internal/models"
	"github.com/votehub/votehub-api/internal/repository"
)

// CreateCompetitionInput carries the fields for a new competition.
type CreateCompetitionInput struct {
	Title       string
	Description string
	EndDate     time.Time
}

// UpdateCompetitionInput carries optional competition changes.
type UpdateCompetitionInput struct {
	Title       *string
	Description *string
	EndDate     *time.Time
}

type CompetitionService struct {
	competitions repository.CompetitionRepository
}

func NewCompetitionService(competitions repository.CompetitionRepository) *CompetitionService {
	return &CompetitionService{competitions: competitions}
}

func (s *CompetitionService) Create(ctx context.Context, creator *models.User, input CreateCompetitionInput) (*models.Competition, error) {
	competition := &models.Competition{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		EndDate:     input.EndDate,
		CreatorID:   creator.ID,
	}
	if err := s.competitions.Create(ctx, competition); err != nil {
		return nil, fmt.Errorf("failed to create competition: %w", err)
	}
	return competition, nil
}

func (s *CompetitionService) List(ctx context.Context) ([]models.Competition, error) {
	return s.competitions.List(ctx)
}

func (s *CompetitionService) GetByID(ctx context.Context, id uuid.UUID) (*models.Competition, error) {
	competition, err := s.competitions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to load competition: %w", err)
	}
	return competition, nil
}

// Update modifies a competition; only the creator or an admin may do so.
func (s *CompetitionService) Update(ctx context.Context, actor *models.User, id uuid.UUID, input UpdateCompetitionInput) (*models.Competition, error) {
	competition, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if competition.CreatorID != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	if input.Title != nil {
		competition.Title = *input.Title
	}
	if input.Description != nil {
		competition.Description = *input.Description
	}
	if input.EndDate != nil {
		competition.EndDate = *input.EndDate
	}

	if err := s.competitions.Update(ctx, competition); err != nil {
		return nil, fmt.Errorf("failed to update competition: %w", err)
	}
	return competition, nil
}

// Delete soft-deletes a competition; only the creator or an admin may do so.
func (s *CompetitionService) Delete(ctx context.Context, actor *models.User, id uuid.UUID) error {
	competition, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if competition.CreatorID != actor.ID && !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.competitions.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete competition: %w", err)
	}
	return nil
}
