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

type VoteService struct {
	votes        repository.VoteRepository
	options      repository.OptionRepository
	competitions repository.CompetitionRepository
	now          func() time.Time
}

func NewVoteService(votes repository.VoteRepository, options repository.OptionRepository, competitions repository.CompetitionRepository) *VoteService {
	return &VoteService{
		votes:        votes,
		options:      options,
		competitions: competitions,
		now:          time.Now,
	}
}

// Cast records a vote. One vote per user per competition is enforced by the
// storage key; a duplicate insert is translated, never surfaced raw.
func (s *VoteService) Cast(ctx context.Context, voter *models.User, competitionID, optionID uuid.UUID) error {
	competition, err := s.competitions.GetByID(ctx, competitionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCompetitionNotFound
		}
		return fmt.Errorf("failed to load competition: %w", err)
	}
	if competition.HasEnded(s.now()) {
		return ErrCompetitionEnded
	}

	option, err := s.options.GetByID(ctx, optionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOptionNotFound
		}
		return fmt.Errorf("failed to load option: %w", err)
	}
	if option.CompetitionID != competitionID {
		return ErrOptionNotFound
	}

	vote := &models.Vote{
		UserID:        voter.ID,
		CompetitionID: competitionID,
		OptionID:      optionID,
	}
	if err := s.votes.Create(ctx, vote); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyVoted
		}
		return fmt.Errorf("failed to record vote: %w", err)
	}
	return nil
}

func (s *VoteService) ListMine(ctx context.Context, voter *models.User) ([]models.Vote, error) {
	return s.votes.ListByUser(ctx, voter.ID)
}

// Results returns per-option tallies. Before the competition ends only the
// creator and admins may look.
func (s *VoteService) Results(ctx context.Context, viewer *models.User, competitionID uuid.UUID) ([]repository.OptionResult, error) {
	competition, err := s.competitions.GetByID(ctx, competitionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to load competition: %w", err)
	}

	privileged := viewer.IsAdmin() || competition.CreatorID == viewer.ID
	if !privileged && !competition.HasEnded(s.now()) {
		return nil, ErrResultsNotVisible
	}

	return s.votes.ResultsByCompetition(ctx, competitionID)
}
