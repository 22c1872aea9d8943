package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/votehub/votehub-api/internal/models"
	"github.com/votehub/votehub-api/internal/repository"
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) Create(ctx context.Context, vote *models.Vote) error {
	return translate(r.db.WithContext(ctx).Create(vote).Error)
}

func (r *VoteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Vote, error) {
	var votes []models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&votes).Error
	if err != nil {
		return nil, translate(err)
	}
	return votes, nil
}

func (r *VoteRepository) ResultsByCompetition(ctx context.Context, competitionID uuid.UUID) ([]repository.OptionResult, error) {
	var results []repository.OptionResult
	err := r.db.WithContext(ctx).
		Table("options").
		Select("options.id AS option_id, options.title AS title, COUNT(votes.option_id) AS votes").
		Joins("LEFT JOIN votes ON votes.option_id = options.id").
		Where("options.competition_id = ?", competitionID).
		Group("options.id, options.title").
		Order("votes DESC").
		Scan(&results).Error
	if err != nil {
		return nil, translate(err)
	}
	return results, nil
}
