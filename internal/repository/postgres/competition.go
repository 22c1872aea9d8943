package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/votehub/votehub-api/internal/models"
)

type CompetitionRepository struct {
	db *gorm.DB
}

func NewCompetitionRepository(db *gorm.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) Create(ctx context.Context, competition *models.Competition) error {
	return translate(r.db.WithContext(ctx).Create(competition).Error)
}

func (r *CompetitionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Competition, error) {
	var competition models.Competition
	if err := r.db.WithContext(ctx).First(&competition, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &competition, nil
}

func (r *CompetitionRepository) List(ctx context.Context) ([]models.Competition, error) {
	var competitions []models.Competition
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&competitions).Error
	if err != nil {
		return nil, translate(err)
	}
	return competitions, nil
}

func (r *CompetitionRepository) Update(ctx context.Context, competition *models.Competition) error {
	return translate(r.db.WithContext(ctx).Save(competition).Error)
}

func (r *CompetitionRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Competition{}, "id = ?", id).Error)
}
