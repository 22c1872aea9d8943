package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/votehub/votehub-api/internal/models"
)

type OptionRepository struct {
	db *gorm.DB
}

func NewOptionRepository(db *gorm.DB) *OptionRepository {
	return &OptionRepository{db: db}
}

func (r *OptionRepository) Create(ctx context.Context, option *models.Option) error {
	return translate(r.db.WithContext(ctx).Create(option).Error)
}

func (r *OptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Option, error) {
	var option models.Option
	if err := r.db.WithContext(ctx).First(&option, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &option, nil
}

func (r *OptionRepository) ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.Option, error) {
	var options []models.Option
	err := r.db.WithContext(ctx).
		Where("competition_id = ?", competitionID).
		Order("created_at ASC").
		Find(&options).Error
	if err != nil {
		return nil, translate(err)
	}
	return options, nil
}

func (r *OptionRepository) Update(ctx context.Context, option *models.Option) error {
	return translate(r.db.WithContext(ctx).Save(option).Error)
}

func (r *OptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&models.Option{}, "id = ?", id).Error)
}
