package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/votehub/votehub-api/internal/models"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	return translate(r.db.WithContext(ctx).Create(token).Error)
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var stored models.RefreshToken
	if err := r.db.WithContext(ctx).First(&stored, "token = ?", token).Error; err != nil {
		return nil, translate(err)
	}
	return &stored, nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	// Zero rows affected is fine: revoking an unknown or already-revoked
	// token must not reveal whether it ever existed.
	return translate(r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("token = ?", token).
		Update("revoked", true).Error)
}
