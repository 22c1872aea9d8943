package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/votehub/votehub-api/internal/models"
)

type OAuthAccountRepository struct {
	db *gorm.DB
}

func NewOAuthAccountRepository(db *gorm.DB) *OAuthAccountRepository {
	return &OAuthAccountRepository{db: db}
}

func (r *OAuthAccountRepository) Create(ctx context.Context, account *models.OAuthAccount) error {
	return translate(r.db.WithContext(ctx).Create(account).Error)
}

func (r *OAuthAccountRepository) GetByProviderID(ctx context.Context, providerID string) (*models.OAuthAccount, error) {
	var account models.OAuthAccount
	if err := r.db.WithContext(ctx).First(&account, "provider_id = ?", providerID).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

func (r *OAuthAccountRepository) UpdateTokens(ctx context.Context, userID uuid.UUID, provider, accessToken, refreshToken string, expiresAt *time.Time) error {
	return translate(r.db.WithContext(ctx).
		Model(&models.OAuthAccount{}).
		Where("user_id = ? AND provider = ?", userID, provider).
		Updates(map[string]interface{}{
			"access_token":     accessToken,
			"refresh_token":    refreshToken,
			"token_expires_at": expiresAt,
		}).Error)
}
