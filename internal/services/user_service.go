package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/votehub/votehub-api/internal/models"
	"github.com/votehub/votehub-api/internal/repository"
)

// AvatarStorage stores profile images and returns a public location.
type AvatarStorage interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, location string) error
}

// UpdateProfileInput carries optional profile changes. A password change
// requires the old password alongside the new one.
type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Password    *string
	OldPassword *string
}

type UserService struct {
	users   repository.UserRepository
	avatars AvatarStorage
}

func NewUserService(users repository.UserRepository, avatars AvatarStorage) *UserService {
	return &UserService{users: users, avatars: avatars}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// UpdateSelf applies profile changes for the authenticated user. Email moves
// are checked against existing accounts; the storage unique index is the
// backstop for races.
func (s *UserService) UpdateSelf(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Password != nil {
		if input.OldPassword == nil || !CheckPassword(*input.OldPassword, user.Password) {
			return nil, ErrInvalidCredentials
		}
		hash, err := HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if input.Email != nil {
		email := strings.ToLower(*input.Email)
		if email != user.Email {
			existing, err := s.users.GetByEmail(ctx, email)
			if err == nil && existing.ID != userID {
				return nil, ErrDuplicateEmail
			}
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			user.Email = email
		}
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// UpdateAvatar stores the new image and records its location, removing the
// previous object best-effort.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	location, err := s.avatars.Upload(ctx, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	previous := user.Image
	user.Image = location
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to store avatar location: %w", err)
	}

	if previous != "" {
		if err := s.avatars.Delete(ctx, previous); err != nil {
			slog.Warn("failed to delete previous avatar", "user_id", userID, "error", err)
		}
	}
	return user, nil
}

// DeleteSelf soft-deletes the account after confirming the password.
func (s *UserService) DeleteSelf(ctx context.Context, userID uuid.UUID, password string) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !CheckPassword(password, user.Password) {
		return ErrInvalidCredentials
	}

	if err := s.users.SoftDelete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	slog.Info("user soft deleted", "user_id", userID)
	return nil
}
