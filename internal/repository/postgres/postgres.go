// Package postgres implements the repository interfaces on top of GORM.
// The *gorm.DB handed to the constructors must be opened with
// TranslateError enabled so constraint violations surface as
// gorm.ErrDuplicatedKey.
package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/votehub/votehub-api/internal/repository"
)

// translate maps GORM errors onto the repository error vocabulary.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repository.ErrDuplicate
	default:
		return err
	}
}
