package persistence

import (
	"errors"

	"gorm.io/gorm"

	"github.com/procure/backend/internal/domain/shared"
)

// translateWriteError maps constraint violations surfaced by the driver
// onto the domain error taxonomy. The gorm connection must be opened
// with TranslateError so driver errors arrive as gorm sentinels.
func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrDuplicateKey
	}
	return err
}
