package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by every repository when the requested record does
// not exist, so callers never depend on the storage engine's own sentinel.
var ErrNotFound = errors.New("record not found")

// MaxPageSize is the server-enforced ceiling for limit/offset pagination.
const MaxPageSize = 50

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ClampPage normalizes limit/offset against defaults and the page-size cap.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
