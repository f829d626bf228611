package domain

import (
	"github.com/allisson/weathervane/internal/errors"
)

var (
	// ErrLocationNotFound indicates the upstream provider does not know the
	// requested location.
	ErrLocationNotFound = errors.Wrap(errors.ErrNotFound, "location not found")

	// ErrReadingNotFound indicates no reading is stored for the location yet.
	ErrReadingNotFound = errors.Wrap(errors.ErrNotFound, "weather reading not found")
)
