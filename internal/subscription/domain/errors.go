package domain

import (
	"github.com/allisson/weathervane/internal/errors"
)

// Subscription lifecycle errors.
var (
	// ErrSubscriptionNotFound indicates a subscription with the specified ID was not found.
	ErrSubscriptionNotFound = errors.Wrap(errors.ErrNotFound, "subscription not found")

	// ErrSubscriptionExists indicates the user already subscribes to the location.
	ErrSubscriptionExists = errors.Wrap(errors.ErrConflict, "subscription already exists")

	// ErrSubscriptionForbidden indicates the subscription belongs to another user.
	ErrSubscriptionForbidden = errors.Wrap(errors.ErrForbidden, "subscription belongs to another user")
)
