// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	subscriptionDomain "github.com/allisson/weathervane/internal/subscription/domain"
)

// SubscriptionResponse represents a subscription in API responses.
type SubscriptionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// MapSubscriptionToResponse converts a domain subscription to an API response.
func MapSubscriptionToResponse(subscription *subscriptionDomain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        subscription.ID.String(),
		UserID:    subscription.UserID,
		Location:  subscription.Location,
		CreatedAt: subscription.CreatedAt,
	}
}

// ListSubscriptionsResponse represents a list of subscriptions in API responses.
type ListSubscriptionsResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
}

// MapSubscriptionsToListResponse converts a slice of domain subscriptions to a list API response.
func MapSubscriptionsToListResponse(
	subscriptions []*subscriptionDomain.Subscription,
) ListSubscriptionsResponse {
	subscriptionResponses := make([]SubscriptionResponse, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		subscriptionResponses = append(subscriptionResponses, MapSubscriptionToResponse(subscription))
	}
	return ListSubscriptionsResponse{
		Subscriptions: subscriptionResponses,
	}
}
