package cache

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	// car_reviews:{car_id} -> JSON of the car and its reviews
	KeyCarReviews = "car_reviews:%s"

	// car_reviews_gen:{car_id} -> counter bumped on every invalidation
	KeyCarReviewsGeneration = "car_reviews_gen:%s"

	// {prefix}:{client_key} -> hash {tokens, ts}
	KeyRateLimit = "%s:%s"
)

func CarReviewsKey(carID uuid.UUID) string {
	return fmt.Sprintf(KeyCarReviews, carID)
}

func CarReviewsGenerationKey(carID uuid.UUID) string {
	return fmt.Sprintf(KeyCarReviewsGeneration, carID)
}

func RateLimitKey(prefix, clientKey string) string {
	return fmt.Sprintf(KeyRateLimit, prefix, clientKey)
}
