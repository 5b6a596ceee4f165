package response

import (
	"time"

	"roadready/internal/usecase/queries"
)

type ReviewResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	CarID         string    `json:"car_id"`
	ReservationID string    `json:"reservation_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromReviewView(v *queries.ReviewView) *ReviewResponse {
	return &ReviewResponse{
		ID:            v.ID.String(),
		UserID:        v.UserID.String(),
		CarID:         v.CarID.String(),
		ReservationID: v.ReservationID.String(),
		Rating:        v.Rating,
		Comment:       v.Comment,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func FromReviewViews(vs []*queries.ReviewView) []*ReviewResponse {
	res := make([]*ReviewResponse, len(vs))
	for i, v := range vs {
		res[i] = FromReviewView(v)
	}
	return res
}

// CarReviewGraph breaks the car to review cycle with an id-keyed table: each
// car lists its review ids and each review points back with car_ref.
type CarReviewGraph struct {
	Cars    map[string]*GraphCar `json:"cars"`
	Reviews []*GraphReview       `json:"reviews"`
}

type GraphCar struct {
	CarResponse
	ReviewIDs []string `json:"review_ids"`
}

type GraphReview struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	ReservationID string    `json:"reservation_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	CarRef        string    `json:"car_ref"`
}

// FromCarReviews keeps the review order of the input, which the read store
// fixes as (created_at, id).
func FromCarReviews(cr *queries.CarReviews) (*CarReviewGraph, error) {
	car, err := FromCarView(cr.Car)
	if err != nil {
		return nil, err
	}
	carRef := car.ID.String()

	node := &GraphCar{CarResponse: *car, ReviewIDs: make([]string, 0, len(cr.Reviews))}
	graph := &CarReviewGraph{
		Cars:    map[string]*GraphCar{carRef: node},
		Reviews: make([]*GraphReview, 0, len(cr.Reviews)),
	}
	for _, v := range cr.Reviews {
		id := v.ID.String()
		node.ReviewIDs = append(node.ReviewIDs, id)
		graph.Reviews = append(graph.Reviews, &GraphReview{
			ID:            id,
			UserID:        v.UserID.String(),
			ReservationID: v.ReservationID.String(),
			Rating:        v.Rating,
			Comment:       v.Comment,
			CreatedAt:     v.CreatedAt,
			UpdatedAt:     v.UpdatedAt,
			CarRef:        carRef,
		})
	}
	return graph, nil
}
