package review

import (
	"errors"
	"time"
)

// CreateReviewDTO accepts both locationId and the legacy location_id key.
// Rating is decoded as a float so that 3.5 can be told apart from 3.
type CreateReviewDTO struct {
	LocationID       string   `json:"locationId"`
	LegacyLocationID string   `json:"location_id"`
	Rating           *float64 `json:"rating"`
	Text             string   `json:"text"`
	Author           string   `json:"author"`
}

type reviewResponse struct {
	ID         string    `json:"id"`
	LocationID string    `json:"locationId"`
	Rating     int       `json:"rating"`
	Text       string    `json:"text"`
	Author     string    `json:"author"`
	Date       time.Time `json:"date"`
	CreatedAt  time.Time `json:"createdAt"`
}

type adminReviewResponse struct {
	reviewResponse
	IPAddress     *string `json:"ipAddress"`
	LocationTitle *string `json:"locationTitle"`
}

const (
	minRating = 1
	maxRating = 5
)

const (
	msgMissingFields   = "Missing required fields: locationId, rating, text"
	msgInvalidRating   = "Rating must be an integer between 1 and 5"
	msgAlreadyReviewed = "You have already reviewed this location"
	msgIDRequired      = "Review id is required"
	msgNotFound        = "Review not found"
	msgFetchFailed     = "Failed to fetch reviews"
	msgCreateFailed    = "Failed to create review"
	msgDeleteFailed    = "Failed to delete review"
)

var (
	errMissingFields = errors.New("missing required fields")
	errInvalidRating = errors.New("rating out of range")
	errNotFound      = errors.New("review not found")
)
