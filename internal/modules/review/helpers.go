package review

import (
	"math"
	"strings"

	"github.com/lightsmap/core/internal/models"
)

// validatedInput is a create request that passed field validation.
type validatedInput struct {
	LocationID string
	Rating     int
	Text       string
	Author     string
}

func validate(dto *CreateReviewDTO) (validatedInput, error) {
	locationID := strings.TrimSpace(dto.LocationID)
	if locationID == "" {
		locationID = strings.TrimSpace(dto.LegacyLocationID)
	}
	if locationID == "" || dto.Rating == nil || strings.TrimSpace(dto.Text) == "" {
		return validatedInput{}, errMissingFields
	}
	r := *dto.Rating
	if r != math.Trunc(r) || r < minRating || r > maxRating {
		return validatedInput{}, errInvalidRating
	}
	author := strings.TrimSpace(dto.Author)
	if author == "" {
		author = models.DefaultReviewAuthor
	}
	return validatedInput{
		LocationID: locationID,
		Rating:     int(r),
		Text:       dto.Text,
		Author:     author,
	}, nil
}

func toResponse(r *models.ReviewModel) reviewResponse {
	return reviewResponse{
		ID:         r.ID,
		LocationID: r.LocationID,
		Rating:     r.Rating,
		Text:       r.Text,
		Author:     r.Author,
		Date:       r.Date,
		CreatedAt:  r.CreatedAt,
	}
}

func toAdminResponse(r *models.ReviewWithLocation) adminReviewResponse {
	return adminReviewResponse{
		reviewResponse: toResponse(&r.ReviewModel),
		IPAddress:      r.IPAddress,
		LocationTitle:  r.LocationTitle,
	}
}
