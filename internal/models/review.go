package models

import (
	"time"

	"github.com/lightsmap/core/internal/pkg/idgen"
	"gorm.io/gorm"
)

// DefaultReviewAuthor is stored when a visitor leaves the name blank.
const DefaultReviewAuthor = "A Festive Visitor"

// ReviewModel is a visitor rating. Reviews are never updated.
type ReviewModel struct {
	ID         string    `gorm:"primaryKey;size:64"`
	LocationID string    `gorm:"column:location_id;size:64;not null;index"`
	Rating     int       `gorm:"not null"`
	Text       string    `gorm:"type:text;not null"`
	Author     string    `gorm:"not null"`
	Date       time.Time `gorm:"not null;index"`
	CreatedAt  time.Time
	IPAddress  *string `gorm:"column:ip_address;size:64"`
}

func (ReviewModel) TableName() string { return "reviews" }

func (r *ReviewModel) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID, idgen.PrefixReview, nowOr(r.CreatedAt))
	return nil
}

// ReviewWithLocation is a review joined with its location title.
type ReviewWithLocation struct {
	ReviewModel
	LocationTitle *string `gorm:"column:location_title"`
}
