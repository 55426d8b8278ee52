package models

import (
	"time"

	"github.com/lightsmap/core/internal/pkg/idgen"
	"gorm.io/gorm"
)

// SubmissionStatus is the moderation state of a visitor-proposed location.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// SubmissionModel is a visitor-proposed location awaiting moderation.
// Only pending rows are ever written; the review fields have no write path yet.
type SubmissionModel struct {
	ID              string           `gorm:"primaryKey;size:64"`
	Address         string           `gorm:"type:text;not null"`
	AdditionalInfo  *string          `gorm:"column:additional_info;type:text"`
	Status          SubmissionStatus `gorm:"size:16;not null;index"`
	CreatedAt       time.Time        `gorm:"index"`
	IPAddress       *string          `gorm:"column:ip_address;size:64"`
	UserAgent       *string          `gorm:"column:user_agent;type:text"`
	ReviewedAt      *time.Time       `gorm:"column:reviewed_at"`
	ReviewedBy      *string          `gorm:"column:reviewed_by"`
	RejectionReason *string          `gorm:"column:rejection_reason;type:text"`
}

func (SubmissionModel) TableName() string { return "location_submissions" }

func (s *SubmissionModel) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID, idgen.PrefixSubmission, nowOr(s.CreatedAt))
	return nil
}
