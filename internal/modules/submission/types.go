package submission

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/lightsmap/core/internal/models"
)

// CreateSubmissionDTO keeps captchaAnswer raw: clients send it either as
// a number or as the string typed into the form.
type CreateSubmissionDTO struct {
	Address        string          `json:"address"`
	AdditionalInfo *string         `json:"additionalInfo"`
	CaptchaAnswer  json.RawMessage `json:"captchaAnswer"`
	CaptchaToken   string          `json:"captchaToken"`
}

type submissionResponse struct {
	ID             string                  `json:"id"`
	Address        string                  `json:"address"`
	AdditionalInfo *string                 `json:"additionalInfo"`
	Status         models.SubmissionStatus `json:"status"`
	CreatedAt      time.Time               `json:"createdAt"`
}

type adminSubmissionResponse struct {
	submissionResponse
	IPAddress       *string    `json:"ipAddress"`
	UserAgent       *string    `json:"userAgent"`
	ReviewedAt      *time.Time `json:"reviewedAt"`
	ReviewedBy      *string    `json:"reviewedBy"`
	RejectionReason *string    `json:"rejectionReason"`
}

const (
	msgMissingFields    = "Missing required fields: address, captchaAnswer, captchaToken"
	msgInvalidCaptcha   = "Invalid or expired captcha token"
	msgIncorrectCaptcha = "Incorrect captcha answer"
	msgAlreadySubmitted = "You have already submitted a location recently"
	msgIDRequired       = "Submission ID is required"
	msgNotFound         = "Submission not found"
	msgFetchFailed      = "Failed to fetch submissions"
	msgCreateFailed     = "Failed to create submission"
	msgDeleteFailed     = "Failed to delete submission"
)

var (
	errMissingFields = errors.New("missing required fields")
	errNotFound      = errors.New("submission not found")
)
