package submission

import (
	"bytes"
	"strings"

	"github.com/lightsmap/core/internal/models"
)

// checkRequired trims the free-text fields in place and reports whether
// anything required is absent.
func checkRequired(dto *CreateSubmissionDTO) error {
	dto.Address = strings.TrimSpace(dto.Address)
	dto.CaptchaToken = strings.TrimSpace(dto.CaptchaToken)
	if dto.AdditionalInfo != nil {
		info := strings.TrimSpace(*dto.AdditionalInfo)
		if info == "" {
			dto.AdditionalInfo = nil
		} else {
			dto.AdditionalInfo = &info
		}
	}
	answer := bytes.TrimSpace(dto.CaptchaAnswer)
	if dto.Address == "" || dto.CaptchaToken == "" || len(answer) == 0 || bytes.Equal(answer, []byte("null")) {
		return errMissingFields
	}
	return nil
}

func toResponse(s *models.SubmissionModel) submissionResponse {
	return submissionResponse{
		ID:             s.ID,
		Address:        s.Address,
		AdditionalInfo: s.AdditionalInfo,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt,
	}
}

func toAdminResponse(s *models.SubmissionModel) adminSubmissionResponse {
	return adminSubmissionResponse{
		submissionResponse: toResponse(s),
		IPAddress:          s.IPAddress,
		UserAgent:          s.UserAgent,
		ReviewedAt:         s.ReviewedAt,
		ReviewedBy:         s.ReviewedBy,
		RejectionReason:    s.RejectionReason,
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
