package submission

import (
	"context"
	"time"

	"github.com/lightsmap/core/internal/models"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service { return &Service{db: db, now: time.Now} }

// Provenance is the best-effort origin of a submission.
type Provenance struct {
	IP        *string
	UserAgent *string
}

// Create stores a new submission. Status is always pending; nothing here
// moves a submission past that state.
func (s *Service) Create(ctx context.Context, dto *CreateSubmissionDTO, from Provenance) (*models.SubmissionModel, error) {
	sub := models.SubmissionModel{
		Address:        dto.Address,
		AdditionalInfo: dto.AdditionalInfo,
		Status:         models.SubmissionPending,
		CreatedAt:      s.now().UTC(),
		IPAddress:      from.IP,
		UserAgent:      from.UserAgent,
	}
	if err := s.db.WithContext(ctx).Create(&sub).Error; err != nil {
		return nil, err
	}
	var stored models.SubmissionModel
	if err := s.db.WithContext(ctx).First(&stored, "id = ?", sub.ID).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// List returns every submission with its moderation metadata, newest first.
func (s *Service) List(ctx context.Context) ([]models.SubmissionModel, error) {
	var items []models.SubmissionModel
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.SubmissionModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNotFound
	}
	return nil
}
