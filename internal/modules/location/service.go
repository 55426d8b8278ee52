package location

import (
	"context"
	"errors"
	"time"

	"github.com/lightsmap/core/internal/models"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service { return &Service{db: db, now: time.Now} }

// List returns every location, featured first then by title.
func (s *Service) List(ctx context.Context) ([]models.LocationModel, error) {
	var items []models.LocationModel
	err := s.db.WithContext(ctx).
		Order("featured DESC").
		Order("title ASC").
		Find(&items).Error
	return items, err
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.LocationModel, error) {
	var l models.LocationModel
	if err := s.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateLocationDTO) (*models.LocationModel, error) {
	now := s.now().UTC()
	l := models.LocationModel{
		Title:        dto.Title,
		Description:  dto.Description,
		Lat:          models.Coordinate(*dto.Lat),
		Lng:          models.Coordinate(*dto.Lng),
		Featured:     models.Flag(dto.Featured),
		Address:      blankToNil(dto.Address),
		Schedule:     blankToNil(dto.Schedule),
		Notes:        blankToNil(dto.Notes),
		RadioStation: blankToNil(dto.RadioStation),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.WithContext(ctx).Create(&l).Error; err != nil {
		return nil, err
	}
	return s.GetByID(ctx, l.ID)
}

// Update applies already allow-listed column updates, always refreshing
// updated_at, and returns the row as stored afterwards.
func (s *Service) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.LocationModel, error) {
	if len(updates) == 0 {
		return nil, errNoValidFields
	}
	updates["updated_at"] = s.now().UTC()
	res := s.db.WithContext(ctx).
		Model(&models.LocationModel{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.LocationModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNotFound
	}
	return nil
}

func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
