package review

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

// List returns reviews newest first, optionally for one location.
func (s *Service) List(ctx context.Context, locationID string) ([]models.ReviewModel, error) {
	tx := s.db.WithContext(ctx).Model(&models.ReviewModel{}).Order("date DESC")
	if locationID != "" {
		tx = tx.Where("location_id = ?", locationID)
	}
	var items []models.ReviewModel
	err := tx.Find(&items).Error
	return items, err
}

// Create stamps date and created_at with the same instant and inserts.
func (s *Service) Create(ctx context.Context, in validatedInput, ip *string) (*models.ReviewModel, error) {
	now := s.now().UTC()
	r := models.ReviewModel{
		LocationID: in.LocationID,
		Rating:     in.Rating,
		Text:       in.Text,
		Author:     in.Author,
		Date:       now,
		CreatedAt:  now,
		IPAddress:  ip,
	}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return nil, err
	}
	var stored models.ReviewModel
	if err := s.db.WithContext(ctx).First(&stored, "id = ?", r.ID).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *Service) joined(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("reviews AS r").
		Select("r.*, l.title AS location_title").
		Joins("LEFT JOIN locations l ON r.location_id = l.id")
}

// ListWithLocation returns every review with its location title, newest first.
func (s *Service) ListWithLocation(ctx context.Context) ([]models.ReviewWithLocation, error) {
	var rows []models.ReviewWithLocation
	err := s.joined(ctx).Order("r.date DESC").Scan(&rows).Error
	return rows, err
}

func (s *Service) GetWithLocation(ctx context.Context, id string) (*models.ReviewWithLocation, error) {
	var rows []models.ReviewWithLocation
	if err := s.joined(ctx).Where("r.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errNotFound
	}
	return &rows[0], nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.ReviewModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNotFound
	}
	return nil
}

// isNotFound folds gorm's sentinel into the module's own.
func isNotFound(err error) bool {
	return errors.Is(err, errNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
