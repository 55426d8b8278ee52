package models

import (
	"time"

	"github.com/lightsmap/core/internal/pkg/idgen"
	"gorm.io/gorm"
)

// LocationModel is a holiday light display shown on the map.
type LocationModel struct {
	ID           string     `gorm:"primaryKey;size:64"`
	Title        string     `gorm:"not null"`
	Description  string     `gorm:"type:text;not null"`
	Lat          Coordinate `gorm:"not null"`
	Lng          Coordinate `gorm:"not null"`
	Featured     Flag       `gorm:"not null;index"`
	Address      *string
	Schedule     *string `gorm:"type:text"` // newline-delimited entries
	Notes        *string `gorm:"type:text"`
	RadioStation *string `gorm:"column:radio_station"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (LocationModel) TableName() string { return "locations" }

func (l *LocationModel) BeforeCreate(tx *gorm.DB) error {
	assignID(&l.ID, idgen.PrefixLocation, nowOr(l.CreatedAt))
	return nil
}
