package location

import (
	"errors"
	"time"
)

type CreateLocationDTO struct {
	Title        string          `json:"title"        binding:"required"`
	Description  string          `json:"description"  binding:"required"`
	Lat          *jsonCoordinate `json:"lat"          binding:"required"`
	Lng          *jsonCoordinate `json:"lng"          binding:"required"`
	Featured     bool            `json:"featured"`
	Address      *string         `json:"address"`
	Schedule     *string         `json:"schedule"`
	Notes        *string         `json:"notes"`
	RadioStation *string         `json:"radioStation"`
}

// locationResponse is the client shape. radio_station is kept next to
// radioStation for clients that still read the storage-style key.
type locationResponse struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Lat                float64   `json:"lat"`
	Lng                float64   `json:"lng"`
	Featured           bool      `json:"featured"`
	Address            *string   `json:"address"`
	Schedule           *string   `json:"schedule"`
	Notes              *string   `json:"notes"`
	RadioStation       *string   `json:"radioStation"`
	RadioStationLegacy *string   `json:"radio_station"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// updatableFields maps accepted body keys to storage columns.
var updatableFields = map[string]string{
	"title":        "title",
	"description":  "description",
	"lat":          "lat",
	"lng":          "lng",
	"featured":     "featured",
	"address":      "address",
	"schedule":     "schedule",
	"notes":        "notes",
	"radioStation": "radio_station",
}

const (
	msgMissingFields  = "Missing required fields: title, description, lat, lng"
	msgNoValidFields  = "No valid fields to update"
	msgInvalidBody    = "Invalid JSON body"
	msgNotFound       = "Location not found"
	msgFetchFailed    = "Failed to fetch locations"
	msgCreateFailed   = "Failed to create location"
	msgUpdateFailed   = "Failed to update location"
	msgDeleteFailed   = "Failed to delete location"
	msgFetchOneFailed = "Failed to fetch location"
)

var (
	errNotFound      = errors.New("location not found")
	errNoValidFields = errors.New("no valid fields to update")
)

// fieldError reports an allow-listed field carrying a value of the wrong type.
type fieldError struct {
	Field string
	Want  string
}

func (e *fieldError) Error() string {
	return e.Field + " must be " + e.Want
}
