package location

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/lightsmap/core/internal/models"
)

func toResponse(l *models.LocationModel) locationResponse {
	return locationResponse{
		ID:                 l.ID,
		Title:              l.Title,
		Description:        l.Description,
		Lat:                float64(l.Lat),
		Lng:                float64(l.Lng),
		Featured:           bool(l.Featured),
		Address:            l.Address,
		Schedule:           l.Schedule,
		Notes:              l.Notes,
		RadioStation:       l.RadioStation,
		RadioStationLegacy: l.RadioStation,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

func toResponses(items []models.LocationModel) []locationResponse {
	out := make([]locationResponse, len(items))
	for i := range items {
		out[i] = toResponse(&items[i])
	}
	return out
}

// buildUpdates keeps only allow-listed keys, coerces their values and
// renames them to storage columns. Unknown keys are ignored.
func buildUpdates(body map[string]interface{}) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	for key, raw := range body {
		column, ok := updatableFields[key]
		if !ok {
			continue
		}
		var (
			value interface{}
			err   error
		)
		switch key {
		case "title", "description":
			value, err = requiredString(key, raw)
		case "lat", "lng":
			value, err = coordinate(key, raw)
		case "featured":
			value, err = flag(key, raw)
		default:
			value, err = optionalString(key, raw)
		}
		if err != nil {
			return nil, err
		}
		updates[column] = value
	}
	if len(updates) == 0 {
		return nil, errNoValidFields
	}
	return updates, nil
}

func requiredString(field string, raw interface{}) (string, error) {
	s, ok := raw.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", &fieldError{Field: field, Want: "a non-empty string"}
	}
	return s, nil
}

func optionalString(field string, raw interface{}) (*string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}
		return &v, nil
	}
	return nil, &fieldError{Field: field, Want: "a string or null"}
}

// jsonCoordinate decodes a JSON number or numeric string, matching the
// coercion applied to lat/lng on update.
type jsonCoordinate float64

func (j *jsonCoordinate) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c, err := coordinate("lat/lng", raw)
	if err != nil {
		return err
	}
	*j = jsonCoordinate(c)
	return nil
}

func coordinate(field string, raw interface{}) (models.Coordinate, error) {
	switch v := raw.(type) {
	case float64:
		return models.Coordinate(v), nil
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return models.Coordinate(f), nil
		}
	}
	return 0, &fieldError{Field: field, Want: "a number"}
}

func flag(field string, raw interface{}) (models.Flag, error) {
	switch v := raw.(type) {
	case bool:
		return models.Flag(v), nil
	case float64:
		return models.Flag(v != 0), nil
	}
	return false, &fieldError{Field: field, Want: "a boolean"}
}
