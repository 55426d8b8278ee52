package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Coordinate is a latitude or longitude. Drivers may hand decimals back as
// text or bytes; Scan always coerces them to a float.
type Coordinate float64

func (c Coordinate) Value() (driver.Value, error) {
	return float64(c), nil
}

func (c *Coordinate) Scan(value interface{}) error {
	if c == nil {
		return fmt.Errorf("models.Coordinate: Scan on nil pointer")
	}
	switch v := value.(type) {
	case nil:
		*c = 0
	case float64:
		*c = Coordinate(v)
	case float32:
		*c = Coordinate(v)
	case int64:
		*c = Coordinate(v)
	case []byte:
		return c.parse(string(v))
	case string:
		return c.parse(v)
	default:
		return fmt.Errorf("models.Coordinate: unsupported Scan type %T", value)
	}
	return nil
}

func (c *Coordinate) parse(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*c = 0
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("models.Coordinate: %w", err)
	}
	*c = Coordinate(f)
	return nil
}

// Flag is a boolean column that tolerates legacy 0/1 integer storage.
type Flag bool

func (f Flag) Value() (driver.Value, error) {
	return bool(f), nil
}

func (f *Flag) Scan(value interface{}) error {
	if f == nil {
		return fmt.Errorf("models.Flag: Scan on nil pointer")
	}
	switch v := value.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(v)
	case int64:
		*f = v != 0
	case float64:
		*f = v != 0
	case []byte:
		*f = Flag(parseFlag(string(v)))
	case string:
		*f = Flag(parseFlag(v))
	default:
		return fmt.Errorf("models.Flag: unsupported Scan type %T", value)
	}
	return nil
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	}
	return false
}
