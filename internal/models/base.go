package models

import (
	"time"

	"github.com/lightsmap/core/internal/pkg/idgen"
)

// assignID fills an empty primary key with a prefixed time+random id.
func assignID(id *string, prefix string, at time.Time) {
	if *id == "" {
		*id = idgen.NewAt(prefix, at)
	}
}

// nowOr returns t, or the current time when t is zero.
func nowOr(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
