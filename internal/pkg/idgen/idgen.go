// Package idgen builds opaque entity identifiers of the form
// <prefix>_<unix millis>_<8 hex chars>.
package idgen

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	PrefixLocation   = "loc"
	PrefixReview     = "r"
	PrefixSubmission = "sub"
)

// New returns a fresh id stamped with the current time.
func New(prefix string) string {
	return NewAt(prefix, time.Now())
}

// NewAt returns an id stamped with t. The random suffix keeps ids created
// in the same millisecond distinct.
func NewAt(prefix string, t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return prefix + "_" + strconv.FormatInt(t.UnixMilli(), 10) + "_" + suffix
}
