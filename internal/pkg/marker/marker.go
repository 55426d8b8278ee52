// Package marker manages the advisory cookies that discourage repeat
// reviews and submissions from the same browser. They are client-held and
// trivially removable; nothing server-side depends on them for security.
package marker

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	ReviewTTL     = 365 * 24 * time.Hour
	SubmissionTTL = 24 * time.Hour

	submissionCookie = "submitted_location"
	reviewPrefix     = "reviewed_"
)

// ReviewCookieName is the per-location review marker name. The id is
// query-escaped so that any id yields a valid cookie token.
func ReviewCookieName(locationID string) string {
	return reviewPrefix + url.QueryEscape(strings.TrimSpace(locationID))
}

// HasReviewed reports whether the request carries the review marker for locationID.
func HasReviewed(c *gin.Context, locationID string) bool {
	return present(c, ReviewCookieName(locationID))
}

// MarkReviewed sets the review marker for locationID.
func MarkReviewed(c *gin.Context, locationID string) {
	set(c, ReviewCookieName(locationID), ReviewTTL)
}

// HasSubmitted reports whether the submission cooldown marker is present.
func HasSubmitted(c *gin.Context) bool {
	return present(c, submissionCookie)
}

// MarkSubmitted starts the submission cooldown.
func MarkSubmitted(c *gin.Context) {
	set(c, submissionCookie, SubmissionTTL)
}

func present(c *gin.Context, name string) bool {
	v, err := c.Cookie(name)
	return err == nil && v != ""
}

func set(c *gin.Context, name string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "true", int(ttl/time.Second), "/", "", false, false)
}
