package review

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lightsmap/core/internal/database/dbtest"
	"github.com/lightsmap/core/internal/models"
	"github.com/lightsmap/core/internal/pkg/marker"
	"github.com/lightsmap/core/internal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() { gin.SetMode(gin.TestMode) }

type fixture struct {
	db      *gorm.DB
	router  *gin.Engine
	metrics *metrics.Metrics
	writes  int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{db: dbtest.Open(t), metrics: metrics.New()}
	h := NewHandler(NewService(f.db), nil, f.metrics, func(context.Context) { f.writes++ })
	f.router = gin.New()
	h.RegisterRoutes(&f.router.RouterGroup, func(c *gin.Context) { c.Next() })
	return f
}

type requestOption func(*http.Request)

func withHeader(k, v string) requestOption {
	return func(r *http.Request) { r.Header.Set(k, v) }
}

func withCookie(name string) requestOption {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: name, Value: "true"}) }
}

func (f *fixture) do(t *testing.T, method, path, body string, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) seed(t *testing.T, r models.ReviewModel) models.ReviewModel {
	t.Helper()
	if r.Author == "" {
		r.Author = models.DefaultReviewAuthor
	}
	if r.Rating == 0 {
		r.Rating = 4
	}
	require.NoError(t, f.db.Create(&r).Error)
	return r
}

func TestCreateRatingValidation(t *testing.T) {
	cases := []struct {
		rating string
		code   int
	}{
		{"1", http.StatusCreated},
		{"2", http.StatusCreated},
		{"3", http.StatusCreated},
		{"4", http.StatusCreated},
		{"5", http.StatusCreated},
		{"5.0", http.StatusCreated},
		{"0", http.StatusBadRequest},
		{"6", http.StatusBadRequest},
		{"-1", http.StatusBadRequest},
		{"3.5", http.StatusBadRequest},
		{`"4"`, http.StatusBadRequest},
		{"null", http.StatusBadRequest},
		{"", http.StatusBadRequest},
	}
	for _, tc := range cases {
		f := newFixture(t)
		body := `{"locationId":"loc_1","text":"Lovely"`
		if tc.rating != "" {
			body += `,"rating":` + tc.rating
		}
		body += "}"
		w := f.do(t, http.MethodPost, "/reviews", body)
		assert.Equal(t, tc.code, w.Code, "rating %q: %s", tc.rating, w.Body.String())
	}
}

func TestCreatePersistsAndReshapes(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodPost, "/reviews",
		`{"locationId":"loc_1","rating":5,"text":"Best block in town"}`,
		withHeader("X-Forwarded-For", "203.0.113.9, 10.0.0.1"),
	)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got reviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Regexp(t, `^r_\d+_[0-9a-f]{8}$`, got.ID)
	assert.Equal(t, "loc_1", got.LocationID)
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, models.DefaultReviewAuthor, got.Author)
	assert.True(t, got.Date.Equal(got.CreatedAt))
	assert.NotContains(t, w.Body.String(), "203.0.113.9")

	var stored models.ReviewModel
	require.NoError(t, f.db.First(&stored, "id = ?", got.ID).Error)
	require.NotNil(t, stored.IPAddress)
	assert.Equal(t, "203.0.113.9", *stored.IPAddress)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, marker.ReviewCookieName("loc_1"), cookies[0].Name)
	assert.Equal(t, "true", cookies[0].Value)
	assert.Equal(t, int(marker.ReviewTTL/time.Second), cookies[0].MaxAge)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ReviewsCreated))
	assert.Equal(t, 1, f.writes)
}

func TestCreateAcceptsLegacyLocationKey(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodPost, "/reviews", `{"location_id":"loc_9","rating":3,"text":"ok","author":"  Kim "}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var got reviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "loc_9", got.LocationID)
	assert.Equal(t, "Kim", got.Author)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	f := newFixture(t)
	for _, body := range []string{
		`{"rating":3,"text":"x"}`,
		`{"locationId":"loc_1","rating":3}`,
		`{"locationId":"loc_1","rating":3,"text":"   "}`,
		`not json`,
	} {
		w := f.do(t, http.MethodPost, "/reviews", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	var count int64
	require.NoError(t, f.db.Model(&models.ReviewModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateRejectsWhenMarkerPresent(t *testing.T) {
	f := newFixture(t)
	body := `{"locationId":"loc_1","rating":4,"text":"again"}`

	w := f.do(t, http.MethodPost, "/reviews", body, withCookie(marker.ReviewCookieName("loc_1")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), msgAlreadyReviewed)

	w = f.do(t, http.MethodPost, "/reviews", body, withCookie(marker.ReviewCookieName("loc_2")))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestMarkerAppliesToIDsNeedingEscape(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"loc 1", "loc;1", "loc/1"} {
		body := `{"locationId":"` + id + `","rating":4,"text":"lovely"}`
		w := f.do(t, http.MethodPost, "/reviews", body)
		require.Equal(t, http.StatusCreated, w.Code, id)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1, id)
		assert.Equal(t, marker.ReviewCookieName(id), cookies[0].Name)

		w = f.do(t, http.MethodPost, "/reviews", body, withCookie(cookies[0].Name))
		assert.Equal(t, http.StatusBadRequest, w.Code, id)
		assert.Contains(t, w.Body.String(), msgAlreadyReviewed)
	}
}

func TestListNewestFirst(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2025, 12, 1, 18, 0, 0, 0, time.UTC)
	f.seed(t, models.ReviewModel{LocationID: "loc_1", Text: "old", Date: base, CreatedAt: base})
	f.seed(t, models.ReviewModel{LocationID: "loc_1", Text: "new", Date: base.Add(time.Hour), CreatedAt: base.Add(time.Hour)})
	f.seed(t, models.ReviewModel{LocationID: "loc_2", Text: "other", Date: base.Add(2 * time.Hour), CreatedAt: base})

	w := f.do(t, http.MethodGet, "/reviews?location_id=loc_1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got []reviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].Text)
	assert.Equal(t, "old", got[1].Text)

	w = f.do(t, http.MethodGet, "/reviews", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "other", got[0].Text)
}

func TestAdminListJoinsLocationTitle(t *testing.T) {
	f := newFixture(t)
	loc := models.LocationModel{Title: "Candy Cane Lane", Description: "d", Lat: 1, Lng: 2}
	require.NoError(t, f.db.Create(&loc).Error)
	ip := "198.51.100.7"
	now := time.Now().UTC()
	f.seed(t, models.ReviewModel{LocationID: loc.ID, Text: "joined", Date: now, CreatedAt: now, IPAddress: &ip})
	f.seed(t, models.ReviewModel{LocationID: "loc_gone", Text: "orphan", Date: now.Add(-time.Minute), CreatedAt: now})

	w := f.do(t, http.MethodGet, "/admin/reviews", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "joined", got[0]["text"])
	assert.Equal(t, "Candy Cane Lane", got[0]["locationTitle"])
	assert.Equal(t, ip, got[0]["ipAddress"])
	assert.Equal(t, loc.ID, got[0]["locationId"])
	assert.Nil(t, got[1]["locationTitle"])
}

func TestDeleteThenFetch(t *testing.T) {
	f := newFixture(t)
	now := time.Now().UTC()
	r := f.seed(t, models.ReviewModel{LocationID: "loc_1", Text: "bye", Date: now, CreatedAt: now})

	w := f.do(t, http.MethodGet, "/admin/reviews/"+r.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodDelete, "/admin/reviews/r_missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodDelete, "/admin/reviews/"+r.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = f.do(t, http.MethodGet, "/admin/reviews/"+r.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1, f.writes)
}

func TestDeleteByQuery(t *testing.T) {
	f := newFixture(t)
	now := time.Now().UTC()
	r := f.seed(t, models.ReviewModel{LocationID: "loc_1", Text: "bye", Date: now, CreatedAt: now})

	w := f.do(t, http.MethodDelete, "/admin/reviews", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodDelete, "/admin/reviews?id="+r.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodDelete, "/admin/reviews?id="+r.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
