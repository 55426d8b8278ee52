package review

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lightsmap/core/internal/pkg/clientip"
	"github.com/lightsmap/core/internal/pkg/marker"
	"github.com/lightsmap/core/internal/pkg/metrics"
	"github.com/lightsmap/core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc     *Service
	log     *zap.Logger
	metrics *metrics.Metrics
	onWrite func(context.Context)
}

// NewHandler wires the review routes. m and onWrite may be nil.
func NewHandler(svc *Service, log *zap.Logger, m *metrics.Metrics, onWrite func(context.Context)) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if onWrite == nil {
		onWrite = func(context.Context) {}
	}
	return &Handler{svc: svc, log: log, metrics: m, onWrite: onWrite}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/reviews")
	g.GET("", h.list)
	g.POST("", h.create)

	a := rg.Group("/admin/reviews", authMW)
	a.GET("", h.adminList)
	a.GET("/:id", h.adminGet)
	a.DELETE("", h.delete)
	a.DELETE("/:id", h.delete)
}

// GET /reviews?location_id=
func (h *Handler) list(c *gin.Context) {
	locationID := strings.TrimSpace(c.Query("location_id"))
	if locationID == "" {
		locationID = strings.TrimSpace(c.Query("locationId"))
	}
	items, err := h.svc.List(c.Request.Context(), locationID)
	if err != nil {
		h.storageError(c, "review.list", msgFetchFailed, err)
		return
	}
	out := make([]reviewResponse, len(items))
	for i := range items {
		out[i] = toResponse(&items[i])
	}
	response.OK(c, out)
}

// POST /reviews
func (h *Handler) create(c *gin.Context) {
	var dto CreateReviewDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, msgMissingFields)
		return
	}
	in, err := validate(&dto)
	if err != nil {
		if errors.Is(err, errInvalidRating) {
			response.BadRequest(c, msgInvalidRating)
			return
		}
		response.BadRequest(c, msgMissingFields)
		return
	}
	if marker.HasReviewed(c, in.LocationID) {
		response.BadRequest(c, msgAlreadyReviewed)
		return
	}

	r, err := h.svc.Create(c.Request.Context(), in, clientip.Resolve(c.Request, clientip.ReviewOrder))
	if err != nil {
		h.storageError(c, "review.create", msgCreateFailed, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ReviewsCreated.Inc()
	}
	h.onWrite(c.Request.Context())
	marker.MarkReviewed(c, in.LocationID)
	response.Created(c, toResponse(r))
}

// GET /admin/reviews
func (h *Handler) adminList(c *gin.Context) {
	rows, err := h.svc.ListWithLocation(c.Request.Context())
	if err != nil {
		h.storageError(c, "review.admin_list", msgFetchFailed, err)
		return
	}
	out := make([]adminReviewResponse, len(rows))
	for i := range rows {
		out[i] = toAdminResponse(&rows[i])
	}
	response.OK(c, out)
}

// GET /admin/reviews/:id
func (h *Handler) adminGet(c *gin.Context) {
	row, err := h.svc.GetWithLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		if isNotFound(err) {
			response.NotFoundMsg(c, msgNotFound)
			return
		}
		h.storageError(c, "review.admin_get", msgFetchFailed, err)
		return
	}
	response.OK(c, toAdminResponse(row))
}

// DELETE /admin/reviews/:id and DELETE /admin/reviews?id=
func (h *Handler) delete(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		id = strings.TrimSpace(c.Query("id"))
	}
	if id == "" {
		response.BadRequest(c, msgIDRequired)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if isNotFound(err) {
			response.NotFoundMsg(c, msgNotFound)
			return
		}
		h.storageError(c, "review.delete", msgDeleteFailed, err)
		return
	}
	h.onWrite(c.Request.Context())
	response.NoContent(c)
}

func (h *Handler) storageError(c *gin.Context, op, message string, err error) {
	h.log.Error("storage failure", zap.String("op", op), zap.Error(err))
	response.InternalError(c, message)
}
