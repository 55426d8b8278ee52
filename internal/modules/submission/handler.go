package submission

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lightsmap/core/internal/modules/captcha"
	"github.com/lightsmap/core/internal/pkg/clientip"
	"github.com/lightsmap/core/internal/pkg/marker"
	"github.com/lightsmap/core/internal/pkg/metrics"
	"github.com/lightsmap/core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc     *Service
	captcha *captcha.Service
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewHandler(svc *Service, captchaSvc *captcha.Service, log *zap.Logger, m *metrics.Metrics) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, captcha: captchaSvc, log: log, metrics: m}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/submissions", h.create)

	a := rg.Group("/admin/submissions", authMW)
	a.GET("", h.list)
	a.DELETE("", h.delete)
	a.DELETE("/:id", h.delete)
}

// POST /submissions
func (h *Handler) create(c *gin.Context) {
	var dto CreateSubmissionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		h.reject(c, metrics.ReasonMissingFields, msgMissingFields)
		return
	}
	if err := checkRequired(&dto); err != nil {
		h.reject(c, metrics.ReasonMissingFields, msgMissingFields)
		return
	}
	if err := h.captcha.Check(dto.CaptchaToken, dto.CaptchaAnswer); err != nil {
		if errors.Is(err, captcha.ErrIncorrectAnswer) {
			h.reject(c, metrics.ReasonWrongAnswer, msgIncorrectCaptcha)
			return
		}
		if h.metrics != nil {
			h.metrics.CaptchaRejected.WithLabelValues(metrics.ReasonInvalidToken).Inc()
		}
		response.UnauthorizedMsg(c, msgInvalidCaptcha)
		return
	}
	if marker.HasSubmitted(c) {
		response.BadRequest(c, msgAlreadySubmitted)
		return
	}

	from := Provenance{
		IP:        clientip.Resolve(c.Request, clientip.SubmissionOrder),
		UserAgent: optional(c.Request.UserAgent()),
	}
	sub, err := h.svc.Create(c.Request.Context(), &dto, from)
	if err != nil {
		h.storageError(c, "submission.create", msgCreateFailed, err)
		return
	}
	if h.metrics != nil {
		h.metrics.SubmissionsCreated.Inc()
	}
	marker.MarkSubmitted(c)
	response.Created(c, toResponse(sub))
}

// GET /admin/submissions
func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.storageError(c, "submission.list", msgFetchFailed, err)
		return
	}
	out := make([]adminSubmissionResponse, len(items))
	for i := range items {
		out[i] = toAdminResponse(&items[i])
	}
	response.OK(c, out)
}

// DELETE /admin/submissions?id= and DELETE /admin/submissions/:id
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
		if errors.Is(err, errNotFound) {
			response.NotFoundMsg(c, msgNotFound)
			return
		}
		h.storageError(c, "submission.delete", msgDeleteFailed, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) reject(c *gin.Context, reason, message string) {
	if h.metrics != nil {
		h.metrics.CaptchaRejected.WithLabelValues(reason).Inc()
	}
	response.BadRequest(c, message)
}

func (h *Handler) storageError(c *gin.Context, op, message string, err error) {
	h.log.Error("storage failure", zap.String("op", op), zap.Error(err))
	response.InternalError(c, message)
}
