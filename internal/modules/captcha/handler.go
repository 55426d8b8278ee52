package captcha

import (
	"github.com/gin-gonic/gin"
	"github.com/lightsmap/core/internal/pkg/metrics"
	"github.com/lightsmap/core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc     *Service
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewHandler(svc *Service, log *zap.Logger, m *metrics.Metrics) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log, metrics: m}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/captcha", h.issue)
}

// GET /captcha
func (h *Handler) issue(c *gin.Context) {
	challenge, err := h.svc.Issue()
	if err != nil {
		h.log.Error("captcha issue failed", zap.Error(err))
		response.InternalError(c, msgIssueFailed)
		return
	}
	if h.metrics != nil {
		h.metrics.CaptchaIssued.Inc()
	}
	c.Header("Cache-Control", "no-store")
	response.OK(c, challenge)
}
