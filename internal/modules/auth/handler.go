package auth

import (
	"errors"

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
	a := rg.Group("/auth")
	a.POST("/login", h.login)
}

// POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&dto); err != nil {
			dto = LoginDTO{}
		}
	}
	token, err := h.svc.Login(dto.Password)
	if err != nil {
		switch {
		case errors.Is(err, errNotConfigured):
			h.count(outcomeUnavailable)
			h.log.Error("configuration error", zap.String("key", "ADMIN_PASSWORD"), zap.Error(err))
			response.InternalError(c, msgConfigError)
		case errors.Is(err, errPasswordRequired):
			h.count(outcomeMissing)
			response.BadRequest(c, msgPasswordRequired)
		case errors.Is(err, errInvalidCredentials):
			h.count(outcomeInvalid)
			response.UnauthorizedMsg(c, msgInvalidCredentials)
		default:
			h.log.Error("admin token issue failed", zap.Error(err))
			response.InternalError(c, msgTokenFailed)
		}
		return
	}
	h.count(outcomeSuccess)
	response.OK(c, loginResponse{Token: token})
}

func (h *Handler) count(outcome string) {
	if h.metrics != nil {
		h.metrics.AdminLogins.WithLabelValues(outcome).Inc()
	}
}
