package location

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/lightsmap/core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc     *Service
	log     *zap.Logger
	onWrite func(context.Context)
}

// NewHandler wires the location routes. onWrite runs after every
// successful admin mutation and may be nil.
func NewHandler(svc *Service, log *zap.Logger, onWrite func(context.Context)) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if onWrite == nil {
		onWrite = func(context.Context) {}
	}
	return &Handler{svc: svc, log: log, onWrite: onWrite}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/locations")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	a := rg.Group("/admin/locations", authMW)
	a.GET("", h.list)
	a.POST("", h.create)
	a.GET("/:id", h.get)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

// GET /locations
func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.storageError(c, "location.list", msgFetchFailed, err)
		return
	}
	response.OK(c, toResponses(items))
}

// GET /locations/:id
func (h *Handler) get(c *gin.Context) {
	l, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, errNotFound) {
			response.NotFoundMsg(c, msgNotFound)
			return
		}
		h.storageError(c, "location.get", msgFetchOneFailed, err)
		return
	}
	response.OK(c, toResponse(l))
}

// POST /admin/locations
func (h *Handler) create(c *gin.Context) {
	var dto CreateLocationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, msgMissingFields)
		return
	}
	l, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		h.storageError(c, "location.create", msgCreateFailed, err)
		return
	}
	h.onWrite(c.Request.Context())
	response.Created(c, toResponse(l))
}

// PUT /admin/locations/:id
func (h *Handler) update(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, msgInvalidBody)
		return
	}
	updates, err := buildUpdates(body)
	if err != nil {
		var fe *fieldError
		switch {
		case errors.Is(err, errNoValidFields):
			response.BadRequest(c, msgNoValidFields)
		case errors.As(err, &fe):
			response.BadRequest(c, fe.Error())
		default:
			response.BadRequest(c, msgInvalidBody)
		}
		return
	}

	l, err := h.svc.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		if errors.Is(err, errNotFound) {
			response.NotFoundMsg(c, msgNotFound)
			return
		}
		h.storageError(c, "location.update", msgUpdateFailed, err)
		return
	}
	h.onWrite(c.Request.Context())
	response.OK(c, toResponse(l))
}

// DELETE /admin/locations/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, errNotFound) {
			response.NotFoundMsg(c, msgNotFound)
			return
		}
		h.storageError(c, "location.delete", msgDeleteFailed, err)
		return
	}
	h.onWrite(c.Request.Context())
	response.NoContent(c)
}

func (h *Handler) storageError(c *gin.Context, op, message string, err error) {
	h.log.Error("storage failure", zap.String("op", op), zap.Error(err))
	response.InternalError(c, message)
}
