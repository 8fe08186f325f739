package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mindstack/mindstack/internal/application"
	"github.com/mindstack/mindstack/internal/interface/middleware"
	"github.com/mindstack/mindstack/pkg/response"
	"github.com/mindstack/mindstack/pkg/validation"
)

type ThoughtHandler struct {
	Svc    *application.ThoughtService
	Logger *logrus.Logger
}

func NewThoughtHandler(svc *application.ThoughtService, logger *logrus.Logger) *ThoughtHandler {
	return &ThoughtHandler{Svc: svc, Logger: logger}
}

type thoughtRequest struct {
	Content string `json:"content" binding:"required"`
}

// pathID parses the :id segment; writes the 400 itself on failure.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"id": "must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *ThoughtHandler) Create(c *gin.Context) {
	var req thoughtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	t, err := h.Svc.Create(c.Request.Context(), middleware.UserID(c), req.Content)
	if err != nil {
		h.Logger.WithError(err).Error("thought create failed")
		response.Error[any](c, http.StatusInternalServerError, "thought create failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, t, "thought created")
}

func (h *ThoughtHandler) List(c *gin.Context) {
	thoughts, err := h.Svc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.Logger.WithError(err).Error("thought list failed")
		response.Error[any](c, http.StatusInternalServerError, "thought list failed", nil)
		return
	}
	response.Success(c, http.StatusOK, thoughts, "thoughts")
}

func (h *ThoughtHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	thoughts, err := h.Svc.Search(c.Request.Context(), middleware.UserID(c), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("thought search failed")
		response.Error[any](c, http.StatusInternalServerError, "thought search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, thoughts, "search results")
}

func (h *ThoughtHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.Svc.Get(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, application.ErrThoughtNotFound) {
			response.Error[any](c, http.StatusNotFound, "thought not found", nil)
			return
		}
		h.Logger.WithError(err).Error("thought get failed")
		response.Error[any](c, http.StatusInternalServerError, "thought get failed", nil)
		return
	}
	response.Success(c, http.StatusOK, t, "thought")
}

func (h *ThoughtHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req thoughtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	t, err := h.Svc.Update(c.Request.Context(), id, middleware.UserID(c), req.Content)
	if err != nil {
		if errors.Is(err, application.ErrThoughtNotFound) {
			response.Error[any](c, http.StatusNotFound, "thought not found", nil)
			return
		}
		h.Logger.WithError(err).Error("thought update failed")
		response.Error[any](c, http.StatusInternalServerError, "thought update failed", nil)
		return
	}
	response.Success(c, http.StatusOK, t, "thought updated")
}

func (h *ThoughtHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		if errors.Is(err, application.ErrThoughtNotFound) {
			response.Error[any](c, http.StatusNotFound, "thought not found", nil)
			return
		}
		h.Logger.WithError(err).Error("thought delete failed")
		response.Error[any](c, http.StatusInternalServerError, "thought delete failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "thought deleted")
}
