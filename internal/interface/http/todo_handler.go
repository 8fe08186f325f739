package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mindstack/mindstack/internal/application"
	"github.com/mindstack/mindstack/internal/interface/middleware"
	"github.com/mindstack/mindstack/pkg/response"
	"github.com/mindstack/mindstack/pkg/validation"
)

type TodoHandler struct {
	Svc    *application.TodoService
	Logger *logrus.Logger
}

func NewTodoHandler(svc *application.TodoService, logger *logrus.Logger) *TodoHandler {
	return &TodoHandler{Svc: svc, Logger: logger}
}

type createTodoRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// updateTodoRequest keeps due_date raw so an absent field (keep the stored
// date) can be told apart from an explicit null (clear it).
type updateTodoRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Completed   *bool           `json:"completed"`
	DueDate     json.RawMessage `json:"due_date"`
}

var jsonNull = []byte("null")

func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	t, err := h.Svc.Create(c.Request.Context(), middleware.UserID(c), application.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.Logger.WithError(err).Error("todo create failed")
		response.Error[any](c, http.StatusInternalServerError, "todo create failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, t, "todo created")
}

func (h *TodoHandler) List(c *gin.Context) {
	var completed *bool
	if v := c.Query("completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"completed": "must be true or false"})
			return
		}
		completed = &b
	}

	todos, err := h.Svc.List(c.Request.Context(), middleware.UserID(c), completed)
	if err != nil {
		h.Logger.WithError(err).Error("todo list failed")
		response.Error[any](c, http.StatusInternalServerError, "todo list failed", nil)
		return
	}
	response.Success(c, http.StatusOK, todos, "todos")
}

func (h *TodoHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.Svc.Get(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, application.ErrTodoNotFound) {
			response.Error[any](c, http.StatusNotFound, "todo not found", nil)
			return
		}
		h.Logger.WithError(err).Error("todo get failed")
		response.Error[any](c, http.StatusInternalServerError, "todo get failed", nil)
		return
	}
	response.Success(c, http.StatusOK, t, "todo")
}

func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := application.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
	if req.DueDate != nil {
		in.DueDateSet = true
		if !bytes.Equal(bytes.TrimSpace(req.DueDate), jsonNull) {
			var due time.Time
			if err := json.Unmarshal(req.DueDate, &due); err != nil {
				response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"due_date": "must be a valid datetime"})
				return
			}
			in.DueDate = &due
		}
	}

	t, err := h.Svc.Update(c.Request.Context(), id, middleware.UserID(c), in)
	if err != nil {
		if errors.Is(err, application.ErrTodoNotFound) {
			response.Error[any](c, http.StatusNotFound, "todo not found", nil)
			return
		}
		h.Logger.WithError(err).Error("todo update failed")
		response.Error[any](c, http.StatusInternalServerError, "todo update failed", nil)
		return
	}
	response.Success(c, http.StatusOK, t, "todo updated")
}

func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		if errors.Is(err, application.ErrTodoNotFound) {
			response.Error[any](c, http.StatusNotFound, "todo not found", nil)
			return
		}
		h.Logger.WithError(err).Error("todo delete failed")
		response.Error[any](c, http.StatusInternalServerError, "todo delete failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "todo deleted")
}
