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
	"github.com/mindstack/mindstack/internal/domain/repository"
	"github.com/mindstack/mindstack/internal/interface/middleware"
	"github.com/mindstack/mindstack/pkg/response"
	"github.com/mindstack/mindstack/pkg/validation"
)

type HabitHandler struct {
	Svc    *application.HabitService
	Logger *logrus.Logger
}

func NewHabitHandler(svc *application.HabitService, logger *logrus.Logger) *HabitHandler {
	return &HabitHandler{Svc: svc, Logger: logger}
}

type createHabitRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Frequency   string  `json:"frequency" binding:"required,oneof=daily weekly monthly"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	DueTime     *string `json:"due_time" binding:"omitempty,datetime=15:04"`
}

// updateHabitRequest keeps end_date raw so an explicit null clears it.
type updateHabitRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	IsActive    *bool           `json:"is_active"`
	EndDate     json.RawMessage `json:"end_date"`
}

type updateInstanceRequest struct {
	Completed *bool `json:"completed"`
	Skipped   *bool `json:"skipped"`
}

// deleteAllFutureFlag reads the delete_all_future flag from the query
// string or an optional JSON body, query taking precedence. A missing or
// empty body means false.
func deleteAllFutureFlag(c *gin.Context) bool {
	if v := c.Query("delete_all_future"); v != "" {
		b, _ := strconv.ParseBool(v)
		return b
	}
	var req struct {
		DeleteAllFuture bool `json:"delete_all_future"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return false
	}
	return req.DeleteAllFuture
}

// parseDate accepts RFC3339 or a plain YYYY-MM-DD date.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

func (h *HabitHandler) Create(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := application.CreateHabitInput{
		Title:       req.Title,
		Description: req.Description,
		Frequency:   req.Frequency,
		DueTime:     req.DueTime,
	}
	if req.StartDate != nil {
		d, err := parseDate(*req.StartDate)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"start_date": "must be a valid date"})
			return
		}
		in.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := parseDate(*req.EndDate)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"end_date": "must be a valid date"})
			return
		}
		in.EndDate = &d
	}

	habit, err := h.Svc.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		if errors.Is(err, application.ErrInvalidFrequency) {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"frequency": "must be one of: daily, weekly, monthly"})
			return
		}
		h.Logger.WithError(err).Error("habit create failed")
		response.Error[any](c, http.StatusInternalServerError, "habit create failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, habit, "habit created")
}

func (h *HabitHandler) List(c *gin.Context) {
	var active *bool
	if v := c.Query("is_active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"is_active": "must be true or false"})
			return
		}
		active = &b
	}

	habits, err := h.Svc.List(c.Request.Context(), middleware.UserID(c), active)
	if err != nil {
		h.Logger.WithError(err).Error("habit list failed")
		response.Error[any](c, http.StatusInternalServerError, "habit list failed", nil)
		return
	}
	response.Success(c, http.StatusOK, habits, "habits")
}

func (h *HabitHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	habit, err := h.Svc.Get(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, application.ErrHabitNotFound) {
			response.Error[any](c, http.StatusNotFound, "habit not found", nil)
			return
		}
		h.Logger.WithError(err).Error("habit get failed")
		response.Error[any](c, http.StatusInternalServerError, "habit get failed", nil)
		return
	}
	response.Success(c, http.StatusOK, habit, "habit")
}

func (h *HabitHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := application.UpdateHabitInput{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	if req.EndDate != nil {
		in.EndDateSet = true
		if !bytes.Equal(bytes.TrimSpace(req.EndDate), jsonNull) {
			var raw string
			if err := json.Unmarshal(req.EndDate, &raw); err != nil {
				response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"end_date": "must be a valid date"})
				return
			}
			d, err := parseDate(raw)
			if err != nil {
				response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"end_date": "must be a valid date"})
				return
			}
			in.EndDate = &d
		}
	}

	habit, err := h.Svc.Update(c.Request.Context(), id, middleware.UserID(c), in)
	if err != nil {
		if errors.Is(err, application.ErrHabitNotFound) {
			response.Error[any](c, http.StatusNotFound, "habit not found", nil)
			return
		}
		h.Logger.WithError(err).Error("habit update failed")
		response.Error[any](c, http.StatusInternalServerError, "habit update failed", nil)
		return
	}
	response.Success(c, http.StatusOK, habit, "habit updated")
}

func (h *HabitHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id, middleware.UserID(c), deleteAllFutureFlag(c)); err != nil {
		if errors.Is(err, application.ErrHabitNotFound) {
			response.Error[any](c, http.StatusNotFound, "habit not found", nil)
			return
		}
		h.Logger.WithError(err).Error("habit delete failed")
		response.Error[any](c, http.StatusInternalServerError, "habit delete failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "habit deleted")
}

func (h *HabitHandler) ListInstances(c *gin.Context) {
	var f repository.InstanceFilter
	if v := c.Query("start_date"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"start_date": "must be a valid date"})
			return
		}
		f.From = &d
	}
	if v := c.Query("end_date"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"end_date": "must be a valid date"})
			return
		}
		f.To = &d
	}
	if v := c.Query("completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"completed": "must be true or false"})
			return
		}
		f.Completed = &b
	}

	instances, err := h.Svc.ListInstances(c.Request.Context(), middleware.UserID(c), f)
	if err != nil {
		h.Logger.WithError(err).Error("habit instance list failed")
		response.Error[any](c, http.StatusInternalServerError, "habit instance list failed", nil)
		return
	}
	response.Success(c, http.StatusOK, instances, "habit instances")
}

func (h *HabitHandler) UpdateInstance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	inst, err := h.Svc.UpdateInstance(c.Request.Context(), id, middleware.UserID(c), application.UpdateInstanceInput{
		Completed: req.Completed,
		Skipped:   req.Skipped,
	})
	if err != nil {
		if errors.Is(err, application.ErrHabitInstanceNotFound) {
			response.Error[any](c, http.StatusNotFound, "habit instance not found", nil)
			return
		}
		h.Logger.WithError(err).Error("habit instance update failed")
		response.Error[any](c, http.StatusInternalServerError, "habit instance update failed", nil)
		return
	}
	response.Success(c, http.StatusOK, inst, "habit instance updated")
}

func (h *HabitHandler) DeleteInstance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteInstance(c.Request.Context(), id, middleware.UserID(c), deleteAllFutureFlag(c)); err != nil {
		if errors.Is(err, application.ErrHabitInstanceNotFound) {
			response.Error[any](c, http.StatusNotFound, "habit instance not found", nil)
			return
		}
		h.Logger.WithError(err).Error("habit instance delete failed")
		response.Error[any](c, http.StatusInternalServerError, "habit instance delete failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "habit instance deleted")
}

func (h *HabitHandler) Regenerate(c *gin.Context) {
	count, err := h.Svc.Regenerate(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.Logger.WithError(err).Error("habit regenerate failed")
		response.Error[any](c, http.StatusInternalServerError, "habit regenerate failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"regenerated": count}, "habit instances regenerated")
}
