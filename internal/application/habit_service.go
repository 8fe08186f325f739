package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mindstack/mindstack/internal/domain/entity"
	"github.com/mindstack/mindstack/internal/domain/repository"
)

var (
	ErrHabitNotFound         = errors.New("habit not found")
	ErrHabitInstanceNotFound = errors.New("habit instance not found")
	ErrInvalidFrequency      = errors.New("invalid frequency")
)

// horizonDays is how far ahead instances are materialized.
const horizonDays = 30

// HabitService manages recurring habits and their materialized instances.
type HabitService struct {
	Habits repository.HabitRepository
	Logger *logrus.Logger
}

func NewHabitService(habits repository.HabitRepository, logger *logrus.Logger) *HabitService {
	return &HabitService{Habits: habits, Logger: logger}
}

type CreateHabitInput struct {
	Title       string
	Description *string
	Frequency   string
	StartDate   *time.Time
	EndDate     *time.Time
	DueTime     *string
}

func (s *HabitService) Create(ctx context.Context, userID uuid.UUID, in CreateHabitInput) (*entity.Habit, error) {
	switch in.Frequency {
	case entity.FrequencyDaily, entity.FrequencyWeekly, entity.FrequencyMonthly:
	default:
		return nil, ErrInvalidFrequency
	}

	start := dateOnly(time.Now())
	if in.StartDate != nil {
		start = dateOnly(*in.StartDate)
	}
	var end *time.Time
	if in.EndDate != nil {
		e := dateOnly(*in.EndDate)
		end = &e
	}

	h := &entity.Habit{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Frequency:   in.Frequency,
		StartDate:   start,
		EndDate:     end,
		DueTime:     in.DueTime,
	}
	if err := s.Habits.Create(ctx, h); err != nil {
		return nil, err
	}
	if err := s.generateInstances(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *HabitService) List(ctx context.Context, userID uuid.UUID, active *bool) ([]entity.Habit, error) {
	return s.Habits.ListByUser(ctx, userID, active)
}

func (s *HabitService) Get(ctx context.Context, id, userID uuid.UUID) (*entity.Habit, error) {
	h, err := s.Habits.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, err
	}
	return h, nil
}

// UpdateHabitInput merges title/description/is_active/end_date. EndDateSet
// with a nil EndDate clears the end date.
type UpdateHabitInput struct {
	Title       *string
	Description *string
	IsActive    *bool
	EndDateSet  bool
	EndDate     *time.Time
}

func (s *HabitService) Update(ctx context.Context, id, userID uuid.UUID, in UpdateHabitInput) (*entity.Habit, error) {
	h, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		h.Title = *in.Title
	}
	if in.Description != nil {
		h.Description = in.Description
	}
	if in.IsActive != nil {
		h.IsActive = *in.IsActive
	}
	if in.EndDateSet {
		if in.EndDate != nil {
			e := dateOnly(*in.EndDate)
			h.EndDate = &e
		} else {
			h.EndDate = nil
		}
	}

	if err := s.Habits.Update(ctx, h); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, err
	}

	// Keep the materialized window consistent with the new bounds.
	if in.EndDateSet && h.EndDate != nil {
		if err := s.Habits.DeleteInstancesAfter(ctx, h.ID, *h.EndDate); err != nil {
			return nil, err
		}
	}
	if h.IsActive {
		if err := s.generateInstances(ctx, h); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Delete removes the habit outright when deleteAllFuture is set; otherwise
// the habit is deactivated, ended today and its future instances dropped,
// keeping the history.
func (s *HabitService) Delete(ctx context.Context, id, userID uuid.UUID, deleteAllFuture bool) error {
	h, err := s.Get(ctx, id, userID)
	if err != nil {
		return err
	}

	if deleteAllFuture {
		ok, err := s.Habits.Delete(ctx, id, userID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrHabitNotFound
		}
		return nil
	}

	today := dateOnly(time.Now())
	h.IsActive = false
	h.EndDate = &today
	if err := s.Habits.Update(ctx, h); err != nil {
		return err
	}
	return s.Habits.DeleteInstancesAfter(ctx, h.ID, today)
}

func (s *HabitService) ListInstances(ctx context.Context, userID uuid.UUID, f repository.InstanceFilter) ([]entity.HabitInstance, error) {
	return s.Habits.ListInstances(ctx, userID, f)
}

type UpdateInstanceInput struct {
	Completed *bool
	Skipped   *bool
}

// UpdateInstance toggles completion or skipping. The two are mutually
// exclusive: completing clears skipped, skipping clears completion.
func (s *HabitService) UpdateInstance(ctx context.Context, id, userID uuid.UUID, in UpdateInstanceInput) (*entity.HabitInstance, error) {
	inst, err := s.Habits.GetInstanceByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHabitInstanceNotFound
		}
		return nil, err
	}

	if in.Completed != nil {
		inst.Completed = *in.Completed
		if *in.Completed {
			now := time.Now()
			inst.CompletedAt = &now
			inst.Skipped = false
		} else {
			inst.CompletedAt = nil
		}
	}
	if in.Skipped != nil {
		inst.Skipped = *in.Skipped
		if *in.Skipped {
			inst.Completed = false
			inst.CompletedAt = nil
		}
	}

	if err := s.Habits.UpdateInstance(ctx, inst); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHabitInstanceNotFound
		}
		return nil, err
	}
	return inst, nil
}

// DeleteInstance removes one occurrence. With deleteAllFuture this and all
// later occurrences go, and the habit is deactivated and ended at the
// deleted occurrence's date so regeneration stays bounded.
func (s *HabitService) DeleteInstance(ctx context.Context, id, userID uuid.UUID, deleteAllFuture bool) error {
	inst, err := s.Habits.GetInstanceByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrHabitInstanceNotFound
		}
		return err
	}

	if !deleteAllFuture {
		ok, err := s.Habits.DeleteInstance(ctx, id, userID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrHabitInstanceNotFound
		}
		return nil
	}

	if err := s.Habits.DeleteInstancesOnOrAfter(ctx, inst.HabitID, inst.DueDate); err != nil {
		return err
	}
	h, err := s.Habits.GetByID(ctx, inst.HabitID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	h.IsActive = false
	end := dateOnly(inst.DueDate)
	h.EndDate = &end
	return s.Habits.Update(ctx, h)
}

// Regenerate drops future instances of every active habit and materializes
// the window again.
func (s *HabitService) Regenerate(ctx context.Context, userID uuid.UUID) (int, error) {
	active := true
	habits, err := s.Habits.ListByUser(ctx, userID, &active)
	if err != nil {
		return 0, err
	}
	today := dateOnly(time.Now())
	count := 0
	for i := range habits {
		h := &habits[i]
		if err := s.Habits.DeleteInstancesAfter(ctx, h.ID, today); err != nil {
			return count, err
		}
		if err := s.generateInstances(ctx, h); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// generateInstances materializes occurrences over the rolling window,
// skipping dates that already have a row.
func (s *HabitService) generateInstances(ctx context.Context, h *entity.Habit) error {
	today := dateOnly(time.Now())
	from := dateOnly(h.StartDate)
	if today.After(from) {
		from = today
	}
	to := today.AddDate(0, 0, horizonDays)
	if h.EndDate != nil && h.EndDate.Before(to) {
		to = dateOnly(*h.EndDate)
	}
	if to.Before(from) {
		return nil
	}

	existing, err := s.Habits.ListInstanceDates(ctx, h.ID, from, to)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for _, d := range existing {
		seen[dateOnly(d).Format(time.DateOnly)] = true
	}

	for _, due := range occurrences(dateOnly(h.StartDate), h.Frequency, from, to) {
		if seen[due.Format(time.DateOnly)] {
			continue
		}
		inst := &entity.HabitInstance{HabitID: h.ID, UserID: h.UserID, DueDate: due}
		if err := s.Habits.CreateInstance(ctx, inst); err != nil {
			return err
		}
	}
	return nil
}

// occurrences lists the habit's occurrence dates that fall in [from, to].
// Daily steps one day, weekly seven; monthly lands on the start date's day
// of month, clamped to the last day when the month is shorter.
func occurrences(start time.Time, frequency string, from, to time.Time) []time.Time {
	var out []time.Time
	switch frequency {
	case entity.FrequencyDaily, entity.FrequencyWeekly:
		step := 1
		if frequency == entity.FrequencyWeekly {
			step = 7
		}
		for d := start; !d.After(to); d = d.AddDate(0, 0, step) {
			if !d.Before(from) {
				out = append(out, d)
			}
		}
	case entity.FrequencyMonthly:
		for n := 0; ; n++ {
			d := addMonthsClamped(start, n)
			if d.After(to) {
				break
			}
			if !d.Before(from) {
				out = append(out, d)
			}
		}
	}
	return out
}

// addMonthsClamped adds n months keeping the day of month, clamped to the
// target month's last day (Jan 31 + 1 month = Feb 28/29).
func addMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
