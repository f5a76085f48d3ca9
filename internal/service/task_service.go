package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"tasktracker/internal/cache"
	dom "tasktracker/internal/domain"
	"tasktracker/internal/recurrence"
	"tasktracker/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000
)

// ListFilter narrows and orders a task list request. Zero values mean "no
// filter". Unknown sort fields fall back in the store, not here.
type ListFilter struct {
	Status   string
	Priority string
	Date     *time.Time
	Sort     string
}

// CreateTaskInput is the draft for a new task.
type CreateTaskInput struct {
	Title            string
	Description      string
	Priority         string
	DueDate          *time.Time
	RecurringType    string
	RecurringTime    string
	RecurringEndDate *time.Time
}

// UpdateTaskInput is an explicit partial update: nil leaves the field alone.
// An empty RecurringType clears the recurrence rule.
type UpdateTaskInput struct {
	Title            *string
	Description      *string
	Priority         *string
	DueDate          *time.Time
	RecurringType    *string
	RecurringTime    *string
	RecurringEndDate *time.Time
}

// TaskService composes the task store, the visibility policy, and the
// recurrence projector. It holds no per-request state.
type TaskService struct {
	repo  repo.TaskRepo
	cache *cache.TaskCache
	sf    singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, c *cache.TaskCache) *TaskService {
	return &TaskService{repo: r, cache: c}
}

// List returns tasks visible to the actor (owned or shared), filtered and
// sorted. A nil actor is an unscoped administrative query.
func (s *TaskService) List(ctx context.Context, actorID *int64, f ListFilter) ([]dom.Task, error) {
	filter := repo.TaskFilter{
		ActorID:  actorID,
		Status:   f.Status,
		Priority: f.Priority,
		Date:     f.Date,
		Sort:     f.Sort,
	}
	if s.cache == nil {
		return s.repo.Query(ctx, filter)
	}
	key := cache.ListKey(actorID, f.Status, f.Priority, fmtDate(f.Date), f.Sort)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetList(ctx, key); err == nil && list != nil {
			return list, nil
		}
		list, err := s.repo.Query(ctx, filter)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetList(ctx, key, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Task), nil
}

// Get returns one task, or ErrNotFound when the row is absent or hidden from
// the actor.
func (s *TaskService) Get(ctx context.Context, id int64, actorID *int64) (dom.Task, error) {
	t, err := s.repo.GetByID(ctx, id, actorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	return t, nil
}

// Create validates the draft and stores a new incomplete task owned by the
// actor.
func (s *TaskService) Create(ctx context.Context, actorID int64, in CreateTaskInput) (dom.Task, error) {
	title := strings.TrimSpace(in.Title)
	desc := strings.TrimSpace(in.Description)
	if err := validateContent(title, desc); err != nil {
		return dom.Task{}, err
	}

	t := dom.Task{
		Title:       title,
		Description: desc,
		Status:      dom.StatusIncomplete,
		Priority:    dom.NormalizePriority(in.Priority),
		DueDate:     in.DueDate,
		OwnerID:     &actorID,
	}
	if in.RecurringType != "" {
		rt := dom.RecurrenceType(in.RecurringType)
		if !rt.Valid() {
			return dom.Task{}, validationErr("recurring_type must be daily, weekly or monthly")
		}
		t.RecurringType = &rt
		if in.RecurringTime != "" {
			if _, err := time.Parse("15:04", in.RecurringTime); err != nil {
				return dom.Task{}, validationErr("recurring_time must be HH:MM")
			}
			rtime := in.RecurringTime
			t.RecurringTime = &rtime
		}
		t.RecurringEndDate = in.RecurringEndDate
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return dom.Task{}, err
	}
	s.invalidateCache(ctx)
	return created, nil
}

// Update applies a partial content edit. Any visibility holder may edit; the
// visibility check and the write are separate statements, with no transaction
// between them.
func (s *TaskService) Update(ctx context.Context, id int64, actorID *int64, in UpdateTaskInput) (dom.Task, error) {
	existing, err := s.Get(ctx, id, actorID)
	if err != nil {
		return dom.Task{}, err
	}

	patch := existing
	if in.Title != nil {
		patch.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		patch.Description = strings.TrimSpace(*in.Description)
	}
	if err := validateContent(patch.Title, patch.Description); err != nil {
		return dom.Task{}, err
	}
	if in.Priority != nil {
		patch.Priority = dom.NormalizePriority(*in.Priority)
	}
	if in.DueDate != nil {
		patch.DueDate = in.DueDate
	}
	if in.RecurringType != nil {
		if *in.RecurringType == "" {
			patch.RecurringType = nil
			patch.RecurringTime = nil
			patch.RecurringEndDate = nil
		} else {
			rt := dom.RecurrenceType(*in.RecurringType)
			if !rt.Valid() {
				return dom.Task{}, validationErr("recurring_type must be daily, weekly or monthly")
			}
			patch.RecurringType = &rt
		}
	}
	if in.RecurringTime != nil && patch.RecurringType != nil {
		if _, err := time.Parse("15:04", *in.RecurringTime); err != nil {
			return dom.Task{}, validationErr("recurring_time must be HH:MM")
		}
		patch.RecurringTime = in.RecurringTime
	}
	if in.RecurringEndDate != nil && patch.RecurringType != nil {
		patch.RecurringEndDate = in.RecurringEndDate
	}

	t, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

// SetStatus marks the task complete or incomplete.
func (s *TaskService) SetStatus(ctx context.Context, id int64, actorID *int64, status string) (dom.Task, error) {
	st := dom.Status(status)
	if !st.Valid() {
		return dom.Task{}, validationErr("status must be complete or incomplete")
	}
	if _, err := s.Get(ctx, id, actorID); err != nil {
		return dom.Task{}, err
	}
	t, err := s.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

// SetShared toggles the broadcast flag. Owner only: a non-owner gets
// ErrNotFound even when the task is visible to them.
func (s *TaskService) SetShared(ctx context.Context, id int64, actorID *int64, shared bool) (dom.Task, error) {
	existing, err := s.Get(ctx, id, nil)
	if err != nil {
		return dom.Task{}, err
	}
	if !existing.SharableBy(actorID) {
		return dom.Task{}, ErrNotFound
	}
	t, err := s.repo.SetShared(ctx, id, shared)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

// Delete removes the task permanently. Deleting an already-deleted id returns
// ErrNotFound, not a failure.
func (s *TaskService) Delete(ctx context.Context, id int64, actorID *int64) error {
	if _, err := s.Get(ctx, id, actorID); err != nil {
		return err
	}
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	s.invalidateCache(ctx)
	return nil
}

// Counts returns total/complete/incomplete over the actor's visible tasks.
func (s *TaskService) Counts(ctx context.Context, actorID *int64) (repo.TaskCounts, error) {
	if s.cache == nil {
		return s.repo.Counts(ctx, actorID)
	}
	key := "counts:" + fmtActor(actorID)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if counts, ok, err := s.cache.GetCounts(ctx, actorID); err == nil && ok {
			return counts, nil
		}
		counts, err := s.repo.Counts(ctx, actorID)
		if err != nil {
			return repo.TaskCounts{}, err
		}
		_ = s.cache.SetCounts(ctx, actorID, counts)
		return counts, nil
	})
	if err != nil {
		return repo.TaskCounts{}, err
	}
	return v.(repo.TaskCounts), nil
}

// ForRange returns the actor's visible tasks bucketed by date over the
// inclusive window. Daily recurrences are projected onto every active day;
// weekly and monthly rules appear only through their due date (see the
// recurrence package).
func (s *TaskService) ForRange(ctx context.Context, actorID *int64, start, end time.Time) (map[string][]dom.Task, error) {
	tasks, err := s.repo.QueryRange(ctx, actorID, recurrence.Day(start), recurrence.Day(end))
	if err != nil {
		return nil, err
	}
	return recurrence.ExpandRange(tasks, start, end), nil
}

// ForDate is the single-day degenerate range query.
func (s *TaskService) ForDate(ctx context.Context, actorID *int64, date time.Time) ([]dom.Task, error) {
	buckets, err := s.ForRange(ctx, actorID, date, date)
	if err != nil {
		return nil, err
	}
	return buckets[recurrence.Day(date).Format(recurrence.DateLayout)], nil
}

func (s *TaskService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx)
	}
}

func validateContent(title, desc string) error {
	if title == "" {
		return validationErr("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return validationErr("title must be at most %d characters", maxTitleLen)
	}
	if utf8.RuneCountInString(desc) > maxDescriptionLen {
		return validationErr("description must be at most %d characters", maxDescriptionLen)
	}
	return nil
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(recurrence.DateLayout)
}

func fmtActor(id *int64) string {
	if id == nil {
		return "all"
	}
	return strconv.FormatInt(*id, 10)
}
