package service

import (
	"context"
	"errors"
	"strings"
	"time"

	dom "tasktracker/internal/domain"
	"tasktracker/internal/recurrence"
	"tasktracker/internal/repo"

	"github.com/jackc/pgx/v5"
)

// HabitStatus pairs a habit with its completion state on one date.
type HabitStatus struct {
	Habit dom.Habit
	Done  bool
}

// HabitService owns habit CRUD and per-date completion toggling.
type HabitService struct {
	repo  repo.HabitRepo
	clock recurrence.Clock
}

func NewHabitService(r repo.HabitRepo, clock recurrence.Clock) *HabitService {
	return &HabitService{repo: r, clock: clock}
}

func (s *HabitService) Create(ctx context.Context, actorID int64, name, description string) (dom.Habit, error) {
	name = strings.TrimSpace(name)
	if err := validateContent(name, strings.TrimSpace(description)); err != nil {
		return dom.Habit{}, err
	}
	return s.repo.Create(ctx, dom.Habit{
		UserID:      actorID,
		Name:        name,
		Description: strings.TrimSpace(description),
	})
}

// List returns the actor's habits with their completion state on date. A zero
// date means today.
func (s *HabitService) List(ctx context.Context, actorID int64, date time.Time) ([]HabitStatus, error) {
	if date.IsZero() {
		date = s.clock.Today()
	}
	habits, err := s.repo.List(ctx, actorID)
	if err != nil {
		return nil, err
	}
	done, err := s.repo.CompletedOn(ctx, actorID, recurrence.Day(date))
	if err != nil {
		return nil, err
	}
	out := make([]HabitStatus, len(habits))
	for i, h := range habits {
		out[i] = HabitStatus{Habit: h, Done: done[h.ID]}
	}
	return out, nil
}

func (s *HabitService) Get(ctx context.Context, actorID, id int64) (dom.Habit, error) {
	h, err := s.repo.GetByID(ctx, actorID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Habit{}, ErrNotFound
		}
		return dom.Habit{}, err
	}
	return h, nil
}

func (s *HabitService) Delete(ctx context.Context, actorID, id int64) error {
	ok, err := s.repo.Delete(ctx, actorID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// ToggleEntry flips the habit's completion for the date. The (habit, date)
// pair maps to at most one entry: the first toggle creates it completed,
// later toggles flip it in place. A zero date means today.
func (s *HabitService) ToggleEntry(ctx context.Context, actorID, habitID int64, date time.Time) (dom.HabitEntry, error) {
	if _, err := s.Get(ctx, actorID, habitID); err != nil {
		return dom.HabitEntry{}, err
	}
	if date.IsZero() {
		date = s.clock.Today()
	}
	day := recurrence.Day(date)

	completed := true
	existing, err := s.repo.GetEntry(ctx, habitID, day)
	switch {
	case err == nil:
		completed = !existing.Completed
	case errors.Is(err, pgx.ErrNoRows):
	default:
		return dom.HabitEntry{}, err
	}
	return s.repo.UpsertEntry(ctx, habitID, day, completed)
}

// Entries returns the habit's entries within [start, end].
func (s *HabitService) Entries(ctx context.Context, actorID, habitID int64, start, end time.Time) ([]dom.HabitEntry, error) {
	if _, err := s.Get(ctx, actorID, habitID); err != nil {
		return nil, err
	}
	return s.repo.Entries(ctx, habitID, recurrence.Day(start), recurrence.Day(end))
}
