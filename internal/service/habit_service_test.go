package service

import (
	"context"
	"errors"
	"testing"
	"time"

	dom "tasktracker/internal/domain"
	"tasktracker/internal/recurrence"

	"github.com/jackc/pgx/v5"
)

type fixedClock struct{ day time.Time }

func (c fixedClock) Today() time.Time { return c.day }

type entryKey struct {
	habitID int64
	date    string
}

type fakeHabitRepo struct {
	habits      []dom.Habit
	entries     map[entryKey]dom.HabitEntry
	nextHabitID int64
	nextEntryID int64
}

func newFakeHabitRepo() *fakeHabitRepo {
	return &fakeHabitRepo{entries: make(map[entryKey]dom.HabitEntry)}
}

func (f *fakeHabitRepo) Create(_ context.Context, h dom.Habit) (dom.Habit, error) {
	f.nextHabitID++
	h.ID = f.nextHabitID
	f.habits = append(f.habits, h)
	return h, nil
}

func (f *fakeHabitRepo) List(_ context.Context, userID int64) ([]dom.Habit, error) {
	var out []dom.Habit
	for _, h := range f.habits {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHabitRepo) GetByID(_ context.Context, userID, id int64) (dom.Habit, error) {
	for _, h := range f.habits {
		if h.ID == id && h.UserID == userID {
			return h, nil
		}
	}
	return dom.Habit{}, pgx.ErrNoRows
}

func (f *fakeHabitRepo) Delete(_ context.Context, userID, id int64) (bool, error) {
	for i, h := range f.habits {
		if h.ID == id && h.UserID == userID {
			f.habits = append(f.habits[:i], f.habits[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeHabitRepo) GetEntry(_ context.Context, habitID int64, date time.Time) (dom.HabitEntry, error) {
	e, ok := f.entries[entryKey{habitID, date.Format(recurrence.DateLayout)}]
	if !ok {
		return dom.HabitEntry{}, pgx.ErrNoRows
	}
	return e, nil
}

func (f *fakeHabitRepo) UpsertEntry(_ context.Context, habitID int64, date time.Time, completed bool) (dom.HabitEntry, error) {
	key := entryKey{habitID, date.Format(recurrence.DateLayout)}
	e, ok := f.entries[key]
	if !ok {
		f.nextEntryID++
		e = dom.HabitEntry{ID: f.nextEntryID, HabitID: habitID, EntryDate: date}
	}
	e.Completed = completed
	f.entries[key] = e
	return e, nil
}

func (f *fakeHabitRepo) Entries(_ context.Context, habitID int64, start, end time.Time) ([]dom.HabitEntry, error) {
	var out []dom.HabitEntry
	for _, e := range f.entries {
		if e.HabitID == habitID && !e.EntryDate.Before(start) && !e.EntryDate.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeHabitRepo) CompletedOn(_ context.Context, userID int64, date time.Time) (map[int64]bool, error) {
	done := make(map[int64]bool)
	for _, h := range f.habits {
		if h.UserID != userID {
			continue
		}
		key := entryKey{h.ID, date.Format(recurrence.DateLayout)}
		if e, ok := f.entries[key]; ok && e.Completed {
			done[h.ID] = true
		}
	}
	return done, nil
}

func TestToggleEntryFlipsInPlace(t *testing.T) {
	f := newFakeHabitRepo()
	today := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	svc := NewHabitService(f, fixedClock{today})
	ctx := context.Background()

	h, err := svc.Create(ctx, 1, "meditate", "")
	if err != nil {
		t.Fatal(err)
	}

	// first toggle creates the entry completed
	e1, err := svc.ToggleEntry(ctx, 1, h.ID, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if !e1.Completed {
		t.Error("first toggle should complete the habit")
	}
	if !e1.EntryDate.Equal(today) {
		t.Errorf("zero date should resolve to today, got %v", e1.EntryDate)
	}

	// second toggle flips the same row rather than adding another
	e2, err := svc.ToggleEntry(ctx, 1, h.ID, today)
	if err != nil {
		t.Fatal(err)
	}
	if e2.Completed {
		t.Error("second toggle should uncomplete")
	}
	if e2.ID != e1.ID {
		t.Errorf("toggle created a new row (id %d vs %d)", e2.ID, e1.ID)
	}
	if len(f.entries) != 1 {
		t.Errorf("%d entries stored, want 1", len(f.entries))
	}

	// third toggle completes again
	e3, err := svc.ToggleEntry(ctx, 1, h.ID, today)
	if err != nil {
		t.Fatal(err)
	}
	if !e3.Completed {
		t.Error("third toggle should complete again")
	}
}

func TestToggleEntryOwnershipScoped(t *testing.T) {
	f := newFakeHabitRepo()
	svc := NewHabitService(f, fixedClock{time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	h, err := svc.Create(ctx, 1, "meditate", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ToggleEntry(ctx, 2, h.ID, time.Time{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign habit toggle: want ErrNotFound, got %v", err)
	}
}

func TestHabitListCarriesCompletion(t *testing.T) {
	f := newFakeHabitRepo()
	today := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	svc := NewHabitService(f, fixedClock{today})
	ctx := context.Background()

	a, _ := svc.Create(ctx, 1, "meditate", "")
	b, _ := svc.Create(ctx, 1, "run", "")
	if _, err := svc.ToggleEntry(ctx, 1, a.ID, today); err != nil {
		t.Fatal(err)
	}

	list, err := svc.List(ctx, 1, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d habits, want 2", len(list))
	}
	for _, hs := range list {
		switch hs.Habit.ID {
		case a.ID:
			if !hs.Done {
				t.Error("toggled habit should read done")
			}
		case b.ID:
			if hs.Done {
				t.Error("untouched habit should read not done")
			}
		}
	}
}

func TestHabitCreateValidation(t *testing.T) {
	f := newFakeHabitRepo()
	svc := NewHabitService(f, fixedClock{time.Now()})

	if _, err := svc.Create(context.Background(), 1, "   ", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name: want ErrValidation, got %v", err)
	}
}
