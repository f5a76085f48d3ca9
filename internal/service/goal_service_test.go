package service

import (
	"context"
	"errors"
	"testing"
	"time"

	dom "tasktracker/internal/domain"
	"tasktracker/internal/repo"

	"github.com/jackc/pgx/v5"
)

type fakeGoalRepo struct {
	goals  []dom.Goal
	nextID int64
}

func (f *fakeGoalRepo) Create(_ context.Context, g dom.Goal) (dom.Goal, error) {
	f.nextID++
	g.ID = f.nextID
	f.goals = append(f.goals, g)
	return g, nil
}

func (f *fakeGoalRepo) List(_ context.Context, userID int64) ([]dom.Goal, error) {
	var out []dom.Goal
	for _, g := range f.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoalRepo) GetByID(_ context.Context, userID, id int64) (dom.Goal, error) {
	for _, g := range f.goals {
		if g.ID == id && g.UserID == userID {
			return g, nil
		}
	}
	return dom.Goal{}, pgx.ErrNoRows
}

func (f *fakeGoalRepo) Update(_ context.Context, userID, id int64, p repo.GoalPatch) (dom.Goal, error) {
	for i, g := range f.goals {
		if g.ID != id || g.UserID != userID {
			continue
		}
		if p.Title != nil {
			g.Title = *p.Title
		}
		if p.Description != nil {
			g.Description = *p.Description
		}
		if p.Category != nil {
			g.Category = *p.Category
		}
		if p.TargetDate != nil {
			g.TargetDate = p.TargetDate
		}
		f.goals[i] = g
		return g, nil
	}
	return dom.Goal{}, pgx.ErrNoRows
}

func (f *fakeGoalRepo) SetCompleted(_ context.Context, userID, id int64, completed bool) (dom.Goal, error) {
	for i, g := range f.goals {
		if g.ID == id && g.UserID == userID {
			f.goals[i].Completed = completed
			return f.goals[i], nil
		}
	}
	return dom.Goal{}, pgx.ErrNoRows
}

func (f *fakeGoalRepo) Delete(_ context.Context, userID, id int64) (bool, error) {
	for i, g := range f.goals {
		if g.ID == id && g.UserID == userID {
			f.goals = append(f.goals[:i], f.goals[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func TestGoalCreateDefaultsCategory(t *testing.T) {
	svc := NewGoalService(&fakeGoalRepo{})
	ctx := context.Background()

	g, err := svc.Create(ctx, 1, CreateGoalInput{Title: "learn piano"})
	if err != nil {
		t.Fatal(err)
	}
	if g.Category != dom.GoalCustom {
		t.Errorf("category = %q, want %q", g.Category, dom.GoalCustom)
	}

	g2, err := svc.Create(ctx, 1, CreateGoalInput{Title: "marathon", Category: dom.GoalLongTerm})
	if err != nil {
		t.Fatal(err)
	}
	if g2.Category != dom.GoalLongTerm {
		t.Errorf("category = %q", g2.Category)
	}
}

func TestGoalOwnerScoping(t *testing.T) {
	svc := NewGoalService(&fakeGoalRepo{})
	ctx := context.Background()

	g, err := svc.Create(ctx, 1, CreateGoalInput{Title: "mine"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Get(ctx, 2, g.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign get: want ErrNotFound, got %v", err)
	}
	if _, err := svc.SetCompleted(ctx, 2, g.ID, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign complete: want ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, 2, g.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign delete: want ErrNotFound, got %v", err)
	}

	list, err := svc.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("stranger sees %d goals, want 0", len(list))
	}
}

func TestGoalUpdatePartial(t *testing.T) {
	svc := NewGoalService(&fakeGoalRepo{})
	ctx := context.Background()

	target := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g, err := svc.Create(ctx, 1, CreateGoalInput{Title: "save", Description: "emergency fund", TargetDate: &target})
	if err != nil {
		t.Fatal(err)
	}

	title := "save more"
	got, err := svc.Update(ctx, 1, g.ID, UpdateGoalInput{Title: &title})
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "save more" || got.Description != "emergency fund" {
		t.Errorf("partial update touched absent fields: %+v", got)
	}

	blank := " "
	if _, err := svc.Update(ctx, 1, g.ID, UpdateGoalInput{Title: &blank}); !errors.Is(err, ErrValidation) {
		t.Errorf("blank title: want ErrValidation, got %v", err)
	}
}
