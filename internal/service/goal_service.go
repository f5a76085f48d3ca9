package service

import (
	"context"
	"errors"
	"strings"
	"time"

	dom "tasktracker/internal/domain"
	"tasktracker/internal/repo"

	"github.com/jackc/pgx/v5"
)

// CreateGoalInput is the draft for a new goal. An empty category is stored as
// "custom"; unrecognized categories are kept as given.
type CreateGoalInput struct {
	Title       string
	Description string
	Category    string
	TargetDate  *time.Time
}

// UpdateGoalInput is an explicit partial update for a goal.
type UpdateGoalInput struct {
	Title       *string
	Description *string
	Category    *string
	TargetDate  *time.Time
}

// GoalService owns goal CRUD. Goals are strictly owner-scoped.
type GoalService struct {
	repo repo.GoalRepo
}

func NewGoalService(r repo.GoalRepo) *GoalService {
	return &GoalService{repo: r}
}

func (s *GoalService) Create(ctx context.Context, actorID int64, in CreateGoalInput) (dom.Goal, error) {
	title := strings.TrimSpace(in.Title)
	if err := validateContent(title, strings.TrimSpace(in.Description)); err != nil {
		return dom.Goal{}, err
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = dom.GoalCustom
	}
	return s.repo.Create(ctx, dom.Goal{
		UserID:      actorID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Category:    category,
		TargetDate:  in.TargetDate,
	})
}

func (s *GoalService) List(ctx context.Context, actorID int64) ([]dom.Goal, error) {
	return s.repo.List(ctx, actorID)
}

func (s *GoalService) Get(ctx context.Context, actorID, id int64) (dom.Goal, error) {
	g, err := s.repo.GetByID(ctx, actorID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Goal{}, ErrNotFound
		}
		return dom.Goal{}, err
	}
	return g, nil
}

func (s *GoalService) Update(ctx context.Context, actorID, id int64, in UpdateGoalInput) (dom.Goal, error) {
	existing, err := s.Get(ctx, actorID, id)
	if err != nil {
		return dom.Goal{}, err
	}
	title, desc := existing.Title, existing.Description
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
		in.Title = &title
	}
	if in.Description != nil {
		desc = strings.TrimSpace(*in.Description)
		in.Description = &desc
	}
	if err := validateContent(title, desc); err != nil {
		return dom.Goal{}, err
	}
	g, err := s.repo.Update(ctx, actorID, id, repo.GoalPatch{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		TargetDate:  in.TargetDate,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Goal{}, ErrNotFound
		}
		return dom.Goal{}, err
	}
	return g, nil
}

func (s *GoalService) SetCompleted(ctx context.Context, actorID, id int64, completed bool) (dom.Goal, error) {
	g, err := s.repo.SetCompleted(ctx, actorID, id, completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Goal{}, ErrNotFound
		}
		return dom.Goal{}, err
	}
	return g, nil
}

func (s *GoalService) Delete(ctx context.Context, actorID, id int64) error {
	ok, err := s.repo.Delete(ctx, actorID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
