package repo

import (
	"context"
	"time"

	dom "tasktracker/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GoalPatch is an explicit partial update for a goal.
type GoalPatch struct {
	Title       *string
	Description *string
	Category    *string
	TargetDate  *time.Time
}

// GoalRepo provides goal persistence. Every operation is scoped to the owning
// user; goals have no sharing concept.
type GoalRepo interface {
	Create(ctx context.Context, g dom.Goal) (dom.Goal, error)
	List(ctx context.Context, userID int64) ([]dom.Goal, error)
	GetByID(ctx context.Context, userID, id int64) (dom.Goal, error)
	Update(ctx context.Context, userID, id int64, p GoalPatch) (dom.Goal, error)
	SetCompleted(ctx context.Context, userID, id int64, completed bool) (dom.Goal, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

const goalCols = `id, user_id, title, description, category, target_date, completed, created_at, updated_at`

// PGGoalRepo implements GoalRepo with Postgres.
type PGGoalRepo struct {
	db *pgxpool.Pool
}

func NewPGGoalRepo(db *pgxpool.Pool) *PGGoalRepo {
	return &PGGoalRepo{db: db}
}

func (r *PGGoalRepo) Create(ctx context.Context, g dom.Goal) (dom.Goal, error) {
	query := `
		INSERT INTO goals (user_id, title, description, category, target_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + goalCols
	return r.queryRowGoal(ctx, query, g.UserID, g.Title, g.Description, g.Category, g.TargetDate)
}

func (r *PGGoalRepo) List(ctx context.Context, userID int64) ([]dom.Goal, error) {
	query := `SELECT ` + goalCols + ` FROM goals
		WHERE user_id = $1
		ORDER BY target_date ASC NULLS LAST, created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Goal
	for rows.Next() {
		var g dom.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category,
			&g.TargetDate, &g.Completed, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

func (r *PGGoalRepo) GetByID(ctx context.Context, userID, id int64) (dom.Goal, error) {
	query := `SELECT ` + goalCols + ` FROM goals WHERE id = $1 AND user_id = $2`
	return r.queryRowGoal(ctx, query, id, userID)
}

func (r *PGGoalRepo) Update(ctx context.Context, userID, id int64, p GoalPatch) (dom.Goal, error) {
	query := `
		UPDATE goals SET
			title = COALESCE($3, title),
			description = COALESCE($4, description),
			category = COALESCE($5, category),
			target_date = COALESCE($6, target_date),
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + goalCols
	return r.queryRowGoal(ctx, query, id, userID, p.Title, p.Description, p.Category, p.TargetDate)
}

func (r *PGGoalRepo) SetCompleted(ctx context.Context, userID, id int64, completed bool) (dom.Goal, error) {
	query := `
		UPDATE goals SET completed = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + goalCols
	return r.queryRowGoal(ctx, query, id, userID, completed)
}

func (r *PGGoalRepo) Delete(ctx context.Context, userID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PGGoalRepo) queryRowGoal(ctx context.Context, query string, args ...any) (dom.Goal, error) {
	var g dom.Goal
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category,
		&g.TargetDate, &g.Completed, &g.CreatedAt, &g.UpdatedAt,
	)
	return g, err
}
