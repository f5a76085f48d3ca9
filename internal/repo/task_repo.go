package repo

import (
	"context"
	"time"

	dom "tasktracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskFilter narrows and orders a task query. ActorID nil means an unscoped
// (administrative) query; when set, the visibility predicate
// (owner = actor OR shared) is applied in the WHERE clause, before ordering,
// so any future LIMIT/OFFSET stays correct.
type TaskFilter struct {
	ActorID  *int64
	Status   string
	Priority string
	Date     *time.Time
	Sort     string
}

// TaskCounts summarizes visible tasks by status.
type TaskCounts struct {
	Total      int64
	Complete   int64
	Incomplete int64
}

// TaskRepo provides task persistence.
type TaskRepo interface {
	Query(ctx context.Context, f TaskFilter) ([]dom.Task, error)
	QueryRange(ctx context.Context, actorID *int64, start, end time.Time) ([]dom.Task, error)
	GetByID(ctx context.Context, id int64, actorID *int64) (dom.Task, error)
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	Update(ctx context.Context, id int64, t dom.Task) (dom.Task, error)
	UpdateStatus(ctx context.Context, id int64, status dom.Status) (dom.Task, error)
	SetShared(ctx context.Context, id int64, shared bool) (dom.Task, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Counts(ctx context.Context, actorID *int64) (TaskCounts, error)
}

const taskCols = `id, title, description, status, priority, due_date,
	recurring_type, recurring_time, recurring_end_date, owner_id, is_shared,
	created_at, updated_at`

// PGTaskRepo implements TaskRepo with Postgres.
type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) Query(ctx context.Context, f TaskFilter) ([]dom.Task, error) {
	query := `SELECT ` + taskCols + ` FROM tasks
		WHERE ($1::bigint IS NULL OR owner_id = $1 OR is_shared)
		  AND ($2::text = '' OR status = $2)
		  AND ($3::text = '' OR priority = $3)
		  AND ($4::date IS NULL
		       OR due_date = $4
		       OR (recurring_type IS NOT NULL
		           AND (recurring_end_date IS NULL OR recurring_end_date >= $4)))
		ORDER BY ` + orderClause(f.Sort, f.Date != nil)

	rows, err := r.db.Query(ctx, query, f.ActorID, f.Status, f.Priority, f.Date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// orderClause maps a sort field to its ORDER BY expression. Everything sorts
// descending except due_date; priority is a custom total order (high first)
// with due date as tiebreak. Unrecognized fields fall back to created_at, or
// to due_date when the query carries a date filter.
func orderClause(sort string, dateFiltered bool) string {
	switch sort {
	case "created_at":
		return "created_at DESC"
	case "updated_at":
		return "updated_at DESC"
	case "title":
		return "title DESC"
	case "status":
		return "status DESC"
	case "due_date":
		return "due_date ASC NULLS LAST"
	case "priority":
		return `CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END ASC,
			due_date ASC NULLS LAST`
	default:
		if dateFiltered {
			return "due_date ASC NULLS LAST"
		}
		return "created_at DESC"
	}
}

// QueryRange returns visible tasks due within [start, end] plus recurring
// tasks whose rule is still active at the window start. The caller projects
// recurring tasks onto individual dates.
func (r *PGTaskRepo) QueryRange(ctx context.Context, actorID *int64, start, end time.Time) ([]dom.Task, error) {
	query := `SELECT ` + taskCols + ` FROM tasks
		WHERE ($1::bigint IS NULL OR owner_id = $1 OR is_shared)
		  AND (due_date BETWEEN $2 AND $3
		       OR (recurring_type IS NOT NULL
		           AND (recurring_end_date IS NULL OR recurring_end_date >= $2)))
		ORDER BY due_date ASC NULLS LAST, created_at DESC`

	rows, err := r.db.Query(ctx, query, actorID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// GetByID applies the read-visibility predicate in the lookup itself, so a
// row that exists but is hidden from the actor comes back as pgx.ErrNoRows,
// indistinguishable from an absent row.
func (r *PGTaskRepo) GetByID(ctx context.Context, id int64, actorID *int64) (dom.Task, error) {
	query := `SELECT ` + taskCols + ` FROM tasks
		WHERE id = $1
		  AND ($2::bigint IS NULL OR owner_id IS NULL OR owner_id = $2 OR is_shared)`
	return r.queryRowTask(ctx, query, id, actorID)
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (title, description, status, priority, due_date,
			recurring_type, recurring_time, recurring_end_date, owner_id, is_shared)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + taskCols
	return r.queryRowTask(ctx, query,
		t.Title, t.Description, t.Status, t.Priority, t.DueDate,
		t.RecurringType, t.RecurringTime, t.RecurringEndDate, t.OwnerID, t.IsShared)
}

func (r *PGTaskRepo) Update(ctx context.Context, id int64, t dom.Task) (dom.Task, error) {
	query := `
		UPDATE tasks SET title = $2, description = $3, priority = $4, due_date = $5,
			recurring_type = $6, recurring_time = $7, recurring_end_date = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskCols
	return r.queryRowTask(ctx, query, id,
		t.Title, t.Description, t.Priority, t.DueDate,
		t.RecurringType, t.RecurringTime, t.RecurringEndDate)
}

func (r *PGTaskRepo) UpdateStatus(ctx context.Context, id int64, status dom.Status) (dom.Task, error) {
	query := `
		UPDATE tasks SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskCols
	return r.queryRowTask(ctx, query, id, status)
}

func (r *PGTaskRepo) SetShared(ctx context.Context, id int64, shared bool) (dom.Task, error) {
	query := `
		UPDATE tasks SET is_shared = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskCols
	return r.queryRowTask(ctx, query, id, shared)
}

// Delete removes the row permanently. Returns false when nothing matched.
func (r *PGTaskRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PGTaskRepo) Counts(ctx context.Context, actorID *int64) (TaskCounts, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'complete'),
		       COUNT(*) FILTER (WHERE status = 'incomplete')
		FROM tasks
		WHERE ($1::bigint IS NULL OR owner_id = $1 OR is_shared)`
	var c TaskCounts
	err := r.db.QueryRow(ctx, query, actorID).Scan(&c.Total, &c.Complete, &c.Incomplete)
	return c, err
}

func (r *PGTaskRepo) queryRowTask(ctx context.Context, query string, args ...any) (dom.Task, error) {
	var t dom.Task
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate,
		&t.RecurringType, &t.RecurringTime, &t.RecurringEndDate, &t.OwnerID,
		&t.IsShared, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func scanTasks(rows pgx.Rows) ([]dom.Task, error) {
	var list []dom.Task
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate,
			&t.RecurringType, &t.RecurringTime, &t.RecurringEndDate, &t.OwnerID,
			&t.IsShared, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
