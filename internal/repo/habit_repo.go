package repo

import (
	"context"
	"time"

	dom "tasktracker/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HabitRepo provides habit and habit-entry persistence, scoped to the owning
// user.
type HabitRepo interface {
	Create(ctx context.Context, h dom.Habit) (dom.Habit, error)
	List(ctx context.Context, userID int64) ([]dom.Habit, error)
	GetByID(ctx context.Context, userID, id int64) (dom.Habit, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)

	GetEntry(ctx context.Context, habitID int64, date time.Time) (dom.HabitEntry, error)
	UpsertEntry(ctx context.Context, habitID int64, date time.Time, completed bool) (dom.HabitEntry, error)
	Entries(ctx context.Context, habitID int64, start, end time.Time) ([]dom.HabitEntry, error)
	CompletedOn(ctx context.Context, userID int64, date time.Time) (map[int64]bool, error)
}

const habitCols = `id, user_id, name, description, created_at, updated_at`
const entryCols = `id, habit_id, entry_date, completed, created_at`

// PGHabitRepo implements HabitRepo with Postgres.
type PGHabitRepo struct {
	db *pgxpool.Pool
}

func NewPGHabitRepo(db *pgxpool.Pool) *PGHabitRepo {
	return &PGHabitRepo{db: db}
}

func (r *PGHabitRepo) Create(ctx context.Context, h dom.Habit) (dom.Habit, error) {
	query := `
		INSERT INTO habits (user_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING ` + habitCols
	return r.queryRowHabit(ctx, query, h.UserID, h.Name, h.Description)
}

func (r *PGHabitRepo) List(ctx context.Context, userID int64) ([]dom.Habit, error) {
	query := `SELECT ` + habitCols + ` FROM habits WHERE user_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Habit
	for rows.Next() {
		var h dom.Habit
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.Description,
			&h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

func (r *PGHabitRepo) GetByID(ctx context.Context, userID, id int64) (dom.Habit, error) {
	query := `SELECT ` + habitCols + ` FROM habits WHERE id = $1 AND user_id = $2`
	return r.queryRowHabit(ctx, query, id, userID)
}

// Delete removes the habit and, through ON DELETE CASCADE, its entries.
func (r *PGHabitRepo) Delete(ctx context.Context, userID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM habits WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PGHabitRepo) GetEntry(ctx context.Context, habitID int64, date time.Time) (dom.HabitEntry, error) {
	query := `SELECT ` + entryCols + ` FROM habit_entries WHERE habit_id = $1 AND entry_date = $2`
	return r.queryRowEntry(ctx, query, habitID, date)
}

// UpsertEntry writes the completion state for (habit, date). The unique index
// on (habit_id, entry_date) guarantees a single row per day; a second toggle
// flips the existing row instead of inserting another.
func (r *PGHabitRepo) UpsertEntry(ctx context.Context, habitID int64, date time.Time, completed bool) (dom.HabitEntry, error) {
	query := `
		INSERT INTO habit_entries (habit_id, entry_date, completed)
		VALUES ($1, $2, $3)
		ON CONFLICT (habit_id, entry_date) DO UPDATE SET completed = EXCLUDED.completed
		RETURNING ` + entryCols
	return r.queryRowEntry(ctx, query, habitID, date, completed)
}

func (r *PGHabitRepo) Entries(ctx context.Context, habitID int64, start, end time.Time) ([]dom.HabitEntry, error) {
	query := `SELECT ` + entryCols + ` FROM habit_entries
		WHERE habit_id = $1 AND entry_date BETWEEN $2 AND $3
		ORDER BY entry_date ASC`
	rows, err := r.db.Query(ctx, query, habitID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.HabitEntry
	for rows.Next() {
		var e dom.HabitEntry
		if err := rows.Scan(&e.ID, &e.HabitID, &e.EntryDate, &e.Completed, &e.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// CompletedOn returns habit IDs of the user marked completed on the date.
func (r *PGHabitRepo) CompletedOn(ctx context.Context, userID int64, date time.Time) (map[int64]bool, error) {
	query := `
		SELECT e.habit_id FROM habit_entries e
		JOIN habits h ON h.id = e.habit_id
		WHERE h.user_id = $1 AND e.entry_date = $2 AND e.completed`
	rows, err := r.db.Query(ctx, query, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	done := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		done[id] = true
	}
	return done, rows.Err()
}

func (r *PGHabitRepo) queryRowHabit(ctx context.Context, query string, args ...any) (dom.Habit, error) {
	var h dom.Habit
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&h.ID, &h.UserID, &h.Name, &h.Description, &h.CreatedAt, &h.UpdatedAt,
	)
	return h, err
}

func (r *PGHabitRepo) queryRowEntry(ctx context.Context, query string, args ...any) (dom.HabitEntry, error) {
	var e dom.HabitEntry
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&e.ID, &e.HabitID, &e.EntryDate, &e.Completed, &e.CreatedAt,
	)
	return e, err
}
