package repo

import (
	"context"

	dom "tasktracker/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfilePatch is an explicit partial update: each field is applied only when
// non-nil. Fields outside this struct cannot be touched through a profile
// update.
type ProfilePatch struct {
	FullName *string
	Bio      *string
}

// UserRepo provides user persistence.
type UserRepo interface {
	GetByID(ctx context.Context, id int64) (dom.User, error)
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	Create(ctx context.Context, username, passwordHash string) (dom.User, error)
	UpdateProfile(ctx context.Context, id int64, p ProfilePatch) (dom.User, error)
}

const userCols = `id, username, password_hash, is_admin, full_name, bio, created_at, updated_at`

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

func (r *PGUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	return r.queryRowUser(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id)
}

func (r *PGUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	return r.queryRowUser(ctx, `SELECT `+userCols+` FROM users WHERE username = $1`, username)
}

func (r *PGUserRepo) Create(ctx context.Context, username, passwordHash string) (dom.User, error) {
	query := `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING ` + userCols
	return r.queryRowUser(ctx, query, username, passwordHash)
}

func (r *PGUserRepo) UpdateProfile(ctx context.Context, id int64, p ProfilePatch) (dom.User, error) {
	query := `
		UPDATE users SET
			full_name = COALESCE($2, full_name),
			bio = COALESCE($3, bio),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userCols
	return r.queryRowUser(ctx, query, id, p.FullName, p.Bio)
}

func (r *PGUserRepo) queryRowUser(ctx context.Context, query string, args ...any) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.FullName, &u.Bio,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}
