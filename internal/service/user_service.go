package service

import (
	"context"
	"errors"
	"strings"

	dom "tasktracker/internal/domain"
	"tasktracker/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// ProfileInput is an explicit partial profile update: nil fields are left
// untouched. Only the fields listed here can be changed.
type ProfileInput struct {
	FullName *string
	Bio      *string
}

// UserService owns credential verification and account management. Password
// hashing stays behind this type.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo) *UserService {
	return &UserService{repo: repo}
}

// ValidateCredentials checks username and password; returns the user if valid.
func (s *UserService) ValidateCredentials(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Register creates a new user with a hashed password.
func (s *UserService) Register(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, username, string(hash))
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return dom.User{}, ErrUsernameTaken
		}
		return dom.User{}, err
	}
	return u, nil
}

// Get returns the user by id.
func (s *UserService) Get(ctx context.Context, id int64) (dom.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

// IsAdmin reports whether the user id belongs to an admin account. Unknown
// ids are simply not admins.
func (s *UserService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.IsAdmin, nil
}

// UpdateProfile applies a partial profile update to the user's own account.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, in ProfileInput) (dom.User, error) {
	patch := repo.ProfilePatch{FullName: in.FullName, Bio: in.Bio}
	if patch.FullName != nil {
		trimmed := strings.TrimSpace(*patch.FullName)
		patch.FullName = &trimmed
	}
	u, err := s.repo.UpdateProfile(ctx, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}
