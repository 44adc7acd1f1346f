package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"clinic-booking-api/internal/auth"
	"clinic-booking-api/internal/model"
)

// fakeHash is compared against on the unknown-username login path so
// that path burns a bcrypt verification like the wrong-password path.
const fakeHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// CreateUser hashes the password and inserts a new user. A username or
// email collision, including one lost to a concurrent insert, returns
// ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, username, email, password string, isAdmin bool) (*model.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("username, email and password are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	}
	err = s.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, is_admin)
		 VALUES ($1,$2,$3,$4)
		 RETURNING id, created_at`,
		u.Username, u.Email, u.PasswordHash, u.IsAdmin,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userBy(ctx, `id = $1`, id)
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.userBy(ctx, `username = $1`, username)
}

func (s *Store) userBy(ctx context.Context, cond string, arg any) (*model.User, error) {
	u := &model.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, is_admin, created_at
		 FROM users WHERE `+cond, arg,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// VerifyLogin checks a username/password pair. Unknown usernames and
// wrong passwords both fail with auth.ErrInvalidCredentials.
func (s *Store) VerifyLogin(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.UserByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		auth.CheckPassword(fakeHash, password)
		return nil, auth.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, auth.ErrInvalidCredentials
	}
	return u, nil
}

// EnsureAdmin creates the bootstrap admin account unless the username
// is already taken.
func (s *Store) EnsureAdmin(ctx context.Context, username, email, password string) error {
	_, err := s.CreateUser(ctx, username, email, password, true)
	if errors.Is(err, ErrDuplicate) {
		return nil
	}
	return err
}
