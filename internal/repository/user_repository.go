package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fleetstack/fleetpoint/internal/domain"
)

type userRepository struct {
	db queryer
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (username, password_hash, name, email, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		u.Username, u.PasswordHash, u.Name, u.Email, u.Active).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, name, email, active, created_at
		FROM users
		WHERE id = $1
	`
	var u domain.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username,
		&u.PasswordHash, &u.Name, &u.Email, &u.Active, &u.CreatedAt)
	if err != nil {
		return nil, mapScanErr(err)
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, name, email, active, created_at
		FROM users
		WHERE username = $1
	`
	var u domain.User
	err := r.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username,
		&u.PasswordHash, &u.Name, &u.Email, &u.Active, &u.CreatedAt)
	if err != nil {
		return nil, mapScanErr(err)
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users
		SET username = $1, password_hash = $2, name = $3, email = $4, active = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		u.Username, u.PasswordHash, u.Name, u.Email, u.Active, u.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireAffected(res)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireAffected(res)
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `
		SELECT id, username, password_hash, name, email, active, created_at
		FROM users
		ORDER BY username
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash,
			&u.Name, &u.Email, &u.Active, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return users, nil
}
