package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/opsbots/statusbot/internal/domain/entity"
)

// UserRepository provides SQLite implementation of repository.UserRepository.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new SQLite-backed user repository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID retrieves a user by their Slack ID. Returns nil, nil if not found.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, status FROM users WHERE id = ?
	`, id)

	return scanUser(row)
}

// FindOrCreate retrieves a user, creating one with no status if absent.
func (r *UserRepository) FindOrCreate(ctx context.Context, id string) (*entity.User, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id) VALUES (?)
		ON CONFLICT (id) DO NOTHING
	`, id)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return r.FindByID(ctx, id)
}

// UpsertStatus overwrites the user's status, creating the user if absent.
// Last write wins.
func (r *UserRepository) UpsertStatus(ctx context.Context, id, status string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, status) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET status = excluded.status
	`, id, nullString(status))
	if err != nil {
		return fmt.Errorf("upsert status: %w", err)
	}
	return nil
}

// scanUser scans a single user row. Returns nil, nil when the row is absent.
func scanUser(row *sql.Row) (*entity.User, error) {
	user := &entity.User{}
	var status sql.NullString

	if err := row.Scan(&user.ID, &status); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	user.Status = stringFromNull(status)
	return user, nil
}

// scanUsers scans a user result set.
func scanUsers(rows *sql.Rows) ([]*entity.User, error) {
	users := []*entity.User{}
	for rows.Next() {
		user := &entity.User{}
		var status sql.NullString
		if err := rows.Scan(&user.ID, &status); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		user.Status = stringFromNull(status)
		users = append(users, user)
	}
	return users, rows.Err()
}
