package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/opsbots/statusbot/internal/domain/entity"
	"github.com/opsbots/statusbot/internal/domain/repository"
)

// TeamRepository provides SQLite implementation of repository.TeamRepository.
type TeamRepository struct {
	db *DB
}

// NewTeamRepository creates a new SQLite-backed team repository.
func NewTeamRepository(db *DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create persists a new team. The UNIQUE constraint on name makes the
// existence check atomic with the insert.
func (r *TeamRepository) Create(ctx context.Context, name string) (*entity.Team, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO teams (name) VALUES (?)
	`, name)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, repository.ErrAlreadyExists
		}
		return nil, fmt.Errorf("insert team: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("team insert id: %w", err)
	}

	return &entity.Team{ID: id, Name: name}, nil
}

// FindByName retrieves a team by name. Returns nil, nil if not found.
func (r *TeamRepository) FindByName(ctx context.Context, name string) (*entity.Team, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name FROM teams WHERE name = ?
	`, name)

	team := &entity.Team{}
	if err := row.Scan(&team.ID, &team.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan team: %w", err)
	}

	return team, nil
}

// FindAll returns every team, ordered by name.
func (r *TeamRepository) FindAll(ctx context.Context) ([]*entity.Team, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name FROM teams ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	teams := []*entity.Team{}
	for rows.Next() {
		team := &entity.Team{}
		if err := rows.Scan(&team.ID, &team.Name); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// Save updates an existing team.
func (r *TeamRepository) Save(ctx context.Context, team *entity.Team) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE teams SET name = ? WHERE id = ?
	`, team.Name, team.ID)
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("team rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a team. Memberships cascade via the foreign key.
func (r *TeamRepository) Delete(ctx context.Context, team *entity.Team) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM teams WHERE id = ?
	`, team.ID)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

// Members returns all users belonging to the named team, ordered by user ID.
func (r *TeamRepository) Members(ctx context.Context, teamName string) ([]*entity.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.status
		FROM users u
		JOIN members m ON m.user_id = u.id
		JOIN teams t ON t.id = m.team_id
		WHERE t.name = ?
		ORDER BY u.id
	`, teamName)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// AddMember adds a user to a team. Adding an existing member is a no-op.
func (r *TeamRepository) AddMember(ctx context.Context, team *entity.Team, user *entity.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO members (user_id, team_id) VALUES (?, ?)
		ON CONFLICT (user_id, team_id) DO NOTHING
	`, user.ID, team.ID)
	if err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// RemoveMember removes a user from a team. Removing a non-member is a no-op.
func (r *TeamRepository) RemoveMember(ctx context.Context, team *entity.Team, user *entity.User) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM members WHERE user_id = ? AND team_id = ?
	`, user.ID, team.ID)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}
