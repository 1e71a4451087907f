package repository

import (
	"context"

	"github.com/opsbots/statusbot/internal/domain/entity"
)

// TeamRepository defines the contract for team and membership persistence.
type TeamRepository interface {
	// Create persists a new team with the given name and returns it with its
	// generated ID. Returns ErrAlreadyExists if the name is taken; the
	// uniqueness check is atomic with the insert.
	Create(ctx context.Context, name string) (*entity.Team, error)

	// FindByName retrieves a team by name.
	// Returns nil, nil if not found.
	FindByName(ctx context.Context, name string) (*entity.Team, error)

	// FindAll returns every team, ordered by name.
	FindAll(ctx context.Context) ([]*entity.Team, error)

	// Save updates an existing team (rename).
	// Returns ErrNotFound if the team doesn't exist.
	Save(ctx context.Context, team *entity.Team) error

	// Delete removes a team. Memberships cascade with the team.
	Delete(ctx context.Context, team *entity.Team) error

	// Members returns all users belonging to the named team.
	// Returns empty slice for a team with no members.
	Members(ctx context.Context, teamName string) ([]*entity.User, error)

	// AddMember adds a user to a team. Adding an existing member is a no-op.
	AddMember(ctx context.Context, team *entity.Team, user *entity.User) error

	// RemoveMember removes a user from a team. Removing a non-member is a no-op.
	RemoveMember(ctx context.Context, team *entity.Team, user *entity.User) error
}

// UserRepository defines the contract for user and status persistence.
type UserRepository interface {
	// FindByID retrieves a user by their Slack ID.
	// Returns nil, nil if not found.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindOrCreate retrieves a user, creating one with no status if absent.
	FindOrCreate(ctx context.Context, id string) (*entity.User, error)

	// UpsertStatus overwrites the user's status, creating the user if absent.
	// Last write wins; there is no status history.
	UpsertStatus(ctx context.Context, id, status string) error
}
