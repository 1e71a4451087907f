package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/opsbots/statusbot/internal/domain/entity"
	"github.com/opsbots/statusbot/internal/domain/repository"
)

// TeamRepository provides an in-memory implementation of repository.TeamRepository.
// Thread-safe for concurrent access.
type TeamRepository struct {
	mu      sync.RWMutex
	users   *UserRepository
	teams   map[string]*entity.Team       // name -> team
	members map[int64]map[string]struct{} // team ID -> set of user IDs
	nextID  int64
}

// NewTeamRepository creates a new in-memory team repository. Member lookups
// resolve user records through the given user repository.
func NewTeamRepository(users *UserRepository) *TeamRepository {
	return &TeamRepository{
		users:   users,
		teams:   make(map[string]*entity.Team),
		members: make(map[int64]map[string]struct{}),
		nextID:  1,
	}
}

// Create persists a new team, failing if the name is taken.
func (r *TeamRepository) Create(ctx context.Context, name string) (*entity.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.teams[name]; exists {
		return nil, repository.ErrAlreadyExists
	}

	team := &entity.Team{ID: r.nextID, Name: name}
	r.nextID++
	r.teams[name] = team
	r.members[team.ID] = make(map[string]struct{})

	teamCopy := *team
	return &teamCopy, nil
}

// FindByName retrieves a team by name. Returns nil, nil if not found.
func (r *TeamRepository) FindByName(ctx context.Context, name string) (*entity.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	team, ok := r.teams[name]
	if !ok {
		return nil, nil
	}

	teamCopy := *team
	return &teamCopy, nil
}

// FindAll returns every team, ordered by name.
func (r *TeamRepository) FindAll(ctx context.Context) ([]*entity.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := make([]*entity.Team, 0, len(r.teams))
	for _, team := range r.teams {
		teamCopy := *team
		teams = append(teams, &teamCopy)
	}

	sort.Slice(teams, func(i, j int) bool {
		return teams[i].Name < teams[j].Name
	})

	return teams, nil
}

// Save updates an existing team.
func (r *TeamRepository) Save(ctx context.Context, team *entity.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var existing *entity.Team
	for _, t := range r.teams {
		if t.ID == team.ID {
			existing = t
			break
		}
	}
	if existing == nil {
		return repository.ErrNotFound
	}

	delete(r.teams, existing.Name)
	teamCopy := *team
	r.teams[team.Name] = &teamCopy

	return nil
}

// Delete removes a team and its memberships.
func (r *TeamRepository) Delete(ctx context.Context, team *entity.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.teams[team.Name]
	if !ok {
		return nil
	}

	delete(r.members, existing.ID)
	delete(r.teams, team.Name)
	return nil
}

// Members returns all users belonging to the named team.
func (r *TeamRepository) Members(ctx context.Context, teamName string) ([]*entity.User, error) {
	r.mu.RLock()

	team, ok := r.teams[teamName]
	if !ok {
		r.mu.RUnlock()
		return []*entity.User{}, nil
	}

	ids := make([]string, 0, len(r.members[team.ID]))
	for id := range r.members[team.ID] {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Strings(ids)

	users := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		user, err := r.users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if user != nil {
			users = append(users, user)
		}
	}

	return users, nil
}

// AddMember adds a user to a team. Adding an existing member is a no-op.
func (r *TeamRepository) AddMember(ctx context.Context, team *entity.Team, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.members[team.ID]
	if !ok {
		return repository.ErrNotFound
	}

	set[user.ID] = struct{}{}
	return nil
}

// RemoveMember removes a user from a team. Removing a non-member is a no-op.
func (r *TeamRepository) RemoveMember(ctx context.Context, team *entity.Team, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if set, ok := r.members[team.ID]; ok {
		delete(set, user.ID)
	}
	return nil
}
