package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsbots/statusbot/internal/domain/repository"
)

func setupMemoryTest(t *testing.T) (*TeamRepository, *UserRepository) {
	t.Helper()

	users := NewUserRepository()
	return NewTeamRepository(users), users
}

func TestTeamRepository_CreateAndFind(t *testing.T) {
	teams, _ := setupMemoryTest(t)
	ctx := context.Background()

	t.Run("create assigns incrementing IDs", func(t *testing.T) {
		first, err := teams.Create(ctx, "Senate")
		require.NoError(t, err)
		second, err := teams.Create(ctx, "Congress")
		require.NoError(t, err)

		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		_, err := teams.Create(ctx, "Senate")
		assert.ErrorIs(t, err, repository.ErrAlreadyExists)
	})

	t.Run("missing team returns nil without error", func(t *testing.T) {
		team, err := teams.FindByName(ctx, "Ghost")
		require.NoError(t, err)
		assert.Nil(t, team)
	})

	t.Run("find all ordered by name", func(t *testing.T) {
		all, err := teams.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Congress", all[0].Name)
		assert.Equal(t, "Senate", all[1].Name)
	})
}

func TestTeamRepository_MembershipLifecycle(t *testing.T) {
	teams, users := setupMemoryTest(t)
	ctx := context.Background()

	team, err := teams.Create(ctx, "Senate")
	require.NoError(t, err)
	user, err := users.FindOrCreate(ctx, "U1")
	require.NoError(t, err)

	require.NoError(t, teams.AddMember(ctx, team, user))
	require.NoError(t, teams.AddMember(ctx, team, user)) // idempotent

	members, err := teams.Members(ctx, "Senate")
	require.NoError(t, err)
	assert.Len(t, members, 1)

	require.NoError(t, teams.RemoveMember(ctx, team, user))
	require.NoError(t, teams.RemoveMember(ctx, team, user)) // no-op

	members, err = teams.Members(ctx, "Senate")
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestTeamRepository_DeleteCascades(t *testing.T) {
	teams, users := setupMemoryTest(t)
	ctx := context.Background()

	team, err := teams.Create(ctx, "Senate")
	require.NoError(t, err)
	user, err := users.FindOrCreate(ctx, "U1")
	require.NoError(t, err)
	require.NoError(t, teams.AddMember(ctx, team, user))

	require.NoError(t, teams.Delete(ctx, team))

	found, err := teams.FindByName(ctx, "Senate")
	require.NoError(t, err)
	assert.Nil(t, found)

	// The user record outlives the team.
	stored, err := users.FindByID(ctx, "U1")
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestTeamRepository_ConcurrentCreate(t *testing.T) {
	teams, _ := setupMemoryTest(t)
	ctx := context.Background()

	const workers = 16

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = teams.Create(ctx, fmt.Sprintf("team-%d", n%4))
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, repository.ErrAlreadyExists)
		}
	}
	assert.Equal(t, 4, created)
}
