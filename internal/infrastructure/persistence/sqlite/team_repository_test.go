package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsbots/statusbot/internal/domain/entity"
	"github.com/opsbots/statusbot/internal/domain/repository"
)

func setupTeamTest(t *testing.T) (*DB, *Repositories) {
	t.Helper()

	// A shared in-memory DSN would leak state between tests, so each test
	// gets its own file.
	db, err := NewDB(filepath.Join(t.TempDir(), "statusbot_test.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	err = db.Migrate(context.Background())
	require.NoError(t, err)

	return db, NewRepositories(db)
}

func TestTeamRepository_Create(t *testing.T) {
	_, repos := setupTeamTest(t)
	ctx := context.Background()

	t.Run("create assigns an ID", func(t *testing.T) {
		team, err := repos.Team.Create(ctx, "Senate")
		require.NoError(t, err)
		require.NotNil(t, team)

		assert.NotZero(t, team.ID)
		assert.Equal(t, "Senate", team.Name)
	})

	t.Run("duplicate name is rejected atomically", func(t *testing.T) {
		team, err := repos.Team.Create(ctx, "Senate")
		assert.ErrorIs(t, err, repository.ErrAlreadyExists)
		assert.Nil(t, team)
	})
}

func TestTeamRepository_FindByName(t *testing.T) {
	_, repos := setupTeamTest(t)
	ctx := context.Background()

	created, err := repos.Team.Create(ctx, "Senate")
	require.NoError(t, err)

	t.Run("find existing team", func(t *testing.T) {
		team, err := repos.Team.FindByName(ctx, "Senate")
		require.NoError(t, err)
		require.NotNil(t, team)
		assert.Equal(t, created.ID, team.ID)
	})

	t.Run("missing team returns nil without error", func(t *testing.T) {
		team, err := repos.Team.FindByName(ctx, "Ghost")
		require.NoError(t, err)
		assert.Nil(t, team)
	})
}

func TestTeamRepository_FindAll(t *testing.T) {
	_, repos := setupTeamTest(t)
	ctx := context.Background()

	t.Run("empty database yields empty slice", func(t *testing.T) {
		teams, err := repos.Team.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, teams)
	})

	t.Run("teams come back ordered by name", func(t *testing.T) {
		_, err := repos.Team.Create(ctx, "Senate")
		require.NoError(t, err)
		_, err = repos.Team.Create(ctx, "Congress")
		require.NoError(t, err)

		teams, err := repos.Team.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, teams, 2)
		assert.Equal(t, "Congress", teams[0].Name)
		assert.Equal(t, "Senate", teams[1].Name)
	})
}

func TestTeamRepository_Save(t *testing.T) {
	_, repos := setupTeamTest(t)
	ctx := context.Background()

	t.Run("rename existing team", func(t *testing.T) {
		team, err := repos.Team.Create(ctx, "Senate")
		require.NoError(t, err)

		team.Name = "Congress"
		require.NoError(t, repos.Team.Save(ctx, team))

		found, err := repos.Team.FindByName(ctx, "Congress")
		require.NoError(t, err)
		require.NotNil(t, found)

		old, err := repos.Team.FindByName(ctx, "Senate")
		require.NoError(t, err)
		assert.Nil(t, old)
	})

	t.Run("saving an unknown team fails", func(t *testing.T) {
		ghost := *mustCreate(t, repos, "Temp")
		require.NoError(t, repos.Team.Delete(ctx, &ghost))

		ghost.Name = "Renamed"
		err := repos.Team.Save(ctx, &ghost)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestTeamRepository_Delete(t *testing.T) {
	_, repos := setupTeamTest(t)
	ctx := context.Background()

	team, err := repos.Team.Create(ctx, "Senate")
	require.NoError(t, err)

	user, err := repos.User.FindOrCreate(ctx, "U1")
	require.NoError(t, err)
	require.NoError(t, repos.Team.AddMember(ctx, team, user))

	require.NoError(t, repos.Team.Delete(ctx, team))

	t.Run("team is gone", func(t *testing.T) {
		found, err := repos.Team.FindByName(ctx, "Senate")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("memberships cascade", func(t *testing.T) {
		members, err := repos.Team.Members(ctx, "Senate")
		require.NoError(t, err)
		assert.Empty(t, members)
	})

	t.Run("user record survives the cascade", func(t *testing.T) {
		found, err := repos.User.FindByID(ctx, "U1")
		require.NoError(t, err)
		assert.NotNil(t, found)
	})
}

func TestTeamRepository_Membership(t *testing.T) {
	_, repos := setupTeamTest(t)
	ctx := context.Background()

	team, err := repos.Team.Create(ctx, "Senate")
	require.NoError(t, err)
	user, err := repos.User.FindOrCreate(ctx, "U1")
	require.NoError(t, err)

	t.Run("add member", func(t *testing.T) {
		require.NoError(t, repos.Team.AddMember(ctx, team, user))

		members, err := repos.Team.Members(ctx, "Senate")
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, "U1", members[0].ID)
	})

	t.Run("adding an existing member is a no-op", func(t *testing.T) {
		require.NoError(t, repos.Team.AddMember(ctx, team, user))

		members, err := repos.Team.Members(ctx, "Senate")
		require.NoError(t, err)
		assert.Len(t, members, 1)
	})

	t.Run("remove member", func(t *testing.T) {
		require.NoError(t, repos.Team.RemoveMember(ctx, team, user))

		members, err := repos.Team.Members(ctx, "Senate")
		require.NoError(t, err)
		assert.Empty(t, members)
	})

	t.Run("removing a non-member is a no-op", func(t *testing.T) {
		require.NoError(t, repos.Team.RemoveMember(ctx, team, user))
	})

	t.Run("members of an unknown team is empty", func(t *testing.T) {
		members, err := repos.Team.Members(ctx, "Ghost")
		require.NoError(t, err)
		assert.Empty(t, members)
	})
}

func mustCreate(t *testing.T, repos *Repositories, name string) *entity.Team {
	t.Helper()

	team, err := repos.Team.Create(context.Background(), name)
	require.NoError(t, err)
	return team
}
