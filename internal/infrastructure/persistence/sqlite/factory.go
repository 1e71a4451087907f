package sqlite

// Repositories holds all SQLite repository implementations.
type Repositories struct {
	Team *TeamRepository
	User *UserRepository
}

// NewRepositories creates all SQLite repositories with a shared database connection.
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Team: NewTeamRepository(db),
		User: NewUserRepository(db),
	}
}
