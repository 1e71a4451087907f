package mysql

// Repositories holds all MySQL repository implementations.
type Repositories struct {
	Team *TeamRepository
	User *UserRepository
}

// NewRepositories creates all MySQL repositories with a shared database connection.
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Team: NewTeamRepository(db),
		User: NewUserRepository(db),
	}
}
