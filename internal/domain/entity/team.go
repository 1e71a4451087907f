package entity

// Team is a named group of users whose statuses can be queried together.
type Team struct {
	// ID is the surrogate key generated by the storage backend.
	ID int64

	// Name is the user-chosen lookup key. Unique across teams.
	Name string
}
