package entity

// User is a Slack user tracked by the bot.
type User struct {
	// ID is the opaque identifier assigned by Slack (e.g. "U024BE7LH").
	ID string

	// Status is the last self-reported status ("office", "telework", ...).
	// Empty means the user has never reported one.
	Status string
}

// HasStatus returns true if the user has ever reported a status.
func (u *User) HasStatus() bool {
	return u.Status != ""
}
