package entity

// SlackEvent represents an event delivered by Slack's Events API.
type SlackEvent struct {
	// Event type (e.g. "app_mention", "message")
	Type string

	// Context
	UserID    string
	ChannelID string

	// Message content
	Text string

	// Timestamp of the triggering message, used to anchor reactions.
	Timestamp string

	// Metadata
	EventID string
}

// Event types the bot is subscribed to.
const (
	EventAppMention = "app_mention"
	EventMessage    = "message"
)

// IsAppMention returns true if this is an app_mention event.
func (e *SlackEvent) IsAppMention() bool {
	return e.Type == EventAppMention
}

// IsMessage returns true if this is a passive channel message event.
func (e *SlackEvent) IsMessage() bool {
	return e.Type == EventMessage
}
