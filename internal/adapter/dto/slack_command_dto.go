package dto

// SlackCommandDTO represents a parsed Slack slash command.
type SlackCommandDTO struct {
	Command     string // The command name (e.g., "/location")
	Text        string // The text after the command
	UserID      string // The user who invoked the command
	UserName    string // The user's display name (being phased out by Slack)
	ChannelID   string // The channel where the command was invoked
	ChannelName string // The channel's display name
	TeamID      string // The workspace/team ID
	ResponseURL string // URL for delayed responses
	TriggerID   string // Trigger ID for opening modals
}
