package entity

// ActionKind identifies one of the fixed set of slash-command actions.
type ActionKind string

const (
	ActionShowUser      ActionKind = "show_user"
	ActionShowTeam      ActionKind = "show_team"
	ActionListTeams     ActionKind = "list_teams"
	ActionCreateTeam    ActionKind = "create_team"
	ActionDeleteTeam    ActionKind = "delete_team"
	ActionAddMember     ActionKind = "add_member"
	ActionRemoveMember  ActionKind = "remove_member"
	ActionParsingFailed ActionKind = "parsing_failed"
)

// Action is the structured result of parsing slash-command text.
// Which fields are set depends on Kind:
//   - ShowUser: User (raw mention token, not yet normalized)
//   - ShowTeam, CreateTeam, DeleteTeam: Team
//   - AddMember, RemoveMember: Team and User
//   - ParsingFailed: Reason
//   - ListTeams: none
type Action struct {
	Kind   ActionKind
	Team   string
	User   string
	Reason string
}

// IsParsingFailed returns true if the command text could not be understood.
func (a Action) IsParsingFailed() bool {
	return a.Kind == ActionParsingFailed
}
