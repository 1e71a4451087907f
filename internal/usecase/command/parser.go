package command

import (
	"strings"

	"github.com/opsbots/statusbot/internal/domain/entity"
)

// Parse converts the raw text of a slash command into exactly one Action.
// It is total: any input, including empty text, yields a well-defined Action,
// with unparseable input mapped to ActionParsingFailed carrying a
// human-readable reason. Tokens are split on whitespace and matched
// case-sensitively.
//
// Whether a bare token is a user or a team is decided here, by its leading
// sigil ('<' or '@' means user mention), and never revisited during execution.
func Parse(text string) entity.Action {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return parseFailed("Please supply a username, a team name, or a `team` command")
	}

	if tokens[0] == "team" {
		return parseTeamCommand(tokens[1:])
	}

	token := tokens[0]
	if strings.HasPrefix(token, "<") || strings.HasPrefix(token, "@") {
		return entity.Action{Kind: entity.ActionShowUser, User: token}
	}

	return entity.Action{Kind: entity.ActionShowTeam, Team: token}
}

// parseTeamCommand handles everything after the leading "team" token.
func parseTeamCommand(tokens []string) entity.Action {
	if len(tokens) == 0 {
		return parseFailed("Please supply a team name or command")
	}

	switch tokens[0] {
	case "create":
		if len(tokens) < 2 {
			return parseFailed("Please supply a team name to create")
		}
		return entity.Action{Kind: entity.ActionCreateTeam, Team: tokens[1]}

	case "delete":
		if len(tokens) < 2 {
			return parseFailed("Please supply a team name to delete")
		}
		return entity.Action{Kind: entity.ActionDeleteTeam, Team: tokens[1]}

	case "list":
		return entity.Action{Kind: entity.ActionListTeams}
	}

	// team <name> add|del <user>
	name := tokens[0]
	if len(tokens) < 2 {
		return parseFailed("Please supply `add` or `del`")
	}

	switch tokens[1] {
	case "add":
		if len(tokens) < 3 {
			return parseFailed("Please supply a user to add")
		}
		return entity.Action{Kind: entity.ActionAddMember, Team: name, User: tokens[2]}

	case "del":
		if len(tokens) < 3 {
			return parseFailed("Please supply a user to delete")
		}
		return entity.Action{Kind: entity.ActionRemoveMember, Team: name, User: tokens[2]}
	}

	return parseFailed("Please supply `add` or `del`")
}

func parseFailed(reason string) entity.Action {
	return entity.Action{Kind: entity.ActionParsingFailed, Reason: reason}
}

// NormalizeMention extracts the bare Slack user ID from a mention token.
// Slack encodes mentions as "<@U024BE7LH>" or "<@U024BE7LH|display-name>";
// the leading '<'/'@', trailing '>', and anything after '|' are discarded.
// Normalizing an already-bare ID returns it unchanged.
func NormalizeMention(token string) string {
	id := strings.TrimFunc(token, func(r rune) bool {
		return r == '<' || r == '>' || r == '@'
	})
	if i := strings.IndexByte(id, '|'); i >= 0 {
		id = id[:i]
	}
	return id
}
