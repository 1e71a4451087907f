package command

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/opsbots/statusbot/internal/domain/entity"
	"github.com/opsbots/statusbot/internal/domain/repository"
)

// Executor performs the data operations behind a parsed Action and renders
// the outcome as an ordered sequence of Block Kit blocks. Every outcome,
// including storage failures, becomes a user-facing block; Execute never
// returns an error so the webhook endpoint can always acknowledge with 200.
type Executor struct {
	teams  repository.TeamRepository
	users  repository.UserRepository
	logger Logger
}

// NewExecutor creates a new action executor.
func NewExecutor(teams repository.TeamRepository, users repository.UserRepository, logger Logger) *Executor {
	return &Executor{
		teams:  teams,
		users:  users,
		logger: logger,
	}
}

// Execute dispatches the action and builds the response blocks.
func (e *Executor) Execute(ctx context.Context, action entity.Action) []slack.Block {
	switch action.Kind {
	case entity.ActionShowUser:
		return e.showUser(ctx, action.User)
	case entity.ActionShowTeam:
		return e.showTeam(ctx, action.Team)
	case entity.ActionListTeams:
		return e.listTeams(ctx)
	case entity.ActionCreateTeam:
		return e.createTeam(ctx, action.Team)
	case entity.ActionDeleteTeam:
		return e.deleteTeam(ctx, action.Team)
	case entity.ActionAddMember:
		return e.addMember(ctx, action.Team, action.User)
	case entity.ActionRemoveMember:
		return e.removeMember(ctx, action.Team, action.User)
	case entity.ActionParsingFailed:
		return e.parsingFailed(action.Reason)
	}

	e.logger.Error("unknown action kind", "kind", action.Kind)
	return e.parsingFailed("Please supply a username, a team name, or a `team` command")
}

// showUser reports a single user's current status.
func (e *Executor) showUser(ctx context.Context, token string) []slack.Block {
	id := NormalizeMention(token)

	user, err := e.users.FindByID(ctx, id)
	if err != nil {
		e.logger.Error("failed to fetch user", "user_id", id, "error", err)
		return []slack.Block{sectionBlock(fmt.Sprintf("Failed to look up <@%s>, try again later", id))}
	}
	if user == nil {
		return []slack.Block{sectionBlock(fmt.Sprintf("<@%s> not found", id))}
	}

	return []slack.Block{sectionBlock(userStatusLine(user))}
}

// showTeam reports the status of every member of a team.
func (e *Executor) showTeam(ctx context.Context, name string) []slack.Block {
	team, err := e.teams.FindByName(ctx, name)
	if err != nil {
		e.logger.Error("failed to fetch team", "team", name, "error", err)
		return []slack.Block{sectionBlock(fmt.Sprintf("Failed to look up team %s, try again later", name))}
	}
	if team == nil {
		return []slack.Block{sectionBlock(fmt.Sprintf("Team %s not found", name))}
	}

	members, err := e.teams.Members(ctx, team.Name)
	if err != nil {
		e.logger.Error("failed to list team members", "team", name, "error", err)
		return []slack.Block{sectionBlock(fmt.Sprintf("Failed to load members of team %s, try again later", name))}
	}

	blocks := []slack.Block{
		headerBlock(fmt.Sprintf("%s Status", team.Name)),
		slack.NewDividerBlock(),
	}
	// Members are already loaded; format them directly instead of refetching.
	for _, member := range members {
		blocks = append(blocks, sectionBlock(userStatusLine(member)))
	}
	return blocks
}

// listTeams renders one bullet line per known team.
func (e *Executor) listTeams(ctx context.Context) []slack.Block {
	teams, err := e.teams.FindAll(ctx)
	if err != nil {
		e.logger.Error("failed to list teams", "error", err)
		return []slack.Block{sectionBlock("Failed to list teams, try again later")}
	}

	blocks := []slack.Block{
		headerBlock("Teams"),
		slack.NewDividerBlock(),
	}
	for _, team := range teams {
		blocks = append(blocks, sectionBlock(fmt.Sprintf("• %s", team.Name)))
	}
	return blocks
}

func (e *Executor) createTeam(ctx context.Context, name string) []slack.Block {
	if _, err := e.teams.Create(ctx, name); err != nil {
		e.logger.Warn("failed to create team", "team", name, "error", err)
		return []slack.Block{sectionBlock(fmt.Sprintf("Failed to create team %s, perhaps it already exists?", name))}
	}
	return []slack.Block{sectionBlock(fmt.Sprintf("Team %s created", name))}
}

func (e *Executor) deleteTeam(ctx context.Context, name string) []slack.Block {
	team, err := e.teams.FindByName(ctx, name)
	if err != nil {
		e.logger.Error("failed to fetch team", "team", name, "error", err)
		return []slack.Block{sectionBlock(fmt.Sprintf("Failed to look up team %s, try again later", name))}
	}
	if team == nil {
		return []slack.Block{sectionBlock(fmt.Sprintf("Team %s not found", name))}
	}

	if err := e.teams.Delete(ctx, team); err != nil {
		e.logger.Error("failed to delete team", "team", name, "error", err)
		return []slack.Block{sectionBlock(fmt.Sprintf("Failed to delete team %s, try again later", name))}
	}
	return []slack.Block{sectionBlock(fmt.Sprintf("Team %s deleted", name))}
}

func (e *Executor) addMember(ctx context.Context, teamName, token string) []slack.Block {
	team, err := e.teams.FindByName(ctx, teamName)
	if err != nil {
		e.logger.Error("failed to fetch team", "team", teamName, "error", err)
		return []slack.Block{sectionBlock(fmt.Sprintf("Failed to look up team %s, try again later", teamName))}
	}
	if team == nil {
		return []slack.Block{sectionBlock(fmt.Sprintf("Team %s not found", teamName))}
	}

	id := NormalizeMention(token)
	user, err := e.users.FindOrCreate(ctx, id)
	if err != nil {
		e.logger.Error("failed to load user", "user_id", id, "error", err)
		return []slack.Block{sectionBlock(fmt.Sprintf("Failed to load user <@%s>", id))}
	}

	if err := e.teams.AddMember(ctx, team, user); err != nil {
		e.logger.Error("failed to add member", "team", teamName, "user_id", id, "error", err)
		return []slack.Block{sectionBlock(fmt.Sprintf("Failed to add <@%s> to team %s", id, teamName))}
	}
	return []slack.Block{sectionBlock(fmt.Sprintf("Added <@%s> to team %s", id, teamName))}
}

func (e *Executor) removeMember(ctx context.Context, teamName, token string) []slack.Block {
	team, err := e.teams.FindByName(ctx, teamName)
	if err != nil {
		e.logger.Error("failed to fetch team", "team", teamName, "error", err)
		return []slack.Block{sectionBlock(fmt.Sprintf("Failed to look up team %s, try again later", teamName))}
	}
	if team == nil {
		return []slack.Block{sectionBlock(fmt.Sprintf("Team %s not found", teamName))}
	}

	id := NormalizeMention(token)
	user, err := e.users.FindByID(ctx, id)
	if err != nil {
		e.logger.Error("failed to fetch user", "user_id", id, "error", err)
		return []slack.Block{sectionBlock(fmt.Sprintf("Failed to look up <@%s>, try again later", id))}
	}
	if user == nil {
		return []slack.Block{sectionBlock(fmt.Sprintf("User <@%s> not found", id))}
	}

	if err := e.teams.RemoveMember(ctx, team, user); err != nil {
		e.logger.Error("failed to remove member", "team", teamName, "user_id", id, "error", err)
		return []slack.Block{sectionBlock(fmt.Sprintf("Failed to delete <@%s> from team %s", id, teamName))}
	}
	return []slack.Block{sectionBlock(fmt.Sprintf("Removed <@%s> from team %s", id, teamName))}
}

// parsingFailed renders the fixed invalid-command header followed by the
// reason carried by the parser.
func (e *Executor) parsingFailed(reason string) []slack.Block {
	return []slack.Block{
		headerBlock("Invalid command"),
		slack.NewDividerBlock(),
		sectionBlock(reason),
	}
}

// userStatusLine formats one user's status for display. Shared between
// showUser and showTeam so both render members identically.
func userStatusLine(user *entity.User) string {
	if user.HasStatus() {
		return fmt.Sprintf("<@%s>: %s", user.ID, user.Status)
	}
	return fmt.Sprintf("<@%s> has not set a status", user.ID)
}

func headerBlock(text string) *slack.HeaderBlock {
	return slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, text, false, false),
	)
}

func sectionBlock(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, text, false, false),
		nil, nil,
	)
}
