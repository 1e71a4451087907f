package command

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsbots/statusbot/internal/domain/entity"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want entity.Action
	}{
		{
			name: "empty text fails with usage hint",
			text: "",
			want: entity.Action{Kind: entity.ActionParsingFailed, Reason: "Please supply a username, a team name, or a `team` command"},
		},
		{
			name: "whitespace only fails",
			text: "   \t  ",
			want: entity.Action{Kind: entity.ActionParsingFailed, Reason: "Please supply a username, a team name, or a `team` command"},
		},
		{
			name: "encoded mention shows user",
			text: "<@U024BE7LH>",
			want: entity.Action{Kind: entity.ActionShowUser, User: "<@U024BE7LH>"},
		},
		{
			name: "at-prefixed token shows user",
			text: "@U024BE7LH",
			want: entity.Action{Kind: entity.ActionShowUser, User: "@U024BE7LH"},
		},
		{
			name: "bare token shows team",
			text: "Senate",
			want: entity.Action{Kind: entity.ActionShowTeam, Team: "Senate"},
		},
		{
			name: "team create",
			text: "team create Senate",
			want: entity.Action{Kind: entity.ActionCreateTeam, Team: "Senate"},
		},
		{
			name: "team create without name fails",
			text: "team create",
			want: entity.Action{Kind: entity.ActionParsingFailed, Reason: "Please supply a team name to create"},
		},
		{
			name: "team delete",
			text: "team delete Senate",
			want: entity.Action{Kind: entity.ActionDeleteTeam, Team: "Senate"},
		},
		{
			name: "team delete without name fails",
			text: "team delete",
			want: entity.Action{Kind: entity.ActionParsingFailed, Reason: "Please supply a team name to delete"},
		},
		{
			name: "team list",
			text: "team list",
			want: entity.Action{Kind: entity.ActionListTeams},
		},
		{
			name: "bare team keyword fails",
			text: "team",
			want: entity.Action{Kind: entity.ActionParsingFailed, Reason: "Please supply a team name or command"},
		},
		{
			name: "team add member",
			text: "team Senate add <@U123>",
			want: entity.Action{Kind: entity.ActionAddMember, Team: "Senate", User: "<@U123>"},
		},
		{
			name: "team add without user fails",
			text: "team Senate add",
			want: entity.Action{Kind: entity.ActionParsingFailed, Reason: "Please supply a user to add"},
		},
		{
			name: "team del member",
			text: "team Senate del <@U123>",
			want: entity.Action{Kind: entity.ActionRemoveMember, Team: "Senate", User: "<@U123>"},
		},
		{
			name: "team del without user fails",
			text: "team Senate del",
			want: entity.Action{Kind: entity.ActionParsingFailed, Reason: "Please supply a user to delete"},
		},
		{
			name: "team name without subcommand fails",
			text: "team Senate",
			want: entity.Action{Kind: entity.ActionParsingFailed, Reason: "Please supply `add` or `del`"},
		},
		{
			name: "unknown subcommand fails",
			text: "team Senate rename Congress",
			want: entity.Action{Kind: entity.ActionParsingFailed, Reason: "Please supply `add` or `del`"},
		},
		{
			name: "extra tokens after create are ignored",
			text: "team create Senate extra words",
			want: entity.Action{Kind: entity.ActionCreateTeam, Team: "Senate"},
		},
		{
			name: "matching is case-sensitive",
			text: "Team create Senate",
			want: entity.Action{Kind: entity.ActionShowTeam, Team: "Team"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.text))
		})
	}
}

func TestNormalizeMention(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"encoded mention", "<@U024BE7LH>", "U024BE7LH"},
		{"mention with display name", "<@U024BE7LH|bob>", "U024BE7LH"},
		{"at-prefixed", "@U024BE7LH", "U024BE7LH"},
		{"bare id unchanged", "U024BE7LH", "U024BE7LH"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMention(tt.token))
		})
	}
}

func TestNormalizeMention_Idempotent(t *testing.T) {
	once := NormalizeMention("<@U024BE7LH|bob>")
	assert.Equal(t, once, NormalizeMention(once))
}
