package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// Client wraps the Slack API client with the outbound operations the bot
// needs. Implements the event.Reactor interface.
type Client struct {
	api *slack.Client
}

// NewClient creates a new Slack client. An optional apiURL overrides the
// Slack endpoint for tests.
func NewClient(botToken string, apiURL ...string) *Client {
	var api *slack.Client
	if len(apiURL) > 0 && apiURL[0] != "" {
		api = slack.New(botToken, slack.OptionAPIURL(apiURL[0]))
	} else {
		api = slack.New(botToken)
	}

	return &Client{api: api}
}

// AddReaction adds an emoji reaction to the message identified by channel
// and timestamp.
func (c *Client) AddReaction(ctx context.Context, channelID, timestamp, emoji string) error {
	err := c.api.AddReactionContext(ctx, emoji, slack.ItemRef{
		Channel:   channelID,
		Timestamp: timestamp,
	})
	if err != nil {
		return fmt.Errorf("adding reaction: %w", err)
	}
	return nil
}

// PostMessage posts plain text to a channel.
func (c *Client) PostMessage(ctx context.Context, channelID, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return fmt.Errorf("posting message: %w", err)
	}
	return nil
}

// AuthTest verifies the bot token and returns the bot's user ID.
func (c *Client) AuthTest(ctx context.Context) (string, error) {
	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return "", fmt.Errorf("auth test: %w", err)
	}
	return resp.UserID, nil
}
