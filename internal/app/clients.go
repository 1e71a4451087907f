package app

import (
	"context"
	"time"

	"github.com/opsbots/statusbot/internal/infrastructure/slack"
)

// Clients holds all external integration clients.
type Clients struct {
	Slack *slack.Client
}

func (app *Application) initializeClients() error {
	app.clients = &Clients{}

	if !app.config.HasBotToken() {
		app.logger.Get().Warn("no Slack bot token configured, reactions disabled")
		return nil
	}

	app.clients.Slack = slack.NewClient(app.config.Slack.BotToken)

	// Discover the bot's own user ID when the config leaves it blank, so
	// mention prefixes can be stripped. Failure is not fatal.
	if app.config.Slack.BotUserID == "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		userID, err := app.clients.Slack.AuthTest(ctx)
		if err != nil {
			app.logger.Get().Warn("could not resolve bot user ID", "error", err)
		} else {
			app.config.Slack.BotUserID = userID
			app.logger.Get().Info("resolved bot user ID", "user_id", userID)
		}
	}

	app.logger.Get().Info("Slack integration enabled")
	return nil
}
