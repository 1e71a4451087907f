package app

import (
	"github.com/opsbots/statusbot/internal/adapter/handler"
	"github.com/opsbots/statusbot/internal/infrastructure/server"
	"github.com/opsbots/statusbot/internal/usecase/command"
	"github.com/opsbots/statusbot/internal/usecase/event"
)

func (app *Application) initializeHandlers() error {
	logger := &slogAdapter{logger: app.logger.Get()}

	executor := command.NewExecutor(app.teamRepo, app.userRepo, logger)

	var reactor event.Reactor
	if app.clients.Slack != nil {
		reactor = app.clients.Slack
	}

	ingestor := event.NewIngestor(
		app.userRepo,
		reactor,
		app.config.Slack.BotUserID,
		app.config.Slack.BotName,
		app.config.Slack.StatusChannelID,
		logger,
	)

	app.handlers = &server.Handlers{
		Webhook: handler.NewWebhookHandler(
			ingestor,
			app.config.Slack.VerificationToken,
			app.telemetry.Metrics,
			logger,
		),
		Command: handler.NewCommandHandler(
			executor,
			app.telemetry.Metrics,
			logger,
		),
		Health:  handler.NewHealthHandler(app.dbPinger),
		Metrics: handler.NewMetricsHandler(),
	}

	return nil
}

func (app *Application) setupServer() error {
	router := server.NewRouter(app.handlers, server.RouterOptions{
		SigningSecret: app.config.Slack.SigningSecret,
		Metrics:       app.telemetry.Metrics,
	}, app.logger.Get())

	app.server = server.New(app.config.Server, router, app.logger.Get())
	return nil
}
