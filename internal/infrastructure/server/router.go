package server

import (
	"log/slog"
	"net/http"

	"github.com/opsbots/statusbot/internal/adapter/handler"
	"github.com/opsbots/statusbot/internal/adapter/handler/middleware"
	"github.com/opsbots/statusbot/internal/infrastructure/observability"
)

// Handlers holds all HTTP handlers.
type Handlers struct {
	Webhook *handler.WebhookHandler
	Command *handler.CommandHandler
	Health  *handler.HealthHandler
	Metrics http.Handler
}

// RouterOptions holds optional router behavior.
type RouterOptions struct {
	// SigningSecret enables Slack signature verification on webhook routes
	// when non-empty.
	SigningSecret string

	// Metrics enables HTTP request instrumentation when non-nil.
	Metrics *observability.Metrics
}

// NewRouter creates the HTTP router with all handlers.
func NewRouter(handlers *Handlers, opts RouterOptions, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoints
	mux.Handle("/health", handlers.Health)
	mux.Handle("/ready", handlers.Health)

	if handlers.Metrics != nil {
		mux.Handle("/metrics", handlers.Metrics)
	}

	// Slack webhook endpoints, signature-verified when a secret is set.
	slackAuth := func(h http.Handler) http.Handler { return h }
	if opts.SigningSecret != "" {
		slackAuth = middleware.SlackAuth(opts.SigningSecret, logger)
	}

	// Events API deliveries arrive at the root path.
	mux.Handle("/", slackAuth(handlers.Webhook))
	mux.Handle("/location", slackAuth(handlers.Command))

	// Apply middleware stack
	var h http.Handler = mux
	if opts.Metrics != nil {
		h = middleware.Observability(opts.Metrics)(h)
	}
	h = middleware.RequestID(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
