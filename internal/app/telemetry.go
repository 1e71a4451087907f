package app

import (
	"github.com/opsbots/statusbot/internal/infrastructure/observability"
)

// setupTelemetry initializes OpenTelemetry metrics.
func (app *Application) setupTelemetry() error {
	telemetry, err := observability.NewTelemetry(observability.ServiceName, "v1.0.0")
	if err != nil {
		return err
	}

	app.telemetry = telemetry

	app.logger.Get().Info("telemetry initialized",
		"service", observability.ServiceName,
		"metrics_enabled", true,
	)

	return nil
}
