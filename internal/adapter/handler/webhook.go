package handler

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"

	"github.com/opsbots/statusbot/internal/adapter/dto"
	"github.com/opsbots/statusbot/internal/infrastructure/observability"
	"github.com/opsbots/statusbot/internal/usecase/command"
	"github.com/opsbots/statusbot/internal/usecase/event"
)

// WebhookHandler handles everything POSTed to the webhook root: the one-time
// url_verification handshake and event_callback deliveries. Unknown or
// undecodable bodies are acknowledged with a bare 200 so Slack does not
// retry or ban the bot.
type WebhookHandler struct {
	ingestor          *event.Ingestor
	verificationToken string
	metrics           *observability.Metrics
	logger            command.Logger
}

// NewWebhookHandler creates a new events webhook handler.
func NewWebhookHandler(
	ingestor *event.Ingestor,
	verificationToken string,
	metrics *observability.Metrics,
	logger command.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		ingestor:          ingestor,
		verificationToken: verificationToken,
		metrics:           metrics,
		logger:            logger,
	}
}

// ServeHTTP handles POST /.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("failed to read webhook body", "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	var probe dto.WebhookProbe
	if err := json.Unmarshal(body, &probe); err != nil {
		h.logger.Error("failed to decode webhook body", "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	switch probe.Type {
	case dto.TypeURLVerification:
		h.handleURLVerification(w, &probe)

	case dto.TypeEventCallback:
		h.handleEventCallback(w, r, body)

	default:
		// Unknown event types are acknowledged so Slack keeps delivering.
		w.WriteHeader(http.StatusOK)
	}
}

// handleURLVerification completes the registration handshake by echoing the
// challenge. The deprecated verification token, when configured, must match.
func (h *WebhookHandler) handleURLVerification(w http.ResponseWriter, probe *dto.WebhookProbe) {
	if h.verificationToken != "" &&
		subtle.ConstantTimeCompare([]byte(h.verificationToken), []byte(probe.Token)) != 1 {
		h.logger.Warn("url verification with bad token")
		http.Error(w, "bad verification token", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto.ChallengeResponseDTO{Challenge: probe.Challenge}); err != nil {
		h.logger.Error("failed to encode challenge response", "error", err)
	}
}

// handleEventCallback routes app_mention and message events to the ingestor.
// Storage failures are logged but still acknowledged with 200; Slack would
// otherwise redeliver the event and eventually throttle the bot.
func (h *WebhookHandler) handleEventCallback(w http.ResponseWriter, r *http.Request, body []byte) {
	var envelope dto.EventEnvelopeDTO
	if err := json.Unmarshal(body, &envelope); err != nil {
		h.logger.Error("failed to decode event callback", "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	ev := envelope.ToEntity()
	ctx := r.Context()

	var err error
	switch {
	case ev.IsAppMention():
		err = h.ingestor.HandleMention(ctx, ev)
	case ev.IsMessage():
		err = h.ingestor.HandleMessage(ctx, ev)
	default:
		h.logger.Debug("ignoring unhandled event type", "type", ev.Type)
	}

	if err != nil {
		h.logger.Error("failed to ingest event",
			"type", ev.Type,
			"event_id", ev.EventID,
			"error", err,
		)
	} else if h.metrics != nil {
		h.metrics.RecordEvent(ctx, ev.Type)
	}

	w.WriteHeader(http.StatusOK)
}
