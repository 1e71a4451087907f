package handler

import (
	"encoding/json"
	"net/http"

	"github.com/slack-go/slack"

	"github.com/opsbots/statusbot/internal/adapter/dto"
	"github.com/opsbots/statusbot/internal/infrastructure/observability"
	"github.com/opsbots/statusbot/internal/usecase/command"
)

// CommandHandler handles the /location slash command webhook.
//
// Slack treats non-2xx responses as a bot malfunction and will eventually
// throttle or ban the app, so this handler answers 200 for every outcome:
// parse failures and storage errors are rendered as response blocks, and an
// undecodable body gets a bare 200 with no payload.
type CommandHandler struct {
	executor *command.Executor
	metrics  *observability.Metrics
	logger   command.Logger
}

// NewCommandHandler creates a new slash command handler.
func NewCommandHandler(executor *command.Executor, metrics *observability.Metrics, logger command.Logger) *CommandHandler {
	return &CommandHandler{
		executor: executor,
		metrics:  metrics,
		logger:   logger,
	}
}

// ServeHTTP handles POST /location.
// Slack sends slash commands as application/x-www-form-urlencoded.
func (h *CommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		h.logger.Error("failed to parse slash command", "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	cmdDTO := &dto.SlackCommandDTO{
		Command:     cmd.Command,
		Text:        cmd.Text,
		UserID:      cmd.UserID,
		UserName:    cmd.UserName,
		ChannelID:   cmd.ChannelID,
		ChannelName: cmd.ChannelName,
		TeamID:      cmd.TeamID,
		ResponseURL: cmd.ResponseURL,
		TriggerID:   cmd.TriggerID,
	}

	h.logger.Info("received slash command",
		"command", cmdDTO.Command,
		"user_id", cmdDTO.UserID,
		"channel_id", cmdDTO.ChannelID,
		"text", cmdDTO.Text,
	)

	action := command.Parse(cmdDTO.Text)
	blocks := h.executor.Execute(r.Context(), action)

	if h.metrics != nil {
		h.metrics.RecordCommand(r.Context(), string(action.Kind))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto.NewBlocksResponse(blocks)); err != nil {
		h.logger.Error("failed to encode command response", "error", err)
	}
}
