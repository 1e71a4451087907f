package dto

import (
	"time"

	"github.com/opsbots/statusbot/internal/domain/entity"
)

// WebhookProbe is the minimal decode of any body POSTed to the webhook root,
// used to pick a dispatch path from the `type` discriminator.
type WebhookProbe struct {
	Type      string `json:"type"`
	Token     string `json:"token"`
	Challenge string `json:"challenge"`
}

// Webhook body types Slack sends to the events endpoint.
const (
	TypeURLVerification = "url_verification"
	TypeEventCallback   = "event_callback"
)

// EventEnvelopeDTO is the outer event_callback body.
type EventEnvelopeDTO struct {
	Token       string        `json:"token"`
	TeamID      string        `json:"team_id"`
	APIAppID    string        `json:"api_app_id"`
	Type        string        `json:"type"`
	Event       InnerEventDTO `json:"event"`
	AuthedUsers []string      `json:"authed_users"`
	EventID     string        `json:"event_id"`
	EventTime   int64         `json:"event_time"`
}

// InnerEventDTO is the event payload inside an event_callback envelope.
// Covers the app_mention and message shapes the bot subscribes to.
type InnerEventDTO struct {
	Type        string `json:"type"`
	User        string `json:"user"`
	Text        string `json:"text"`
	Channel     string `json:"channel"`
	ChannelType string `json:"channel_type,omitempty"`
	TS          string `json:"ts"`
	EventTS     string `json:"event_ts"`
}

// ChallengeResponseDTO completes the url_verification handshake.
type ChallengeResponseDTO struct {
	Challenge string `json:"challenge"`
}

// ToEntity converts the envelope's inner event to the domain representation.
func (e *EventEnvelopeDTO) ToEntity() *entity.SlackEvent {
	return &entity.SlackEvent{
		Type:      e.Event.Type,
		UserID:    e.Event.User,
		ChannelID: e.Event.Channel,
		Text:      e.Event.Text,
		Timestamp: e.Event.EventTS,
		EventID:   e.EventID,
	}
}

// OccurredAt returns the envelope's event time.
func (e *EventEnvelopeDTO) OccurredAt() time.Time {
	return time.Unix(e.EventTime, 0).UTC()
}
