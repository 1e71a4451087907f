package event

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/opsbots/statusbot/internal/domain/entity"
	"github.com/opsbots/statusbot/internal/domain/repository"
	"github.com/opsbots/statusbot/internal/usecase/command"
)

// reactionTimeout bounds the detached acknowledgement call so a slow Slack
// API cannot leak goroutines indefinitely.
const reactionTimeout = 10 * time.Second

// ackEmoji is the reaction added to a mention once its status is stored.
const ackEmoji = "thumbsup"

// Reactor is the outbound port for best-effort message acknowledgements.
type Reactor interface {
	// AddReaction adds an emoji reaction to the message identified by its
	// channel and timestamp.
	AddReaction(ctx context.Context, channel, timestamp, emoji string) error
}

// Ingestor reduces inbound Slack events to user status upserts.
type Ingestor struct {
	users   repository.UserRepository
	reactor Reactor // nil disables acknowledgements
	logger  command.Logger

	// Invocation prefixes stripped from mention text before it is stored.
	// Slack delivers mentions encoded ("<@U024BOT> telework"), but the raw
	// "@statusbot telework" form is also recognized.
	prefixes []string

	// statusChannel restricts the passive message monitor to one channel.
	// Empty accepts messages from every channel the bot was invited to.
	statusChannel string
}

// NewIngestor creates a new event ingestor. botUserID and botName seed the
// mention prefixes; either may be empty.
func NewIngestor(
	users repository.UserRepository,
	reactor Reactor,
	botUserID, botName, statusChannel string,
	logger command.Logger,
) *Ingestor {
	var prefixes []string
	if botUserID != "" {
		prefixes = append(prefixes, fmt.Sprintf("<@%s> ", botUserID))
	}
	if botName != "" {
		prefixes = append(prefixes, fmt.Sprintf("@%s ", botName))
	}

	return &Ingestor{
		users:         users,
		reactor:       reactor,
		logger:        logger,
		prefixes:      prefixes,
		statusChannel: statusChannel,
	}
}

// HandleMention stores the mention text as the user's status, stripping the
// bot's own invocation prefix when present. After the status is committed, a
// thumbsup reaction is attempted as a detached side effect; its failure is
// logged and never affects the stored status.
func (i *Ingestor) HandleMention(ctx context.Context, ev *entity.SlackEvent) error {
	status := i.stripPrefix(ev.Text)

	id := command.NormalizeMention(ev.UserID)
	if err := i.users.UpsertStatus(ctx, id, status); err != nil {
		return fmt.Errorf("upserting status for %s: %w", id, err)
	}

	i.logger.Info("status updated from mention",
		"user_id", id,
		"channel", ev.ChannelID,
	)

	if i.reactor != nil {
		go i.acknowledge(ev.ChannelID, ev.Timestamp)
	}

	return nil
}

// HandleMessage stores a passive channel message verbatim as the user's
// status. No acknowledgement is sent; this is a silent monitor.
func (i *Ingestor) HandleMessage(ctx context.Context, ev *entity.SlackEvent) error {
	if i.statusChannel != "" && ev.ChannelID != i.statusChannel {
		i.logger.Debug("ignoring message outside status channel",
			"channel", ev.ChannelID,
		)
		return nil
	}

	id := command.NormalizeMention(ev.UserID)
	if err := i.users.UpsertStatus(ctx, id, ev.Text); err != nil {
		return fmt.Errorf("upserting status for %s: %w", id, err)
	}

	i.logger.Info("status updated from channel message",
		"user_id", id,
		"channel", ev.ChannelID,
	)

	return nil
}

// stripPrefix removes the first matching invocation prefix. Text without a
// known prefix is kept whole.
func (i *Ingestor) stripPrefix(text string) string {
	for _, prefix := range i.prefixes {
		if rest, ok := strings.CutPrefix(text, prefix); ok {
			return rest
		}
	}
	return text
}

// acknowledge runs detached from the request; it carries its own timeout and
// reports failures through the logger only.
func (i *Ingestor) acknowledge(channel, timestamp string) {
	ctx, cancel := context.WithTimeout(context.Background(), reactionTimeout)
	defer cancel()

	if err := i.reactor.AddReaction(ctx, channel, timestamp, ackEmoji); err != nil {
		i.logger.Error("failed to add reaction",
			"channel", channel,
			"timestamp", timestamp,
			"error", err,
		)
	}
}
