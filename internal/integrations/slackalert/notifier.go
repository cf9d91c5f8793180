package slackalert

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// Notifier posts escalation alerts to a fixed Slack channel.
type Notifier struct {
	client    *slack.Client
	channelID string
}

// NewNotifier creates a Notifier for the given bot token and channel.
func NewNotifier(botToken, channelID string) *Notifier {
	return &Notifier{
		client:    slack.New(botToken),
		channelID: channelID,
	}
}

// Notify posts a plain-text message to the configured channel.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	_, _, err := n.client.PostMessageContext(ctx, n.channelID, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("failed to post message to Slack channel %s: %w", n.channelID, err)
	}
	return nil
}
