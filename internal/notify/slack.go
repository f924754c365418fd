package notify

import (
	"context"
	"fmt"
	"os"

	"github.com/slack-go/slack"
	"github.com/spf13/viper"
)

// SlackNotifier posts messages to a channel through the Slack API.
type SlackNotifier struct {
	client  *slack.Client
	channel string
}

// NewSlackNotifier builds a notifier from configuration. It returns Noop
// when slack notifications are disabled, and an error when they are enabled
// but SLACK_BOT_USER_TOKEN is missing.
func NewSlackNotifier() (Notifier, error) {
	if !viper.GetBool("notifications.slack.enabled") {
		return Noop{}, nil
	}

	token := os.Getenv("SLACK_BOT_USER_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("notify: SLACK_BOT_USER_TOKEN is not set")
	}

	return &SlackNotifier{
		client:  slack.New(token),
		channel: viper.GetString("notifications.slack.channel"),
	}, nil
}

// NewSlackNotifierWithClient wires an explicit client, mainly for tests.
func NewSlackNotifierWithClient(client *slack.Client, channel string) *SlackNotifier {
	return &SlackNotifier{client: client, channel: channel}
}

// Notify posts the message to the configured channel.
func (n *SlackNotifier) Notify(ctx context.Context, message string) error {
	channel := n.channel
	if channel == "" {
		channel = "#perflab"
	}

	_, _, err := n.client.PostMessageContext(ctx, channel, slack.MsgOptionText(message, false))
	if err != nil {
		return fmt.Errorf("notify: posting to slack: %w", err)
	}
	return nil
}
