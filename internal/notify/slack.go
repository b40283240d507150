package notify

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// SlackNotifier posts notifications to a Slack channel.
type SlackNotifier struct {
	client    slackClient
	channelID string
}

func NewSlackNotifier(botToken, channelID string) (*SlackNotifier, error) {
	if botToken == "" {
		return nil, fmt.Errorf("slack: bot token is required")
	}
	if channelID == "" {
		return nil, fmt.Errorf("slack: channel id is required")
	}
	return &SlackNotifier{
		client:    slackapi.New(botToken),
		channelID: channelID,
	}, nil
}

func (s *SlackNotifier) Send(ctx context.Context, n Notification) error {
	text := fmt.Sprintf("*%s*\n%s\nintervention: `%s`", n.Title, n.Body, n.InterventionID)
	_, _, err := s.client.PostMessageContext(ctx, s.channelID,
		slackapi.MsgOptionText(text, false),
		slackapi.MsgOptionDisableLinkUnfurl(),
	)
	return err
}
