// Package slack adapts Slack slash commands and modals, received over Socket Mode, to the command service.
package slack

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/command"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/cron"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

// api is the part of *slack.Client the bot calls.
type api interface {
	OpenViewContext(ctx context.Context, triggerID string, view slack.ModalViewRequest) (*slack.ViewResponse, error)
	PostEphemeralContext(ctx context.Context, channelID, userID string, options ...slack.MsgOption) (string, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	GetUsersContext(ctx context.Context, options ...slack.GetUsersOption) ([]slack.User, error)
}

type Bot struct {
	api      api
	socket   *socketmode.Client
	commands command.CommandService
	timeout  time.Duration
}

func NewBot(botToken, appToken string, commands command.CommandService) *Bot {
	client := slack.New(botToken, slack.OptionAppLevelToken(appToken))
	return &Bot{
		api:      client,
		socket:   socketmode.New(client),
		commands: commands,
		timeout:  10 * time.Second,
	}
}

// Run consumes Socket Mode events until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	go b.consume(ctx)
	if err := b.socket.RunContext(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("slack socket mode: %w", err)
	}
	return nil
}

func (b *Bot) consume(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-b.socket.Events:
			if !ok {
				return
			}
			b.dispatch(ctx, evt)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnected:
		slog.Info("Slack bot connected over Socket Mode")
	case socketmode.EventTypeConnectionError:
		slog.Warn("Slack connection error, retrying")

	case socketmode.EventTypeSlashCommand:
		cmd, ok := evt.Data.(slack.SlashCommand)
		if !ok || evt.Request == nil {
			return
		}
		b.socket.Ack(*evt.Request)

		reqCtx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()
		b.handleSlashCommand(reqCtx, cmd)

	case socketmode.EventTypeInteractive:
		callback, ok := evt.Data.(slack.InteractionCallback)
		if !ok || evt.Request == nil {
			return
		}
		if callback.Type != slack.InteractionTypeViewSubmission {
			b.socket.Ack(*evt.Request)
			return
		}

		reqCtx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()
		if resp := b.handleViewSubmission(reqCtx, callback); resp != nil {
			b.socket.Ack(*evt.Request, resp)
		} else {
			b.socket.Ack(*evt.Request)
		}
	}
}

// Platform implements cron.Notifier.
func (b *Bot) Platform() string {
	return string(command.PlatformSlack)
}

// Recipients implements cron.Notifier. Bots, Slackbot and deactivated accounts are skipped.
func (b *Bot) Recipients(ctx context.Context) ([]cron.Recipient, error) {
	users, err := b.api.GetUsersContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list slack users: %w", err)
	}

	recipients := make([]cron.Recipient, 0, len(users))
	for _, u := range users {
		if u.IsBot || u.Deleted || u.ID == "USLACKBOT" {
			continue
		}
		recipients = append(recipients, cron.Recipient{ID: u.ID, Name: u.Name})
	}
	return recipients, nil
}

// SendDirect implements cron.Notifier. Posting to a user id lands in the app's DM with them.
func (b *Bot) SendDirect(ctx context.Context, recipientID, text string) error {
	if _, _, err := b.api.PostMessageContext(ctx, recipientID, slack.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("failed to send slack DM: %w", err)
	}
	return nil
}

var _ cron.Notifier = (*Bot)(nil)
