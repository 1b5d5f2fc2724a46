// Package discord adapts Discord slash commands, components and modals to the command service.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/command"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/cron"
)

// responder is the part of *discordgo.Session used to answer interactions.
type responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

type Bot struct {
	session  *discordgo.Session
	commands command.CommandService
	guildID  string
	now      func() time.Time
	timeout  time.Duration
}

func NewBot(token, guildID string, commands command.CommandService) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	b := &Bot{
		session:  session,
		commands: commands,
		guildID:  guildID,
		now:      time.Now,
		timeout:  10 * time.Second,
	}
	session.AddHandler(b.onInteraction)
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("Discord bot logged in", "user", r.User.Username)
	})
	return b, nil
}

// Open connects to the gateway and registers the slash commands on the guild.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}

	if _, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.guildID, slashCommands); err != nil {
		return fmt.Errorf("failed to register slash commands: %w", err)
	}
	slog.Info("Registered Discord slash commands", "guild_id", b.guildID, "count", len(slashCommands))
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	b.handle(ctx, s, i.Interaction)
}

// Platform implements cron.Notifier.
func (b *Bot) Platform() string {
	return string(command.PlatformDiscord)
}

// Recipients implements cron.Notifier. It pages through every human member of the guild.
func (b *Bot) Recipients(ctx context.Context) ([]cron.Recipient, error) {
	var (
		recipients []cron.Recipient
		after      string
	)
	for {
		members, err := b.session.GuildMembers(b.guildID, after, 1000, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list guild members: %w", err)
		}
		for _, m := range members {
			if m.User == nil || m.User.Bot {
				continue
			}
			recipients = append(recipients, cron.Recipient{ID: m.User.ID, Name: m.User.Username})
		}
		if len(members) < 1000 {
			return recipients, nil
		}
		after = members[len(members)-1].User.ID
	}
}

// SendDirect implements cron.Notifier.
func (b *Bot) SendDirect(ctx context.Context, recipientID, text string) error {
	channel, err := b.session.UserChannelCreate(recipientID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}
	if _, err := b.session.ChannelMessageSend(channel.ID, text, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send DM: %w", err)
	}
	return nil
}

var _ cron.Notifier = (*Bot)(nil)
