package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/command"
)

func userFrom(i *discordgo.Interaction) (command.User, bool) {
	var (
		u    *discordgo.User
		nick string
	)
	switch {
	case i.Member != nil && i.Member.User != nil:
		u = i.Member.User
		nick = i.Member.Nick
	case i.User != nil:
		u = i.User
	default:
		return command.User{}, false
	}

	display := nick
	if display == "" {
		display = u.GlobalName
	}
	return command.User{
		Platform:    command.PlatformDiscord,
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: display,
	}, true
}

func (b *Bot) handle(ctx context.Context, r responder, i *discordgo.Interaction) {
	user, ok := userFrom(i)
	if !ok {
		slog.Warn("Discord interaction without a user", "interaction_id", i.ID)
		return
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(ctx, r, i, user)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(ctx, r, i, user)
	case discordgo.InteractionModalSubmit:
		b.handleModal(ctx, r, i, user)
	}
}

func (b *Bot) handleCommand(ctx context.Context, r responder, i *discordgo.Interaction, user command.User) {
	switch i.ApplicationCommandData().Name {
	case "checkin":
		session, err := b.commands.BeginCheckIn(ctx, user)
		if err != nil {
			b.fail(r, i, user, command.ActionCheckIn, err)
			return
		}
		b.respond(r, i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content:    checkInPrompt(session),
				Components: checkInComponents(session),
				Flags:      discordgo.MessageFlagsEphemeral,
			},
		})

	case "checkout":
		if err := b.commands.BeginCheckOut(ctx, user); err != nil {
			b.fail(r, i, user, command.ActionCheckOut, err)
			return
		}
		b.respond(r, i, &discordgo.InteractionResponse{Type: discordgo.InteractionResponseModal, Data: checkOutModal()})

	case "leave":
		if err := b.commands.BeginLeave(ctx, user); err != nil {
			b.fail(r, i, user, command.ActionLeave, err)
			return
		}
		b.respond(r, i, &discordgo.InteractionResponse{Type: discordgo.InteractionResponseModal, Data: leaveModal()})

	case "status":
		reply, err := b.commands.Status(ctx, user)
		if err != nil {
			b.fail(r, i, user, command.ActionStatus, err)
			return
		}
		b.respondEmbed(r, i, reply)
	}
}

func (b *Bot) handleComponent(ctx context.Context, r responder, i *discordgo.Interaction, user command.User) {
	data := i.MessageComponentData()
	name, sessionID := splitCustomID(data.CustomID)

	var value string
	if len(data.Values) > 0 {
		value = data.Values[0]
	}

	switch name {
	case idWorkFromSelect, idMoodSelect:
		selectFn := b.commands.SelectWorkFrom
		if name == idMoodSelect {
			selectFn = b.commands.SelectMood
		}
		session, err := selectFn(ctx, user, sessionID, value)
		if err != nil {
			if command.IsUnexpected(err) {
				slog.Error("Failed to process check-in selection", "user_id", user.ID, "error", err)
			}
			b.respond(r, i, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseUpdateMessage,
				Data: &discordgo.InteractionResponseData{
					Content:    command.UserMessage(command.ActionCheckIn, err),
					Components: []discordgo.MessageComponent{},
				},
			})
			return
		}
		b.respond(r, i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Content:    checkInPrompt(session),
				Components: checkInComponents(session),
			},
		})

	case idProceed:
		session, err := b.commands.ProceedCheckIn(ctx, user, sessionID)
		if err != nil {
			b.fail(r, i, user, command.ActionCheckIn, err)
			return
		}
		b.respond(r, i, &discordgo.InteractionResponse{Type: discordgo.InteractionResponseModal, Data: checkInModal(session.ID)})

	default:
		slog.Warn("Unknown Discord component", "custom_id", data.CustomID)
	}
}

func (b *Bot) handleModal(ctx context.Context, r responder, i *discordgo.Interaction, user command.User) {
	data := i.ModalSubmitData()
	name, sessionID := splitCustomID(data.CustomID)
	values := modalValues(data.Components)

	var (
		reply  command.Reply
		err    error
		action command.Action
	)
	switch name {
	case idCheckInModal:
		action = command.ActionCheckIn
		reply, err = b.commands.CompleteCheckIn(ctx, user, sessionID, command.CheckInDetails{
			TodayPlan:     values[fieldTodayPlan],
			YesterdayTask: values[fieldYesterdayTask],
		})
	case idCheckOutModal:
		action = command.ActionCheckOut
		reply, err = b.commands.CompleteCheckOut(ctx, user, command.CheckOutForm{
			Accomplishments:    values[fieldAccomplishments],
			Blockers:           values[fieldBlockers],
			TomorrowPriorities: values[fieldTomorrowPriorities],
			Rating:             values[fieldRating],
		})
	case idLeaveModal:
		action = command.ActionLeave
		reply, err = b.commands.CompleteLeave(ctx, user, values[fieldLeaveDescription])
	default:
		slog.Warn("Unknown Discord modal", "custom_id", data.CustomID)
		return
	}

	if err != nil {
		b.fail(r, i, user, action, err)
		return
	}
	b.respondEmbed(r, i, reply)
}

func (b *Bot) respondEmbed(r responder, i *discordgo.Interaction, reply command.Reply) {
	b.respond(r, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{replyEmbed(reply, b.now())},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

// fail answers with the ephemeral user message for err. Unexpected errors are logged.
func (b *Bot) fail(r responder, i *discordgo.Interaction, user command.User, action command.Action, err error) {
	if command.IsUnexpected(err) {
		slog.Error("Discord command failed", "action", action, "user_id", user.ID, "error", err)
	}
	b.respond(r, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: command.UserMessage(action, err),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func (b *Bot) respond(r responder, i *discordgo.Interaction, resp *discordgo.InteractionResponse) {
	if err := r.InteractionRespond(i, resp); err != nil {
		slog.Error("Failed to respond to Discord interaction", "interaction_id", i.ID, "error", err)
	}
}
