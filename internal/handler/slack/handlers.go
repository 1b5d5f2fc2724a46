package slack

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/command"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/validator"
	"github.com/slack-go/slack"
)

func (b *Bot) handleSlashCommand(ctx context.Context, cmd slack.SlashCommand) {
	user := command.User{
		Platform: command.PlatformSlack,
		ID:       cmd.UserID,
		Username: cmd.UserName,
	}

	switch cmd.Command {
	case "/checkin":
		session, err := b.commands.BeginCheckIn(ctx, user)
		if err != nil {
			b.ephemeral(ctx, cmd, command.ActionCheckIn, err)
			return
		}
		b.openView(ctx, cmd, command.ActionCheckIn, checkInView(session.ID))

	case "/checkout":
		if err := b.commands.BeginCheckOut(ctx, user); err != nil {
			b.ephemeral(ctx, cmd, command.ActionCheckOut, err)
			return
		}
		b.openView(ctx, cmd, command.ActionCheckOut, checkOutView())

	case "/applyleave":
		if err := b.commands.BeginLeave(ctx, user); err != nil {
			b.ephemeral(ctx, cmd, command.ActionLeave, err)
			return
		}
		b.openView(ctx, cmd, command.ActionLeave, leaveView())

	case "/askstatus":
		reply, err := b.commands.Status(ctx, user)
		if err != nil {
			b.ephemeral(ctx, cmd, command.ActionStatus, err)
			return
		}
		_, err = b.api.PostEphemeralContext(ctx, cmd.ChannelID, cmd.UserID,
			slack.MsgOptionText(reply.Title, false),
			slack.MsgOptionBlocks(replyBlocks(reply)...),
		)
		if err != nil {
			slog.Error("Failed to post slack status", "user_id", cmd.UserID, "error", err)
		}

	default:
		slog.Warn("Unknown slack command", "command", cmd.Command)
	}
}

// handleViewSubmission processes a submitted modal. A non-nil response keeps the modal open with field errors.
func (b *Bot) handleViewSubmission(ctx context.Context, callback slack.InteractionCallback) *slack.ViewSubmissionResponse {
	user := command.User{
		Platform: command.PlatformSlack,
		ID:       callback.User.ID,
		Username: callback.User.Name,
	}
	values := stateValues(callback.View)

	var (
		reply  command.Reply
		err    error
		action command.Action
	)
	switch callback.View.CallbackID {
	case callbackCheckIn:
		action = command.ActionCheckIn
		reply, err = b.submitCheckIn(ctx, user, callback.View.PrivateMetadata, values)
	case callbackCheckOut:
		action = command.ActionCheckOut
		reply, err = b.commands.CompleteCheckOut(ctx, user, command.CheckOutForm{
			Accomplishments:    values[blockAccomplishments],
			Blockers:           values[blockBlockers],
			TomorrowPriorities: values[blockTomorrowPriorities],
			Rating:             values[blockRating],
		})
	case callbackLeave:
		action = command.ActionLeave
		reply, err = b.commands.CompleteLeave(ctx, user, values[blockLeaveDescription])
	default:
		slog.Warn("Unknown slack view", "callback_id", callback.View.CallbackID)
		return nil
	}

	if err != nil {
		if resp := fieldErrors(err); resp != nil {
			return resp
		}
		if command.IsUnexpected(err) {
			slog.Error("Slack command failed", "action", action, "user_id", user.ID, "error", err)
		}
		b.direct(ctx, user.ID, command.UserMessage(action, err))
		return nil
	}

	_, _, err = b.api.PostMessageContext(ctx, user.ID,
		slack.MsgOptionText(reply.Title, false),
		slack.MsgOptionBlocks(replyBlocks(reply)...),
	)
	if err != nil {
		slog.Error("Failed to post slack reply", "action", action, "user_id", user.ID, "error", err)
	}
	return nil
}

// submitCheckIn replays the single-form answers through the wizard session opened by /checkin.
func (b *Bot) submitCheckIn(ctx context.Context, user command.User, sessionID string, values map[string]string) (command.Reply, error) {
	if _, err := b.commands.SelectWorkFrom(ctx, user, sessionID, values[blockWorkFrom]); err != nil {
		return command.Reply{}, err
	}
	if _, err := b.commands.SelectMood(ctx, user, sessionID, values[blockMood]); err != nil {
		return command.Reply{}, err
	}
	return b.commands.CompleteCheckIn(ctx, user, sessionID, command.CheckInDetails{
		TodayPlan:     values[blockTodayPlan],
		YesterdayTask: values[blockYesterdayTask],
	})
}

// fieldErrors maps validation failures onto the modal's input blocks.
func fieldErrors(err error) *slack.ViewSubmissionResponse {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return nil
	}
	return slack.NewErrorsViewSubmissionResponse(validationErrs.ToMap())
}

func (b *Bot) openView(ctx context.Context, cmd slack.SlashCommand, action command.Action, view slack.ModalViewRequest) {
	if _, err := b.api.OpenViewContext(ctx, cmd.TriggerID, view); err != nil {
		slog.Error("Failed to open slack modal", "action", action, "user_id", cmd.UserID, "error", err)
		b.ephemeral(ctx, cmd, action, err)
	}
}

func (b *Bot) ephemeral(ctx context.Context, cmd slack.SlashCommand, action command.Action, err error) {
	if command.IsUnexpected(err) {
		slog.Error("Slack command failed", "action", action, "user_id", cmd.UserID, "error", err)
	}
	if _, postErr := b.api.PostEphemeralContext(ctx, cmd.ChannelID, cmd.UserID, slack.MsgOptionText(command.UserMessage(action, err), false)); postErr != nil {
		slog.Error("Failed to post slack ephemeral message", "user_id", cmd.UserID, "error", postErr)
	}
}

func (b *Bot) direct(ctx context.Context, userID, text string) {
	if err := b.SendDirect(ctx, userID, text); err != nil {
		slog.Error("Failed to send slack message", "user_id", userID, "error", err)
	}
}
