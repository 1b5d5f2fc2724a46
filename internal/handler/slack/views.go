package slack

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/command"
	"github.com/slack-go/slack"
)

const (
	callbackCheckIn  = "checkin_modal"
	callbackCheckOut = "checkout_modal"
	callbackLeave    = "leave_modal"
)

// Block ids double as validation field names so errors land on the right input.
const (
	blockWorkFrom           = "work_from"
	blockMood               = "current_status"
	blockTodayPlan          = "today_plan"
	blockYesterdayTask      = "yesterday_task"
	blockAccomplishments    = "accomplishments"
	blockBlockers           = "blockers"
	blockTomorrowPriorities = "tomorrow_priorities"
	blockRating             = "overall_rating"
	blockLeaveDescription   = "description"

	actionSuffix = "_input"
)

func plain(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, false, false)
}

func markdown(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}

func textInputBlock(blockID, label, placeholder string, multiline, optional bool) *slack.InputBlock {
	element := slack.NewPlainTextInputBlockElement(plain(placeholder), blockID+actionSuffix).WithMultiline(multiline)
	block := slack.NewInputBlock(blockID, plain(label), nil, element)
	block.Optional = optional
	return block
}

func selectBlock(blockID, label, placeholder string, options []*slack.OptionBlockObject) *slack.InputBlock {
	element := slack.NewOptionsSelectBlockElement(slack.OptTypeStatic, plain(placeholder), blockID+actionSuffix, options...)
	return slack.NewInputBlock(blockID, plain(label), nil, element)
}

func option(value, label string) *slack.OptionBlockObject {
	return slack.NewOptionBlockObject(value, plain(label), nil)
}

func modal(callbackID, title, metadata string, blocks ...slack.Block) slack.ModalViewRequest {
	return slack.ModalViewRequest{
		Type:            slack.VTModal,
		CallbackID:      callbackID,
		Title:           plain(title),
		Submit:          plain("Submit"),
		Close:           plain("Cancel"),
		PrivateMetadata: metadata,
		Blocks:          slack.Blocks{BlockSet: blocks},
	}
}

// checkInView is a single form. The wizard session id rides in private_metadata.
func checkInView(sessionID string) slack.ModalViewRequest {
	moods := make([]*slack.OptionBlockObject, 0, len(attendance.Moods))
	for _, m := range attendance.Moods {
		moods = append(moods, option(strings.ToLower(m), m))
	}

	return modal(callbackCheckIn, "Check-in", sessionID,
		selectBlock(blockWorkFrom, "Work Location", "Select work location", []*slack.OptionBlockObject{
			option(string(attendance.WorkFromOffice), "Office"),
			option(string(attendance.WorkFromRemote), "Remote"),
		}),
		selectBlock(blockMood, "How are you feeling today?", "How are you feeling?", moods),
		textInputBlock(blockTodayPlan, "What's your plan for today?", "Describe your main tasks and goals for today...", true, false),
		textInputBlock(blockYesterdayTask, "What did you work on yesterday?", "Briefly describe yesterday's accomplishments...", true, false),
	)
}

func checkOutView() slack.ModalViewRequest {
	ratings := make([]*slack.OptionBlockObject, 0, 5)
	for r := 1; r <= 5; r++ {
		ratings = append(ratings, option(fmt.Sprint(r), fmt.Sprint(r)))
	}

	return modal(callbackCheckOut, "Check-out", "",
		textInputBlock(blockAccomplishments, "What did you accomplish today?", "List your main accomplishments and completed tasks...", true, false),
		textInputBlock(blockBlockers, "Any blockers or challenges?", "Describe any obstacles you faced or help you need...", true, true),
		textInputBlock(blockTomorrowPriorities, "Tomorrow's priorities", "What are your main priorities for tomorrow?", true, false),
		selectBlock(blockRating, "Rate your day (1-5)", "Rate your day (1-5)", ratings),
	)
}

func leaveView() slack.ModalViewRequest {
	return modal(callbackLeave, "Apply for Leave", "",
		textInputBlock(blockLeaveDescription, "Leave Description", "Please provide the reason for your leave...", true, false),
	)
}

// stateValues flattens a submitted view into block id -> typed or selected value.
func stateValues(view slack.View) map[string]string {
	values := make(map[string]string)
	if view.State == nil {
		return values
	}
	for blockID, actions := range view.State.Values {
		for _, action := range actions {
			if action.SelectedOption.Value != "" {
				values[blockID] = action.SelectedOption.Value
			} else {
				values[blockID] = action.Value
			}
		}
	}
	return values
}

// replyBlocks renders a command reply as a title section, a field grid and a footer.
func replyBlocks(reply command.Reply) []slack.Block {
	blocks := []slack.Block{
		slack.NewSectionBlock(markdown("*"+reply.Title+"*"), nil, nil),
	}
	if reply.Description != "" {
		blocks = append(blocks, slack.NewSectionBlock(markdown(reply.Description), nil, nil))
	}
	for _, f := range reply.Fields {
		blocks = append(blocks, slack.NewSectionBlock(markdown("*"+f.Name+"*\n"+f.Value), nil, nil))
	}
	if reply.Footer != "" {
		blocks = append(blocks, slack.NewContextBlock("", plain(reply.Footer)))
	}
	return blocks
}
