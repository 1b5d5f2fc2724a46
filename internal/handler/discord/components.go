package discord

import (
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/command"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/wizard"
)

// Custom ids. Wizard components carry the session id after the separator.
const (
	idWorkFromSelect = "work_from_select"
	idMoodSelect     = "status_select"
	idProceed        = "proceed_checkin"
	idCheckInModal   = "checkin_modal"
	idCheckOutModal  = "checkout_modal"
	idLeaveModal     = "leave_modal"

	fieldTodayPlan          = "today_plan"
	fieldYesterdayTask      = "yesterday_task"
	fieldAccomplishments    = "accomplishments"
	fieldBlockers           = "blockers"
	fieldTomorrowPriorities = "tomorrow_priorities"
	fieldRating             = "overall_rating"
	fieldLeaveDescription   = "leave_description"

	idSeparator = ":"
)

func withSession(base, sessionID string) string {
	return base + idSeparator + sessionID
}

// splitCustomID returns the component name and the wizard session id, if any.
func splitCustomID(customID string) (string, string) {
	base, sessionID, _ := strings.Cut(customID, idSeparator)
	return base, sessionID
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func workFromSelect(session wizard.Session) discordgo.SelectMenu {
	menu := discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    withSession(idWorkFromSelect, session.ID),
		Placeholder: "Select work location",
	}
	for _, w := range []attendance.WorkLocation{attendance.WorkFromOffice, attendance.WorkFromRemote} {
		menu.Options = append(menu.Options, discordgo.SelectMenuOption{
			Label:   titleCase(string(w)),
			Value:   string(w),
			Default: session.WorkFrom == string(w),
		})
	}
	return menu
}

func moodSelect(session wizard.Session) discordgo.SelectMenu {
	menu := discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    withSession(idMoodSelect, session.ID),
		Placeholder: "How are you feeling today?",
	}
	for _, mood := range attendance.Moods {
		menu.Options = append(menu.Options, discordgo.SelectMenuOption{
			Label:   mood,
			Value:   strings.ToLower(mood),
			Default: strings.EqualFold(session.Mood, mood),
		})
	}
	return menu
}

// checkInComponents renders the wizard for the current session state.
// The mood select appears once a work location is chosen.
func checkInComponents(session wizard.Session) []discordgo.MessageComponent {
	rows := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{workFromSelect(session)}},
	}
	if session.WorkFrom != "" {
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{moodSelect(session)}})
	}
	rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Proceed to Check-in",
			Style:    discordgo.PrimaryButton,
			CustomID: withSession(idProceed, session.ID),
		},
	}})
	return rows
}

func checkInPrompt(session wizard.Session) string {
	switch {
	case session.Complete():
		return `Status selected. Click "Proceed to Check-in" to continue:`
	case session.WorkFrom != "":
		return "Work location selected. Now select how you are feeling today:"
	default:
		return "Please select your work location:"
	}
}

func textInput(id, label, placeholder string, style discordgo.TextInputStyle, required bool) discordgo.ActionsRow {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID:    id,
			Label:       label,
			Style:       style,
			Placeholder: placeholder,
			Required:    required,
		},
	}}
}

func checkInModal(sessionID string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: withSession(idCheckInModal, sessionID),
		Title:    "Daily Check-in",
		Components: []discordgo.MessageComponent{
			textInput(fieldTodayPlan, "What's your plan for today?", "Describe your main tasks and goals for today...", discordgo.TextInputParagraph, true),
			textInput(fieldYesterdayTask, "What did you work on yesterday?", "Briefly describe yesterday's accomplishments...", discordgo.TextInputParagraph, true),
		},
	}
}

func checkOutModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: idCheckOutModal,
		Title:    "Daily Check-out",
		Components: []discordgo.MessageComponent{
			textInput(fieldAccomplishments, "What did you accomplish today?", "List your main accomplishments and completed tasks...", discordgo.TextInputParagraph, true),
			textInput(fieldBlockers, "Any blockers or challenges?", "Describe any obstacles you faced or help you need...", discordgo.TextInputParagraph, false),
			textInput(fieldTomorrowPriorities, "Tomorrow's priorities", "What are your main priorities for tomorrow?", discordgo.TextInputParagraph, true),
			textInput(fieldRating, "Rate your day (1-5)", "Rate your productivity: 1 (Poor) to 5 (Excellent)", discordgo.TextInputShort, true),
		},
	}
}

func leaveModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: idLeaveModal,
		Title:    "Apply for Leave",
		Components: []discordgo.MessageComponent{
			textInput(fieldLeaveDescription, "Leave Description", "Please provide the reason for your leave...", discordgo.TextInputParagraph, true),
		},
	}
}

// modalValues flattens the text inputs of a submitted modal into id -> value.
func modalValues(components []discordgo.MessageComponent) map[string]string {
	values := make(map[string]string)
	for _, c := range components {
		var children []discordgo.MessageComponent
		switch row := c.(type) {
		case *discordgo.ActionsRow:
			children = row.Components
		case discordgo.ActionsRow:
			children = row.Components
		}
		for _, child := range children {
			switch input := child.(type) {
			case *discordgo.TextInput:
				values[input.CustomID] = input.Value
			case discordgo.TextInput:
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}

func replyEmbed(reply command.Reply, now time.Time) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       reply.Title,
		Description: reply.Description,
		Color:       reply.Color,
		Timestamp:   now.Format(time.RFC3339),
	}
	for _, f := range reply.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	if reply.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: reply.Footer}
	}
	return embed
}

// slashCommands are registered on the configured guild at startup.
var slashCommands = []*discordgo.ApplicationCommand{
	{Name: "checkin", Description: "Start the check-in process"},
	{Name: "checkout", Description: "Start the check-out process"},
	{Name: "leave", Description: "Apply for leave for today"},
	{Name: "status", Description: "View your attendance status"},
}
