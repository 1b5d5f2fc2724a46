package slack

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/wizard"
	"github.com/cmlabs-hris/attendance-tracker/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/attendance-tracker/internal/service/attendance"
	commandService "github.com/cmlabs-hris/attendance-tracker/internal/service/command"
	employeeService "github.com/cmlabs-hris/attendance-tracker/internal/service/employee"
	leaveService "github.com/cmlabs-hris/attendance-tracker/internal/service/leave"
	settingsService "github.com/cmlabs-hris/attendance-tracker/internal/service/settings"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	channel   string
	user      string
	ephemeral bool
	values    url.Values
}

type fakeAPI struct {
	views    []slack.ModalViewRequest
	messages []sentMessage
	users    []slack.User
}

func (f *fakeAPI) OpenViewContext(_ context.Context, _ string, view slack.ModalViewRequest) (*slack.ViewResponse, error) {
	f.views = append(f.views, view)
	return &slack.ViewResponse{}, nil
}

func (f *fakeAPI) PostEphemeralContext(_ context.Context, channelID, userID string, options ...slack.MsgOption) (string, error) {
	_, values, err := slack.UnsafeApplyMsgOptions("", channelID, "", options...)
	if err != nil {
		return "", err
	}
	f.messages = append(f.messages, sentMessage{channel: channelID, user: userID, ephemeral: true, values: values})
	return "ts", nil
}

func (f *fakeAPI) PostMessageContext(_ context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	_, values, err := slack.UnsafeApplyMsgOptions("", channelID, "", options...)
	if err != nil {
		return "", "", err
	}
	f.messages = append(f.messages, sentMessage{channel: channelID, values: values})
	return channelID, "ts", nil
}

func (f *fakeAPI) GetUsersContext(_ context.Context, _ ...slack.GetUsersOption) ([]slack.User, error) {
	return f.users, nil
}

func (f *fakeAPI) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.messages)
	return f.messages[len(f.messages)-1].values.Get("text")
}

func newTestBot(t *testing.T) (*Bot, *fakeAPI) {
	t.Helper()
	store := memory.NewStore()
	now := time.Date(2024, 7, 15, 9, 30, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	settings := settingsService.NewSettingsService(store.Settings(), store.Transactor())
	attendances := attendanceService.NewAttendanceService(
		store.Attendance(), store.Leaves(), store.Holidays(), store.Employees(), settings, time.UTC, clock,
	)
	leaves := leaveService.NewLeaveService(store.Leaves(), store.Attendance(), settings, time.UTC, clock)
	employees := employeeService.NewEmployeeService(store.Employees(), attendances, leaves)
	commands := commandService.NewCommandService(employees, attendances, leaves, wizard.NewStore(time.Minute), time.UTC, clock)

	api := &fakeAPI{}
	return &Bot{api: api, commands: commands, timeout: time.Second}, api
}

func slashCommand(userID, name string) slack.SlashCommand {
	return slack.SlashCommand{
		Command:   name,
		UserID:    userID,
		UserName:  "user-" + userID,
		ChannelID: "C1",
		TriggerID: "trigger-" + name,
	}
}

func submission(userID, callbackID, metadata string, values map[string]string, selects map[string]string) slack.InteractionCallback {
	state := &slack.ViewState{Values: map[string]map[string]slack.BlockAction{}}
	for blockID, v := range values {
		state.Values[blockID] = map[string]slack.BlockAction{blockID + actionSuffix: {Value: v}}
	}
	for blockID, v := range selects {
		state.Values[blockID] = map[string]slack.BlockAction{
			blockID + actionSuffix: {SelectedOption: slack.OptionBlockObject{Value: v}},
		}
	}
	return slack.InteractionCallback{
		Type: slack.InteractionTypeViewSubmission,
		User: slack.User{ID: userID, Name: "user-" + userID},
		View: slack.View{CallbackID: callbackID, PrivateMetadata: metadata, State: state},
	}
}

func checkIn(t *testing.T, bot *Bot, api *fakeAPI, userID string) {
	t.Helper()
	ctx := context.Background()
	bot.handleSlashCommand(ctx, slashCommand(userID, "/checkin"))
	require.NotEmpty(t, api.views)
	view := api.views[len(api.views)-1]

	resp := bot.handleViewSubmission(ctx, submission(userID, callbackCheckIn, view.PrivateMetadata,
		map[string]string{blockTodayPlan: "Ship the API", blockYesterdayTask: "Reviews"},
		map[string]string{blockWorkFrom: "remote", blockMood: "good"},
	))
	require.Nil(t, resp)
	require.Equal(t, "✅ Check-in Successful!", api.lastText(t))
}

func TestCheckIn_OpensModalAndRecords(t *testing.T) {
	// Setup
	bot, api := newTestBot(t)

	// Act
	checkIn(t, bot, api, "U1")

	// Assert
	view := api.views[0]
	assert.Equal(t, callbackCheckIn, view.CallbackID)
	assert.NotEmpty(t, view.PrivateMetadata)
	last := api.messages[len(api.messages)-1]
	assert.Equal(t, "U1", last.channel)
	assert.False(t, last.ephemeral)
	assert.Contains(t, last.values.Get("blocks"), "Ship the API")
}

func TestCheckIn_Twice(t *testing.T) {
	// Setup
	bot, api := newTestBot(t)
	checkIn(t, bot, api, "U1")

	// Act
	bot.handleSlashCommand(context.Background(), slashCommand("U1", "/checkin"))

	// Assert
	assert.Len(t, api.views, 1)
	last := api.messages[len(api.messages)-1]
	assert.True(t, last.ephemeral)
	assert.Equal(t, "❌ You have already checked in today. You can only check in once per day.", last.values.Get("text"))
}

func TestCheckIn_BlankPlanKeepsModalOpen(t *testing.T) {
	// Setup
	bot, api := newTestBot(t)
	ctx := context.Background()
	bot.handleSlashCommand(ctx, slashCommand("U1", "/checkin"))
	sessionID := api.views[0].PrivateMetadata

	// Act
	resp := bot.handleViewSubmission(ctx, submission("U1", callbackCheckIn, sessionID,
		map[string]string{blockTodayPlan: "  ", blockYesterdayTask: "Reviews"},
		map[string]string{blockWorkFrom: "office", blockMood: "tired"},
	))

	// Assert
	require.NotNil(t, resp)
	assert.Equal(t, slack.RAErrors, resp.ResponseAction)
	assert.Contains(t, resp.Errors, blockTodayPlan)
	assert.Empty(t, api.messages)

	// The session survives so a corrected submission goes through
	resp = bot.handleViewSubmission(ctx, submission("U1", callbackCheckIn, sessionID,
		map[string]string{blockTodayPlan: "Plan", blockYesterdayTask: "Reviews"},
		map[string]string{blockWorkFrom: "office", blockMood: "tired"},
	))
	assert.Nil(t, resp)
	assert.Equal(t, "✅ Check-in Successful!", api.lastText(t))
}

func TestCheckIn_StaleSession(t *testing.T) {
	// Setup
	bot, api := newTestBot(t)
	ctx := context.Background()
	bot.handleSlashCommand(ctx, slashCommand("U1", "/checkin"))
	bot.handleSlashCommand(ctx, slashCommand("U1", "/checkin"))
	stale := api.views[0].PrivateMetadata

	// Act
	resp := bot.handleViewSubmission(ctx, submission("U1", callbackCheckIn, stale,
		map[string]string{blockTodayPlan: "Plan", blockYesterdayTask: "Reviews"},
		map[string]string{blockWorkFrom: "office", blockMood: "good"},
	))

	// Assert
	assert.Nil(t, resp)
	assert.Equal(t, "❌ Missing status or work location. Please start over with /checkin.", api.lastText(t))
}

func TestCheckOut(t *testing.T) {
	// Setup
	bot, api := newTestBot(t)
	ctx := context.Background()

	// Act: unknown user
	bot.handleSlashCommand(ctx, slashCommand("U2", "/checkout"))

	// Assert
	assert.Equal(t, "❌ Please check in first before checking out.", api.lastText(t))
	assert.Empty(t, api.views)

	// Act: checked in
	checkIn(t, bot, api, "U2")
	bot.handleSlashCommand(ctx, slashCommand("U2", "/checkout"))
	require.Len(t, api.views, 2)
	assert.Equal(t, callbackCheckOut, api.views[1].CallbackID)

	resp := bot.handleViewSubmission(ctx, submission("U2", callbackCheckOut, "",
		map[string]string{blockAccomplishments: "Merged", blockTomorrowPriorities: "Tests"},
		map[string]string{blockRating: "4"},
	))

	// Assert
	assert.Nil(t, resp)
	assert.Equal(t, "U2", api.messages[len(api.messages)-1].channel)
	assert.Contains(t, api.messages[len(api.messages)-1].values.Get("blocks"), "Merged")

	// Act: again
	bot.handleSlashCommand(ctx, slashCommand("U2", "/checkout"))

	// Assert
	assert.Equal(t, "❌ You have already checked out today.", api.lastText(t))
}

func TestCheckOut_MissingAccomplishments(t *testing.T) {
	// Setup
	bot, api := newTestBot(t)
	checkIn(t, bot, api, "U3")

	// Act
	resp := bot.handleViewSubmission(context.Background(), submission("U3", callbackCheckOut, "",
		map[string]string{blockAccomplishments: "", blockTomorrowPriorities: "Tests"},
		map[string]string{blockRating: "3"},
	))

	// Assert
	require.NotNil(t, resp)
	assert.Contains(t, resp.Errors, blockAccomplishments)
}

func TestApplyLeave_BlocksCheckIn(t *testing.T) {
	// Setup
	bot, api := newTestBot(t)
	ctx := context.Background()

	// Act
	bot.handleSlashCommand(ctx, slashCommand("U4", "/applyleave"))
	require.Len(t, api.views, 1)
	assert.Equal(t, callbackLeave, api.views[0].CallbackID)
	resp := bot.handleViewSubmission(ctx, submission("U4", callbackLeave, "",
		map[string]string{blockLeaveDescription: "Doctor appointment"}, nil,
	))
	require.Nil(t, resp)

	bot.handleSlashCommand(ctx, slashCommand("U4", "/checkin"))

	// Assert
	assert.Len(t, api.views, 1)
	assert.Equal(t, "❌ You are on leave today. You cannot check in.", api.lastText(t))

	bot.handleSlashCommand(ctx, slashCommand("U4", "/applyleave"))
	assert.Equal(t, "❌ You have already applied for leave today.", api.lastText(t))
}

func TestAskStatus(t *testing.T) {
	// Setup
	bot, api := newTestBot(t)
	checkIn(t, bot, api, "U5")

	// Act
	bot.handleSlashCommand(context.Background(), slashCommand("U5", "/askstatus"))

	// Assert
	last := api.messages[len(api.messages)-1]
	assert.True(t, last.ephemeral)
	assert.Equal(t, "C1", last.channel)
	assert.NotEmpty(t, last.values.Get("blocks"))
}

func TestRecipients_SkipsBotsAndDeleted(t *testing.T) {
	// Setup
	bot, api := newTestBot(t)
	api.users = []slack.User{
		{ID: "U1", Name: "alice"},
		{ID: "B1", Name: "deploybot", IsBot: true},
		{ID: "U2", Name: "gone", Deleted: true},
		{ID: "USLACKBOT", Name: "slackbot"},
	}

	// Act
	recipients, err := bot.Recipients(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, "U1", recipients[0].ID)
	assert.Equal(t, "alice", recipients[0].Name)
}

func TestSendDirect(t *testing.T) {
	// Setup
	bot, api := newTestBot(t)

	// Act
	err := bot.SendDirect(context.Background(), "U9", "Reminder")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "U9", api.messages[0].channel)
	assert.Equal(t, "Reminder", api.lastText(t))
}

func TestStateValues_PrefersSelectedOption(t *testing.T) {
	view := slack.View{State: &slack.ViewState{Values: map[string]map[string]slack.BlockAction{
		blockWorkFrom:  {"a": {SelectedOption: slack.OptionBlockObject{Value: "office"}}},
		blockTodayPlan: {"b": {Value: "Plan"}},
	}}}

	values := stateValues(view)

	assert.Equal(t, "office", values[blockWorkFrom])
	assert.Equal(t, "Plan", values[blockTodayPlan])
	assert.Empty(t, stateValues(slack.View{}))
}
