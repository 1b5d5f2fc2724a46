package command

import (
	"github.com/cmlabs-hris/attendance-tracker/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/wizard"
)

type Platform string

const (
	PlatformDiscord Platform = "discord"
	PlatformSlack   Platform = "slack"
)

// User is the chat account issuing a command.
type User struct {
	Platform    Platform
	ID          string
	Username    string
	DisplayName string
}

func (u User) Profile() employee.PlatformProfile {
	display := u.DisplayName
	if display == "" {
		display = u.Username
	}
	return employee.PlatformProfile{
		PlatformID:  u.ID,
		Username:    u.Username,
		DisplayName: display,
	}
}

func (u User) WizardKey() string {
	return wizard.Key(string(u.Platform), u.ID)
}

func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// Embed colors
const (
	ColorCheckIn  = 0x00ff00
	ColorCheckOut = 0xff6600
	ColorInfo     = 0x0099ff
)

type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Reply is a platform-neutral rich message. Adapters render it as a Discord embed or Slack blocks.
type Reply struct {
	Title       string
	Description string
	Fields      []Field
	Color       int
	Footer      string
}

// Action names the command a failure happened in, so messages can be phrased for it.
type Action string

const (
	ActionCheckIn  Action = "check-in"
	ActionCheckOut Action = "check-out"
	ActionLeave    Action = "leave application"
	ActionStatus   Action = "status"
)
