package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/cmlabs-hris/attendance-tracker/internal/config"
	"github.com/cmlabs-hris/attendance-tracker/internal/handler/discord"
	"github.com/cmlabs-hris/attendance-tracker/internal/handler/slack"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/logger"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/wizard"
	"github.com/cmlabs-hris/attendance-tracker/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-tracker/internal/service/attendance"
	commandService "github.com/cmlabs-hris/attendance-tracker/internal/service/command"
	employeeService "github.com/cmlabs-hris/attendance-tracker/internal/service/employee"
	holidayService "github.com/cmlabs-hris/attendance-tracker/internal/service/holiday"
	leaveService "github.com/cmlabs-hris/attendance-tracker/internal/service/leave"
	settingsService "github.com/cmlabs-hris/attendance-tracker/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	logger.New(cfg.App.LogLevel, cfg.App.Env)

	if err := cfg.ValidateBot(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("Invalid timezone", "timezone", cfg.App.Timezone, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	transactor := postgresql.NewTransactor(db)

	settingsSvc := settingsService.NewSettingsService(settingsRepo, transactor)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, leaveRepo, holidayRepo, employeeRepo, settingsSvc, loc, nil)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, attendanceRepo, settingsSvc, loc, nil)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, attendanceSvc, leaveSvc)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	commandSvc := commandService.NewCommandService(employeeSvc, attendanceSvc, leaveSvc, wizard.NewStore(cfg.Wizard.TTL), loc, nil)

	var (
		notifiers []cron.Notifier
		wg        sync.WaitGroup
	)

	if cfg.DiscordEnabled() {
		discordBot, err := discord.NewBot(cfg.Discord.Token, cfg.Discord.GuildID, commandSvc)
		if err != nil {
			slog.Error("Failed to create Discord bot", "error", err)
			os.Exit(1)
		}
		if err := discordBot.Open(); err != nil {
			slog.Error("Failed to connect to Discord", "error", err)
			os.Exit(1)
		}
		defer discordBot.Close()
		notifiers = append(notifiers, discordBot)
	}

	if cfg.SlackEnabled() {
		slackBot := slack.NewBot(cfg.Slack.BotToken, cfg.Slack.AppToken, commandSvc)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := slackBot.Run(ctx); err != nil {
				slog.Error("Slack bot stopped", "error", err)
				stop()
			}
		}()
		notifiers = append(notifiers, slackBot)
	}

	scheduler := cron.NewScheduler(loc)
	reminders := cron.NewReminderJobs(employeeSvc, attendanceSvc, holidaySvc, notifiers, loc, nil)
	if err := reminders.RegisterJobs(scheduler, cfg.Reminder.CheckInSpec, cfg.Reminder.CheckOutSpec); err != nil {
		slog.Error("Failed to register reminder jobs", "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	slog.Info("Attendance bot running", "discord", cfg.DiscordEnabled(), "slack", cfg.SlackEnabled(), "timezone", loc.String())
	<-ctx.Done()

	slog.Info("Shutting down bot...")
	scheduler.Stop()
	wg.Wait()
}
