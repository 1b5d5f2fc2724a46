package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Admin    AdminConfig
	Discord  DiscordConfig
	Slack    SlackConfig
	Reminder ReminderConfig
	Wizard   WizardConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	Timezone    string
	CORSOrigins []string
}

// AdminConfig is the bootstrap dashboard account created on first start.
type AdminConfig struct {
	Username string
	Password string
}

type DiscordConfig struct {
	Token   string
	GuildID string
}

type SlackConfig struct {
	BotToken string
	AppToken string
}

// ReminderConfig holds the cron specs of the reminder DMs, evaluated in App.Timezone.
type ReminderConfig struct {
	CheckInSpec  string
	CheckOutSpec string
}

type WizardConfig struct {
	TTL time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance_tracker"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "3005"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Timezone:    getEnv("TIMEZONE", "Asia/Kathmandu"),
		CORSOrigins: getEnvSlice("CORS_ORIGINS"),
	}
	if len(config.App.CORSOrigins) == 0 {
		config.App.CORSOrigins = []string{"http://localhost:3000"}
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
	}

	config.Admin = AdminConfig{
		Username: getEnv("ADMIN_USERNAME", "admin"),
		Password: getEnv("ADMIN_PASSWORD", ""),
	}

	config.Discord = DiscordConfig{
		Token:   getEnv("DISCORD_TOKEN", ""),
		GuildID: getEnv("DISCORD_GUILD_ID", getEnv("GUILD_ID", "")),
	}

	config.Slack = SlackConfig{
		BotToken: getEnv("SLACK_BOT_TOKEN", ""),
		AppToken: getEnv("SLACK_APP_TOKEN", ""),
	}

	// Sunday to Friday, Saturday is the weekly holiday
	config.Reminder = ReminderConfig{
		CheckInSpec:  getEnv("REMINDER_CHECKIN_CRON", "55 9 * * 0-5"),
		CheckOutSpec: getEnv("REMINDER_CHECKOUT_CRON", "55 16 * * 0-5"),
	}

	wizardTTL, err := time.ParseDuration(getEnv("WIZARD_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid WIZARD_TTL: %w", err)
	}
	config.Wizard = WizardConfig{TTL: wizardTTL}

	if _, err := time.ParseDuration(config.JWT.AccessExpiration); err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := config.Location(); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	return config, nil
}

// Validate validates the configuration required by the API process
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return nil
}

// ValidateBot validates the configuration required by the bot process
func (c *Config) ValidateBot() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if !c.DiscordEnabled() && !c.SlackEnabled() {
		return fmt.Errorf("DISCORD_TOKEN or SLACK_BOT_TOKEN/SLACK_APP_TOKEN is required")
	}
	if c.DiscordEnabled() && c.Discord.GuildID == "" {
		return fmt.Errorf("DISCORD_GUILD_ID is required when DISCORD_TOKEN is set")
	}
	return nil
}

func (c *Config) DiscordEnabled() bool {
	return c.Discord.Token != ""
}

func (c *Config) SlackEnabled() bool {
	return c.Slack.BotToken != "" && c.Slack.AppToken != ""
}

// Location returns the timezone in which calendar days are evaluated
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.App.Timezone)
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
