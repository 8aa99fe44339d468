package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type DBConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

// DSN builds a go-sql-driver/mysql data source name. parseTime lets DATETIME
// columns scan into time.Time.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", d.User, d.Password, d.Host, d.Port, d.Name)
}

type SMTPConfig struct {
	Host     string
	Port     int
	Email    string
	Password string
}

type Config struct {
	// HTTP Server
	Port     string
	CertFile string
	KeyFile  string

	// Database
	DB DBConfig

	// Auth
	JWTSecret string

	// Mail
	SMTP SMTPConfig

	// Jobs
	ReminderSchedule string
	InsightSchedule  string
	InsightWindow    time.Duration
	LedgerWorkers    int

	// Calendar used for spending buckets
	Timezone string

	// Backend selection
	DataBackend string
	SeedFile    string
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("SERVER_PORT", "3000"),
		CertFile: getEnv("CERT_FILE", ""),
		KeyFile:  getEnv("KEY_FILE", ""),

		DB: DBConfig{
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			Name:     getEnv("DB_NAME", ""),
		},

		JWTSecret: getEnv("JWT_SECRET", ""),

		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Email:    getEnv("SMTP_EMAIL", ""),
			Password: getEnv("SMTP_PASS", ""),
		},

		ReminderSchedule: getEnv("REMINDER_SCHEDULE", "0 0 * * *"),
		InsightSchedule:  getEnv("INSIGHT_SCHEDULE", "0 8 1 * *"),
		InsightWindow:    getEnvDuration("INSIGHT_WINDOW", 30*24*time.Hour),
		LedgerWorkers:    getEnvInt("LEDGER_WORKERS", 4),

		Timezone: getEnv("TIMEZONE", "UTC"),

		DataBackend: getEnv("DATA_BACKEND", "mysql"),
		SeedFile:    getEnv("SEED_FILE", ""),
	}
}

// Location resolves Timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MailEnabled reports whether reminders can actually be delivered.
func (c *Config) MailEnabled() bool {
	return c.SMTP.Host != "" && c.SMTP.Email != ""
}

// Validate returns every configuration problem at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(strings.TrimPrefix(c.Port, ":")); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"mysql", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "mysql" {
		if c.DB.User == "" {
			errors = append(errors, "DB_USER is required when using mysql backend")
		}
		if c.DB.Name == "" {
			errors = append(errors, "DB_NAME is required when using mysql backend")
		}
	}

	if c.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	}

	if (c.CertFile == "") != (c.KeyFile == "") {
		errors = append(errors, "CERT_FILE and KEY_FILE must be set together")
	}

	if _, err := cron.ParseStandard(c.ReminderSchedule); err != nil {
		errors = append(errors, fmt.Sprintf("invalid reminder schedule '%s': %v", c.ReminderSchedule, err))
	}
	if _, err := cron.ParseStandard(c.InsightSchedule); err != nil {
		errors = append(errors, fmt.Sprintf("invalid insight schedule '%s': %v", c.InsightSchedule, err))
	}
	if c.InsightWindow < time.Hour {
		errors = append(errors, fmt.Sprintf("invalid insight window %v: must be at least 1 hour", c.InsightWindow))
	}

	if c.LedgerWorkers < 1 {
		errors = append(errors, fmt.Sprintf("invalid ledger workers %d: must be at least 1", c.LedgerWorkers))
	} else if c.LedgerWorkers > 64 {
		errors = append(errors, fmt.Sprintf("invalid ledger workers %d: must be at most 64", c.LedgerWorkers))
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errors = append(errors, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	if c.SMTP.Host != "" && (c.SMTP.Port < 1 || c.SMTP.Port > 65535) {
		errors = append(errors, fmt.Sprintf("invalid SMTP port %d: must be between 1 and 65535", c.SMTP.Port))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Addr is the listen address for http.Server.
func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
