package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field has a sensible default; only DATABASE_URL is required.
//
// The staleness threshold is deliberately NOT here: it lives in the
// configuracoes table so operators can tune it without a redeploy.
type Config struct {
	// Server
	HTTPPort        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Database
	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// Outbound WhatsApp gateway
	ChannelBaseURL string
	ChannelTimeout time.Duration

	// Portal base for the approve/reject links and the footer
	PortalBaseURL string

	// Maximum reminder sends per minute across the whole run
	SendRatePerMinute int

	// Cron expression for scheduled runs; empty disables the scheduler
	ReminderCron string
}

func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		ReadTimeout:     getDuration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		DatabaseURL: dbURL,
		DBMaxConns:  int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:  int32(getInt("DB_MIN_CONNS", 2)),

		ChannelBaseURL: getEnv("CHANNEL_BASE_URL", "https://hcc.chatconquista.com/functions/send-notification-gestores"),
		ChannelTimeout: getDuration("CHANNEL_TIMEOUT", 10*time.Second),

		PortalBaseURL: getEnv("PORTAL_BASE_URL", "https://hcc.chatconquista.com"),

		SendRatePerMinute: getInt("SEND_RATE_PER_MINUTE", 30),

		ReminderCron: getEnv("REMINDER_CRON", "0 * * * *"),
	}, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
