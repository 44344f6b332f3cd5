package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DatabaseURL     string
	TemporalAddress string
	HTTPListenAddr  string
	MetricsAddr     string
	LogLevel        string
	ServiceName     string

	// Temporal mTLS. All empty means plaintext.
	TemporalTLSCert       string
	TemporalTLSKey        string
	TemporalTLSCACert     string
	TemporalTLSServerName string

	// SMTP delivery for warning email.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPUseSSL   bool

	// WarningThresholdDays is a comma-separated list of days-before-expiry
	// at which a warning email is sent, e.g. "7,3,1".
	WarningThresholdDays string
	RecomputeCron        string
	WarningCron          string
}

func Load() (*Config, error) {
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("parse SMTP_PORT: %w", err)
	}

	cfg := &Config{
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		TemporalAddress: getEnv("TEMPORAL_ADDRESS", "localhost:7233"),
		HTTPListenAddr:  getEnv("HTTP_LISTEN_ADDR", ":8090"),
		MetricsAddr:     getEnv("METRICS_ADDR", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ServiceName:     getEnv("SERVICE_NAME", ""),

		TemporalTLSCert:       getEnv("TEMPORAL_TLS_CERT", ""),
		TemporalTLSKey:        getEnv("TEMPORAL_TLS_KEY", ""),
		TemporalTLSCACert:     getEnv("TEMPORAL_TLS_CA_CERT", ""),
		TemporalTLSServerName: getEnv("TEMPORAL_TLS_SERVER_NAME", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     smtpPort,
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@localhost"),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Job Board"),
		SMTPUseSSL:   getEnv("SMTP_USE_SSL", "") == "true",

		WarningThresholdDays: getEnv("WARNING_THRESHOLD_DAYS", "7,3,1"),
		RecomputeCron:        getEnv("RECOMPUTE_CRON", "0 4 * * *"),
		WarningCron:          getEnv("WARNING_CRON", "0 6 * * *"),
	}

	return cfg, nil
}

// Validate checks that the fields required by the given service are set.
func (c *Config) Validate(service string) error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("%s: DATABASE_URL is required", service)
	}
	if _, err := c.ThresholdDays(); err != nil {
		return fmt.Errorf("%s: %w", service, err)
	}
	if service == "worker" && c.SMTPHost == "" {
		return fmt.Errorf("worker: SMTP_HOST is required")
	}
	if (c.TemporalTLSCert == "") != (c.TemporalTLSKey == "") {
		return fmt.Errorf("%s: TEMPORAL_TLS_CERT and TEMPORAL_TLS_KEY must both be set", service)
	}
	return nil
}

// ThresholdDays parses WarningThresholdDays into a list of positive day counts.
func (c *Config) ThresholdDays() ([]int, error) {
	parts := strings.Split(c.WarningThresholdDays, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("parse WARNING_THRESHOLD_DAYS %q: %w", p, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("WARNING_THRESHOLD_DAYS must be positive, got %d", d)
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("WARNING_THRESHOLD_DAYS is empty")
	}
	return days, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
