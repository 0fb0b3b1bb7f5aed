package config

import (
	"os"
	"strconv"
	"time"
)

// Config collects every environment-tunable knob. Defaults match the demo's
// behavior: 300-second sessions ticking once a second, loans approved after
// 2.5 seconds.
type Config struct {
	Port              string
	FrontendURL       string
	SessionTTLSeconds int
	TickInterval      time.Duration
	LoanApprovalDelay time.Duration
}

func Load() *Config {
	return &Config{
		Port:              envString("PORT", "8080"),
		FrontendURL:       envString("FRONTEND_URL", "http://localhost:3000"),
		SessionTTLSeconds: envInt("SESSION_TTL_SECONDS", 300),
		TickInterval:      time.Second,
		LoanApprovalDelay: time.Duration(envInt("LOAN_APPROVAL_DELAY_MS", 2500)) * time.Millisecond,
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}
