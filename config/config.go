package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env         string `env:"ENV, default=development"`
	Port        string `env:"PORT, default=8080"`
	DatabaseURL string `env:"DATABASE_URL, required"`
	JWTSecret   string `env:"JWT_SECRET, required"`
	// TokenExpiryMin is the session token lifetime; tokens cannot be revoked
	// before it elapses.
	TokenExpiryMin int    `env:"TOKEN_EXPIRY_MINUTES, default=180"`
	LogLevel       string `env:"LOG_LEVEL, default=info"`
	LogPretty      bool   `env:"LOG_PRETTY, default=false"`

	Schedule ScheduleConfig
}

// ScheduleConfig describes the bookable working day. Slot instants are stored
// in UTC; Timezone only affects how slot labels render.
type ScheduleConfig struct {
	StartHour    int    `env:"SCHEDULE_START_HOUR, default=9"`
	EndHour      int    `env:"SCHEDULE_END_HOUR, default=20"`
	SlotMinutes  int    `env:"SCHEDULE_SLOT_MINUTES, default=45"`
	TimezoneName string `env:"SCHEDULE_TIMEZONE, default=UTC"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Schedule.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s ScheduleConfig) validate() error {
	if s.StartHour < 0 || s.EndHour > 24 || s.StartHour >= s.EndHour {
		return fmt.Errorf("invalid schedule window %d-%d", s.StartHour, s.EndHour)
	}
	if s.SlotMinutes <= 0 {
		return fmt.Errorf("invalid slot duration %d minutes", s.SlotMinutes)
	}
	if _, err := time.LoadLocation(s.TimezoneName); err != nil {
		return fmt.Errorf("invalid schedule timezone %q: %w", s.TimezoneName, err)
	}
	return nil
}

// SlotDuration returns the slot width as a duration.
func (s ScheduleConfig) SlotDuration() time.Duration {
	return time.Duration(s.SlotMinutes) * time.Minute
}

// Location resolves the display timezone. Validated at load time, so the
// second lookup cannot fail.
func (s ScheduleConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.TimezoneName)
	if err != nil {
		return time.UTC
	}
	return loc
}
