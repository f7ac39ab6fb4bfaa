package update

import (
	"os"
	"strconv"
	"strings"

	"github.com/sandeepkv93/focusd/internal/cycle"
)

type RuntimeConfig struct {
	FocusSeconds int
	BreakSeconds int
	AlarmBuffer  int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		FocusSeconds: cycle.DefaultFocusSeconds,
		BreakSeconds: cycle.DefaultBreakSeconds,
		AlarmBuffer:  8,
	}
}

// RuntimeConfigFromEnv layers FOCUSD_* overrides onto base. Non-positive
// values are ignored here; cycle.Config.Validate is the hard gate at startup.
func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvInt("FOCUSD_FOCUS_SECONDS"); ok && v > 0 {
		cfg.FocusSeconds = v
	}
	if v, ok := getEnvInt("FOCUSD_BREAK_SECONDS"); ok && v > 0 {
		cfg.BreakSeconds = v
	}
	if v, ok := getEnvInt("FOCUSD_ALARM_BUFFER"); ok && v > 0 {
		cfg.AlarmBuffer = v
	}
	return cfg
}

func (c RuntimeConfig) CycleConfig() cycle.Config {
	return cycle.Config{
		FocusSeconds: c.FocusSeconds,
		BreakSeconds: c.BreakSeconds,
	}
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
