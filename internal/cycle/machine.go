// Package cycle implements the focus/break countdown state machine. The
// machine is driven by an external 1-second tick and owns no goroutine or
// timer itself: pausing the tick source is all it takes to freeze it.
package cycle

import "errors"

var ErrInvalidDuration = errors.New("cycle: phase durations must be positive")

type Mode string

const (
	ModeFocus Mode = "FOCUS"
	ModeBreak Mode = "BREAK"
)

const (
	DefaultFocusSeconds = 1500
	DefaultBreakSeconds = 300
)

type Config struct {
	FocusSeconds int
	BreakSeconds int
}

func DefaultConfig() Config {
	return Config{
		FocusSeconds: DefaultFocusSeconds,
		BreakSeconds: DefaultBreakSeconds,
	}
}

// Validate rejects malformed durations up front; ticking never errors.
func (c Config) Validate() error {
	if c.FocusSeconds <= 0 || c.BreakSeconds <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// Event is emitted once per completed focus period. CyclesCompletedRun is the
// cumulative count for the current run, not a delta.
type Event struct {
	FocusSecondsCompleted int
	CyclesCompletedRun    int
}

type Machine struct {
	cfg        Config
	mode       Mode
	remaining  int
	running    bool
	cycles     int
	focusAccum int
}

func New(cfg Config) (Machine, error) {
	if err := cfg.Validate(); err != nil {
		return Machine{}, err
	}
	return Machine{
		cfg:       cfg,
		mode:      ModeFocus,
		remaining: cfg.FocusSeconds,
	}, nil
}

func (m *Machine) Start() { m.running = true }
func (m *Machine) Pause() { m.running = false }

// Reset returns to the initial state and discards the run counters. The
// persisted daily totals are untouched; only the aggregator holds those.
func (m *Machine) Reset() {
	m.mode = ModeFocus
	m.remaining = m.cfg.FocusSeconds
	m.running = false
	m.cycles = 0
	m.focusAccum = 0
}

// Tick advances the countdown by one second. It is a no-op while paused. A
// focus period hitting zero reports a completed cycle and flows straight into
// a running break; a break hitting zero flows back into focus silently.
func (m *Machine) Tick() (Event, bool) {
	if !m.running {
		return Event{}, false
	}
	if m.remaining > 0 {
		m.remaining--
	}
	if m.remaining > 0 {
		return Event{}, false
	}

	if m.mode == ModeFocus {
		m.cycles++
		m.focusAccum += m.cfg.FocusSeconds
		m.mode = ModeBreak
		m.remaining = m.cfg.BreakSeconds
		return Event{
			FocusSecondsCompleted: m.cfg.FocusSeconds,
			CyclesCompletedRun:    m.cycles,
		}, true
	}
	m.mode = ModeFocus
	m.remaining = m.cfg.FocusSeconds
	return Event{}, false
}

func (m Machine) Mode() Mode             { return m.mode }
func (m Machine) Remaining() int         { return m.remaining }
func (m Machine) Running() bool          { return m.running }
func (m Machine) Cycles() int            { return m.cycles }
func (m Machine) FocusSecondsAccum() int { return m.focusAccum }

// PhaseDuration is the full length of the current phase in seconds.
func (m Machine) PhaseDuration() int {
	if m.mode == ModeBreak {
		return m.cfg.BreakSeconds
	}
	return m.cfg.FocusSeconds
}

// Progress is the elapsed fraction of the current phase, for display.
func (m Machine) Progress() float64 {
	duration := m.PhaseDuration()
	return float64(duration-m.remaining) / float64(duration)
}
