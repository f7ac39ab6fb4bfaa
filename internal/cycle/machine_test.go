package cycle

import (
	"errors"
	"testing"
)

func newMachine(t *testing.T) Machine {
	t.Helper()
	m, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("new machine: %v", err)
	}
	return m
}

func tickN(m *Machine, n int) (events []Event) {
	for i := 0; i < n; i++ {
		if ev, ok := m.Tick(); ok {
			events = append(events, ev)
		}
	}
	return events
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"defaults", DefaultConfig(), true},
		{"custom", Config{FocusSeconds: 60, BreakSeconds: 10}, true},
		{"zero focus", Config{FocusSeconds: 0, BreakSeconds: 300}, false},
		{"negative break", Config{FocusSeconds: 1500, BreakSeconds: -1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidDuration) {
				t.Fatalf("expected ErrInvalidDuration, got: %v", err)
			}
		})
	}
}

func TestInitialState(t *testing.T) {
	m := newMachine(t)
	if m.Mode() != ModeFocus || m.Remaining() != DefaultFocusSeconds || m.Running() {
		t.Fatalf("unexpected initial state: mode=%s remaining=%d running=%v", m.Mode(), m.Remaining(), m.Running())
	}
	if m.Cycles() != 0 || m.FocusSecondsAccum() != 0 {
		t.Fatal("run counters must start at zero")
	}
}

func TestFullFocusPeriodEmitsOneEvent(t *testing.T) {
	m := newMachine(t)
	m.Start()

	events := tickN(&m, DefaultFocusSeconds)
	if len(events) != 1 {
		t.Fatalf("expected exactly one cycle-complete event, got %d", len(events))
	}
	ev := events[0]
	if ev.FocusSecondsCompleted != DefaultFocusSeconds {
		t.Fatalf("event focus seconds = %d, want %d", ev.FocusSecondsCompleted, DefaultFocusSeconds)
	}
	if ev.CyclesCompletedRun != 1 {
		t.Fatalf("event cycle count = %d, want 1", ev.CyclesCompletedRun)
	}

	if m.Mode() != ModeBreak || m.Remaining() != DefaultBreakSeconds {
		t.Fatalf("expected BREAK/%d after focus period, got %s/%d", DefaultBreakSeconds, m.Mode(), m.Remaining())
	}
	if !m.Running() {
		t.Fatal("running flag must survive the phase switch")
	}

	// The break completes silently and returns to a fresh focus phase.
	events = tickN(&m, DefaultBreakSeconds)
	if len(events) != 0 {
		t.Fatalf("break completion must not emit events, got %d", len(events))
	}
	if m.Mode() != ModeFocus || m.Remaining() != DefaultFocusSeconds {
		t.Fatalf("expected FOCUS/%d after break, got %s/%d", DefaultFocusSeconds, m.Mode(), m.Remaining())
	}
}

func TestSecondCycleReportsCumulativeCount(t *testing.T) {
	m := newMachine(t)
	m.Start()

	tickN(&m, DefaultFocusSeconds+DefaultBreakSeconds)
	events := tickN(&m, DefaultFocusSeconds)
	if len(events) != 1 {
		t.Fatalf("expected one event from second focus period, got %d", len(events))
	}
	if events[0].CyclesCompletedRun != 2 {
		t.Fatalf("second event must carry run total 2, got %d", events[0].CyclesCompletedRun)
	}
	if m.FocusSecondsAccum() != 2*DefaultFocusSeconds {
		t.Fatalf("accumulated focus seconds = %d, want %d", m.FocusSecondsAccum(), 2*DefaultFocusSeconds)
	}
}

func TestPauseFreezesCountdown(t *testing.T) {
	m := newMachine(t)
	m.Start()
	tickN(&m, 800)
	m.Pause()

	// Ticks while paused must not decrement anything.
	tickN(&m, 500)
	if m.Remaining() != DefaultFocusSeconds-800 {
		t.Fatalf("paused countdown moved: remaining=%d", m.Remaining())
	}

	m.Start()
	events := tickN(&m, DefaultFocusSeconds-800)
	if len(events) != 1 {
		t.Fatalf("resumed period must complete with one event, got %d", len(events))
	}
}

func TestStartAndPauseAreIdempotent(t *testing.T) {
	m := newMachine(t)
	m.Start()
	m.Start()
	tickN(&m, 10)
	m.Pause()
	m.Pause()
	if m.Remaining() != DefaultFocusSeconds-10 {
		t.Fatalf("remaining = %d, want %d", m.Remaining(), DefaultFocusSeconds-10)
	}
}

func TestResetDiscardsRunCounters(t *testing.T) {
	m := newMachine(t)
	m.Start()
	tickN(&m, DefaultFocusSeconds+42)

	m.Reset()
	if m.Mode() != ModeFocus || m.Remaining() != DefaultFocusSeconds || m.Running() {
		t.Fatalf("unexpected state after reset: mode=%s remaining=%d running=%v", m.Mode(), m.Remaining(), m.Running())
	}
	if m.Cycles() != 0 || m.FocusSecondsAccum() != 0 {
		t.Fatal("reset must discard run counters")
	}
}

func TestProgress(t *testing.T) {
	m, err := New(Config{FocusSeconds: 100, BreakSeconds: 50})
	if err != nil {
		t.Fatalf("new machine: %v", err)
	}
	if m.Progress() != 0 {
		t.Fatalf("initial progress = %f, want 0", m.Progress())
	}
	m.Start()
	tickN(&m, 25)
	if m.Progress() != 0.25 {
		t.Fatalf("progress after 25/100 = %f, want 0.25", m.Progress())
	}
	tickN(&m, 75) // completes focus, now at break start
	if m.Mode() != ModeBreak || m.Progress() != 0 {
		t.Fatalf("break must start at zero progress, got %s/%f", m.Mode(), m.Progress())
	}
	tickN(&m, 10)
	if m.Progress() != 0.2 {
		t.Fatalf("break progress after 10/50 = %f, want 0.2", m.Progress())
	}
}
