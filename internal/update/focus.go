package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/cycle"
	"github.com/sandeepkv93/focusd/internal/views"
)

func (m Model) handleFocusKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if m.Cycle.Running() {
			m.Cycle.Pause()
			m.TickSeq++
			m.Status = StatusBar{Text: "timer paused"}
			return m, nil
		}
		m.Cycle.Start()
		m.TickSeq++
		m.Status = StatusBar{Text: "timer running"}
		return m, focusTickCmd(m.TickSeq)
	case "r":
		m.Cycle.Reset()
		m.TickSeq++
		m.Status = StatusBar{Text: "timer reset"}
		return m, nil
	}
	return m, nil
}

// onFocusTick advances the countdown by one second. Ticks stamped with an
// old sequence were scheduled before a pause/reset and are discarded, which
// is what makes cancellation instantaneous.
func (m Model) onFocusTick(msg FocusTickMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.TickSeq {
		return m, nil
	}
	if !m.Cycle.Running() {
		return m, nil
	}

	ev, completed := m.Cycle.Tick()
	if completed {
		m.reportCycle(ev)
	}
	if m.Cycle.Running() {
		return m, focusTickCmd(m.TickSeq)
	}
	return m, nil
}

func (m *Model) reportCycle(ev cycle.Event) {
	rec, err := m.Sessions.ReportCycle(context.Background(), m.OwnerID, ev.FocusSecondsCompleted, ev.CyclesCompletedRun)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: statusForError(err), IsError: true}
		return
	}
	m.Today = rec
	m.Status = StatusBar{Text: "focus cycle complete; break started"}
}

func focusTickCmd(seq int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return FocusTickMsg{Seq: seq} })
}

func (m Model) renderFocusPane() string {
	return views.RenderFocusPanel(views.FocusPanelData{
		Phase:           string(m.Cycle.Mode()),
		Running:         m.Cycle.Running(),
		Timer:           formatDuration(m.Cycle.Remaining()),
		ProgressView:    m.focusProgress.ViewAs(m.Cycle.Progress()),
		ProgressPct:     int(m.Cycle.Progress() * 100),
		CyclesRun:       m.Cycle.Cycles(),
		FocusMinutesRun: m.Cycle.FocusSecondsAccum() / 60,
		TodayMinutes:    m.Today.FocusMinutes,
		TodayCycles:     m.Today.CyclesCompleted,
	})
}
