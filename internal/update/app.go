package update

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/cycle"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/scheduler"
	"github.com/sandeepkv93/focusd/internal/session"
	"github.com/sandeepkv93/focusd/internal/task"
	"github.com/sandeepkv93/focusd/internal/views"
)

type View string

const (
	ViewTasks View = "Tasks"
	ViewFocus View = "Focus"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks string
	Focus string
	Help  string
	Quit  string
}

type PaletteState struct {
	Active bool
	Input  string
}

// Model is the single Bubble Tea model for the app. It owns the cycle
// machine exclusively; engines backed by the store are shared services.
type Model struct {
	CurrentView View
	OwnerID     string

	Tasks    *task.Service
	Sessions *session.Service
	Alarms   *scheduler.Engine

	TaskItems []model.Task
	Cursor    int
	Today     model.DailySession
	Cycle     cycle.Machine

	// TickSeq stamps every scheduled focus tick. Bumping it on start, pause
	// and reset makes any tick already in flight stale on arrival, so no
	// residual tick ever advances the countdown.
	TickSeq int

	Palette     PaletteState
	CaptureMode bool
	HelpVisible bool

	quickAddInput textinput.Model
	commandInput  textinput.Model
	focusProgress progress.Model
	helpModel     help.Model

	Status    StatusBar
	Keys      GlobalKeyMap
	Quitting  bool
	LastError error
}

type Deps struct {
	OwnerID  string
	Tasks    *task.Service
	Sessions *session.Service
	Alarms   *scheduler.Engine
	Cycle    cycle.Machine
}

type RefreshMsg struct{}

type FocusTickMsg struct{ Seq int }

type AlarmMsg struct{ Alarm scheduler.Alarm }

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type AppErrorMsg struct{ Err error }

func NewModel(deps Deps) Model {
	quickAdd := textinput.New()
	quickAdd.Placeholder = "task title (trailing ! marks priority)"
	quickAdd.CharLimit = model.TitleMaxLen + 1
	quickAdd.Width = 48

	command := textinput.New()
	command.Placeholder = "add | status | priority | delete | show"
	command.Width = 48

	m := Model{
		CurrentView:   ViewTasks,
		OwnerID:       deps.OwnerID,
		Tasks:         deps.Tasks,
		Sessions:      deps.Sessions,
		Alarms:        deps.Alarms,
		Cycle:         deps.Cycle,
		quickAddInput: quickAdd,
		commandInput:  command,
		focusProgress: progress.New(progress.WithDefaultGradient()),
		helpModel:     help.New(),
		Status:        StatusBar{Text: "ready"},
		Keys:          GlobalKeyMap{Tasks: "1", Focus: "2", Help: "?", Quit: "q"},
	}
	m.scheduleMidnightAlarm()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{func() tea.Msg { return RefreshMsg{} }}
	if m.Alarms != nil {
		cmds = append(cmds, waitForAlarmCmd(m.Alarms.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case RefreshMsg:
		m.reloadTasks()
		m.reloadToday()
		return m, nil

	case FocusTickMsg:
		return m.onFocusTick(typed)

	case AlarmMsg:
		return m.onAlarm(typed.Alarm)

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case AppErrorMsg:
		m.LastError = typed.Err
		m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		return m, nil

	case tea.KeyMsg:
		return m.onKey(typed)
	}
	return m, nil
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.CaptureMode {
		return m.handleQuickAddKey(msg)
	}

	switch msg.String() {
	case ":":
		m.Palette.Active = true
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Tasks:
		m.CurrentView = ViewTasks
		return m, nil
	case m.Keys.Focus:
		m.CurrentView = ViewFocus
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		m.TickSeq++
		return m, tea.Quit
	}

	switch m.CurrentView {
	case ViewTasks:
		return m.handleTasksKey(msg)
	case ViewFocus:
		return m.handleFocusKey(msg)
	}
	return m, nil
}

func (m *Model) reloadTasks() {
	items, err := m.Tasks.List(context.Background(), m.OwnerID)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: statusForError(err), IsError: true}
		return
	}
	m.TaskItems = items
	m.Cursor = clampCursor(m.Cursor, len(items))
}

func (m *Model) reloadToday() {
	rec, err := m.Sessions.GetToday(context.Background(), m.OwnerID)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: statusForError(err), IsError: true}
		return
	}
	m.Today = rec
}

func (m Model) onAlarm(alarm scheduler.Alarm) (tea.Model, tea.Cmd) {
	if alarm.Kind == scheduler.KindMidnight {
		m.reloadToday()
		m.Status = StatusBar{Text: "new day started"}
		m.scheduleMidnightAlarm()
	}
	if m.Alarms != nil {
		return m, waitForAlarmCmd(m.Alarms.C())
	}
	return m, nil
}

func (m *Model) scheduleMidnightAlarm() {
	if m.Alarms == nil {
		return
	}
	next := model.DayOf(time.Now()).AddDate(0, 0, 1)
	err := m.Alarms.Schedule(scheduler.Alarm{
		ID:   fmt.Sprintf("midnight-%s", next.Format("2006-01-02")),
		Kind: scheduler.KindMidnight,
		At:   next,
	})
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: statusForError(err), IsError: true}
	}
}

func waitForAlarmCmd(ch <-chan scheduler.Alarm) tea.Cmd {
	return func() tea.Msg {
		alarm, ok := <-ch
		if !ok {
			return nil
		}
		return AlarmMsg{Alarm: alarm}
	}
}

func (m Model) View() string {
	if m.Quitting {
		return "bye\n"
	}
	if m.HelpVisible {
		return m.renderHelpView()
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("focusd [%s] %s", m.OwnerID, time.Now().Format("Mon Jan 2")),
		LeftPane:   m.renderTasksPane(),
		RightPane:  m.renderFocusPane(),
		StatusLine: m.Status.Text,
		IsError:    m.Status.IsError,
		Footer:     m.footerLine(),
		Palette:    views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()),
	})
}

func (m Model) footerLine() string {
	return "[1]tasks [2]focus [:]command [?]help [q]quit"
}
