package update

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/focusd/internal/views"
)

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) helpBindings() []key.Binding {
	global := []key.Binding{
		key.NewBinding(key.WithKeys(m.Keys.Tasks), key.WithHelp(m.Keys.Tasks, "tasks view")),
		key.NewBinding(key.WithKeys(m.Keys.Focus), key.WithHelp(m.Keys.Focus, "focus view")),
		key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command palette")),
		key.NewBinding(key.WithKeys(m.Keys.Help), key.WithHelp(m.Keys.Help, "toggle help")),
		key.NewBinding(key.WithKeys(m.Keys.Quit), key.WithHelp(m.Keys.Quit, "quit")),
	}
	switch m.CurrentView {
	case ViewTasks:
		return append(global,
			key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
			key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter/s", "cycle status")),
			key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "toggle priority")),
			key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
		)
	case ViewFocus:
		return append(global,
			key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
			key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset timer")),
		)
	}
	return global
}
