package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/views"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		m.CaptureMode = true
		m.quickAddInput.SetValue("")
		m.quickAddInput.Focus()
		m.Status = StatusBar{Text: "add task; enter to save, esc to cancel"}
	case "j", "down":
		m.Cursor = clampCursor(m.Cursor+1, len(m.TaskItems))
	case "k", "up":
		m.Cursor = clampCursor(m.Cursor-1, len(m.TaskItems))
	case "enter", "s":
		m.cycleSelectedStatus()
	case "p":
		m.toggleSelectedPriority()
	case "d":
		m.deleteSelected()
	}
	return m, nil
}

func (m Model) handleQuickAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.CaptureMode = false
		m.quickAddInput.Blur()
		m.Status = StatusBar{Text: "add canceled"}
		return m, nil
	case "enter":
		title := m.quickAddInput.Value()
		m.CaptureMode = false
		m.quickAddInput.Blur()
		m.quickAddInput.SetValue("")
		m.addTask(title)
		return m, nil
	}
	var cmd tea.Cmd
	m.quickAddInput, cmd = m.quickAddInput.Update(msg)
	return m, cmd
}

// addTask creates a task from quick-add input. A trailing "!" is the
// keyboard stand-in for the priority checkbox.
func (m *Model) addTask(input string) {
	title := strings.TrimSpace(input)
	priority := false
	if strings.HasSuffix(title, "!") {
		priority = true
		title = strings.TrimSpace(strings.TrimSuffix(title, "!"))
	}

	created, err := m.Tasks.Create(context.Background(), m.OwnerID, title, priority)
	if err != nil {
		m.Status = StatusBar{Text: statusForError(err), IsError: true}
		return
	}
	m.reloadTasks()
	m.Status = StatusBar{Text: fmt.Sprintf("added: %s", created.Title)}
}

func (m *Model) selectedTask() (model.Task, bool) {
	if len(m.TaskItems) == 0 {
		return model.Task{}, false
	}
	return m.TaskItems[clampCursor(m.Cursor, len(m.TaskItems))], true
}

func (m *Model) cycleSelectedStatus() {
	current, ok := m.selectedTask()
	if !ok {
		return
	}
	next := current.Status.Next()
	updated, err := m.Tasks.SetStatus(context.Background(), current.ID, m.OwnerID, next)
	if err != nil {
		m.Status = StatusBar{Text: statusForError(err), IsError: true}
		return
	}
	m.reloadTasks()
	m.Status = StatusBar{Text: fmt.Sprintf("%s is now %s", updated.Title, updated.Status)}
}

func (m *Model) toggleSelectedPriority() {
	current, ok := m.selectedTask()
	if !ok {
		return
	}
	updated, err := m.Tasks.SetPriority(context.Background(), current.ID, m.OwnerID, !current.IsPriority)
	if err != nil {
		m.Status = StatusBar{Text: statusForError(err), IsError: true}
		return
	}
	m.reloadTasks()
	if updated.IsPriority {
		m.Status = StatusBar{Text: fmt.Sprintf("%s marked as priority", updated.Title)}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("%s is no longer a priority", updated.Title)}
	}
}

func (m *Model) deleteSelected() {
	current, ok := m.selectedTask()
	if !ok {
		return
	}
	if err := m.Tasks.Delete(context.Background(), current.ID, m.OwnerID); err != nil {
		m.Status = StatusBar{Text: statusForError(err), IsError: true}
		return
	}
	m.reloadTasks()
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", current.Title)}
}

func (m Model) renderTasksPane() string {
	items := make([]views.TaskItemData, 0, len(m.TaskItems))
	for i, task := range m.TaskItems {
		items = append(items, views.TaskItemData{
			Index:    i + 1,
			Title:    task.Title,
			Status:   string(task.Status),
			Priority: task.IsPriority,
			Selected: i == m.Cursor && m.CurrentView == ViewTasks,
		})
	}
	quickAdd := ""
	if m.CaptureMode {
		quickAdd = m.quickAddInput.View()
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		QuickAddView: quickAdd,
		Items:        items,
	})
}
