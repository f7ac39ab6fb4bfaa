package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/commands"
	"github.com/sandeepkv93/focusd/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		next := m.executePaletteCommand()
		return next, nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() Model {
	raw := m.Palette.Input
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			created, err := m.Tasks.Create(context.Background(), m.OwnerID, a.Title, a.Priority)
			if err != nil {
				return commands.Result{}, err
			}
			m.reloadTasks()
			return commands.Result{Message: fmt.Sprintf("added: %s", created.Title)}, nil
		},
		Status: func(a commands.StatusArgs) (commands.Result, error) {
			target, err := m.taskAtIndex(a.Index)
			if err != nil {
				return commands.Result{}, err
			}
			updated, err := m.Tasks.SetStatus(context.Background(), target.ID, m.OwnerID, model.TaskStatus(a.Status))
			if err != nil {
				return commands.Result{}, err
			}
			m.reloadTasks()
			return commands.Result{Message: fmt.Sprintf("%s is now %s", updated.Title, updated.Status)}, nil
		},
		Priority: func(a commands.PriorityArgs) (commands.Result, error) {
			target, err := m.taskAtIndex(a.Index)
			if err != nil {
				return commands.Result{}, err
			}
			updated, err := m.Tasks.SetPriority(context.Background(), target.ID, m.OwnerID, !target.IsPriority)
			if err != nil {
				return commands.Result{}, err
			}
			m.reloadTasks()
			return commands.Result{Message: fmt.Sprintf("%s priority=%v", updated.Title, updated.IsPriority)}, nil
		},
		Delete: func(a commands.DeleteArgs) (commands.Result, error) {
			target, err := m.taskAtIndex(a.Index)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.Tasks.Delete(context.Background(), target.ID, m.OwnerID); err != nil {
				return commands.Result{}, err
			}
			m.reloadTasks()
			return commands.Result{Message: fmt.Sprintf("deleted: %s", target.Title)}, nil
		},
		Show: func(a commands.ShowArgs) (commands.Result, error) {
			switch a.Subject {
			case "tasks":
				m.CurrentView = ViewTasks
			case "focus":
				m.CurrentView = ViewFocus
			case "help":
				m.HelpVisible = true
			}
			return commands.Result{Message: fmt.Sprintf("showing %s", a.Subject)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: statusForError(err), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	return m
}

func (m Model) taskAtIndex(index int) (model.Task, error) {
	if index < 1 || index > len(m.TaskItems) {
		return model.Task{}, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: fmt.Sprintf("no task at position %d", index),
		}
	}
	return m.TaskItems[index-1], nil
}
