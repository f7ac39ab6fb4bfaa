package views

import (
	"fmt"
	"strings"
)

type TaskItemData struct {
	Index    int
	Title    string
	Status   string
	Priority bool
	Selected bool
}

type TasksPanelData struct {
	QuickAddView string
	Items        []TaskItemData
}

type FocusPanelData struct {
	Phase           string
	Running         bool
	Timer           string
	ProgressView    string
	ProgressPct     int
	CyclesRun       int
	FocusMinutesRun int
	TodayMinutes    int
	TodayCycles     int
}

type HelpPanelData struct {
	CurrentView string
	HelpView    string
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	if data.QuickAddView != "" {
		b.WriteString(data.QuickAddView + "\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("(no tasks yet; press a to add one)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		b.WriteString(renderTaskLine(item) + "\n")
	}
	b.WriteString("actions: [a]add [enter]status [p]priority [d]delete")
	return strings.TrimSpace(b.String())
}

func renderTaskLine(item TaskItemData) string {
	marker := " "
	if item.Priority {
		marker = priorityStyle.Render("*")
	}
	title := item.Title
	line := fmt.Sprintf("%2d %s %s %s", item.Index, statusGlyph(item.Status), marker, title)
	if item.Status == "DONE" {
		line = doneStyle.Render(line)
	}
	if item.Selected {
		line = selectedStyle.Render("> " + line)
	} else {
		line = "  " + line
	}
	return line
}

func statusGlyph(status string) string {
	switch status {
	case "DOING":
		return "(~)"
	case "DONE":
		return "(x)"
	default:
		return "( )"
	}
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	state := "paused"
	if data.Running {
		state = "running"
	}
	b.WriteString(fmt.Sprintf("phase: %s (%s)\n", strings.ToUpper(data.Phase), state))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("this run: %d cycle(s), %d focused min\n", data.CyclesRun, data.FocusMinutesRun))
	b.WriteString(fmt.Sprintf("today: %d focused min, %d cycle(s)\n", data.TodayMinutes, data.TodayCycles))
	b.WriteString("actions: [space]start/pause [r]reset")
	return strings.TrimSpace(b.String())
}

const helpMarkdown = `# focusd

A daily task list with a Pomodoro timer. Up to three tasks may be marked
as the day's priorities; completed focus periods add to today's totals.

## Palette commands

- ` + "`add <title>`" + ` / ` + "`add! <title>`" + ` (priority)
- ` + "`status <n> <todo|doing|done>`" + `
- ` + "`priority <n>`" + `
- ` + "`delete <n>`" + `
- ` + "`show <tasks|focus|help>`" + `
`

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("%s\ncurrent view: %s\n%s",
		RenderMarkdown(helpMarkdown),
		strings.ToLower(data.CurrentView),
		data.HelpView,
	)
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", inputView)
}
