package update

import (
	"errors"
	"fmt"

	"github.com/sandeepkv93/focusd/internal/model"
)

func formatDuration(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	min := totalSec / 60
	sec := totalSec % 60
	return fmt.Sprintf("%02d:%02d", min, sec)
}

// statusForError maps domain errors onto status-bar wording; anything
// unrecognized is shown verbatim.
func statusForError(err error) string {
	switch {
	case errors.Is(err, model.ErrTitleRequired):
		return "task title is required"
	case errors.Is(err, model.ErrTitleTooLong):
		return fmt.Sprintf("task title is limited to %d characters", model.TitleMaxLen)
	case errors.Is(err, model.ErrPriorityLimit):
		return fmt.Sprintf("priority limit reached (max %d active)", model.MaxActivePriorities)
	case errors.Is(err, model.ErrTaskNotFound):
		return "task not found"
	case errors.Is(err, model.ErrUnauthorized):
		return "no owner identity configured"
	case errors.Is(err, model.ErrStoreUnavailable):
		return "store unavailable: " + err.Error()
	default:
		return err.Error()
	}
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}
