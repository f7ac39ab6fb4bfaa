package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

type TaskStatus string

const (
	TaskStatusTodo  TaskStatus = "TODO"
	TaskStatusDoing TaskStatus = "DOING"
	TaskStatusDone  TaskStatus = "DONE"
)

// MaxActivePriorities caps how many non-DONE tasks per owner may carry the
// priority flag at the same time.
const MaxActivePriorities = 3

// TitleMaxLen is measured in runes, not bytes.
const TitleMaxLen = 100

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusDoing, TaskStatusDone:
		return true
	default:
		return false
	}
}

// Next returns the status the interaction layer cycles to:
// TODO -> DOING -> DONE -> TODO.
func (s TaskStatus) Next() TaskStatus {
	switch s {
	case TaskStatusTodo:
		return TaskStatusDoing
	case TaskStatusDoing:
		return TaskStatusDone
	default:
		return TaskStatusTodo
	}
}

type Task struct {
	ID         string
	OwnerID    string
	Title      string
	Status     TaskStatus
	IsPriority bool
	CreatedAt  time.Time
}

// ActivePriority reports whether the task counts against the priority cap.
// A DONE task may keep its priority flag but is excluded from the count.
func (t Task) ActivePriority() bool {
	return t.IsPriority && t.Status != TaskStatusDone
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.OwnerID) == "" {
		return ErrUnauthorized
	}
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	return nil
}

// ValidateTitle checks the already-trimmed title the engine stores.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > TitleMaxLen {
		return fmt.Errorf("%w: %d runes", ErrTitleTooLong, utf8.RuneCountInString(title))
	}
	return nil
}
