// Package commands parses the textual intents typed into the command
// palette and dispatches them to handlers supplied by the interaction layer.
package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeStatus   Type = "status"
	TypePriority Type = "priority"
	TypeDelete   Type = "delete"
	TypeShow     Type = "show"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs captures `add <title>` and `add! <title>`; the bang flags the new
// task as a priority.
type AddArgs struct {
	Title    string
	Priority bool
}

// StatusArgs targets a task by its 1-based position in the visible list.
type StatusArgs struct {
	Index  int
	Status string
}

type PriorityArgs struct {
	Index int
}

type DeleteArgs struct {
	Index int
}

type ShowArgs struct {
	Subject string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Status   *StatusArgs
	Priority *PriorityArgs
	Delete   *DeleteArgs
	Show     *ShowArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, ":") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, ":"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	if head == "add!" {
		return parseAdd(input, args, true)
	}
	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args, false)
	case TypeStatus:
		return parseStatus(input, args)
	case TypePriority:
		return parsePriority(input, args)
	case TypeDelete:
		return parseDelete(input, args)
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string, priority bool) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title, Priority: priority}}, nil
}

func parseStatus(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "status requires a task number and a status"}
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	status := strings.ToUpper(args[1])
	switch status {
	case "TODO", "DOING", "DONE":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown status: %s", args[1])}
	}
	return Command{Type: TypeStatus, Raw: raw, Status: &StatusArgs{Index: index, Status: status}}, nil
}

func parsePriority(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "priority requires a task number"}
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypePriority, Raw: raw, Priority: &PriorityArgs{Index: index}}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "delete requires a task number"}
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{Index: index}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	subject := strings.ToLower(args[0])
	switch subject {
	case "tasks", "focus", "help":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown subject: %s", args[0])}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject}}, nil
}

func parseIndex(arg string) (int, *CommandError) {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task number: %s", arg)}
	}
	return index, nil
}
