package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Status   func(StatusArgs) (Result, error)
	Priority func(PriorityArgs) (Result, error)
	Delete   func(DeleteArgs) (Result, error)
	Show     func(ShowArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeStatus:
		if handlers.Status == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "status handler not configured"}
		}
		return handlers.Status(*cmd.Status)
	case TypePriority:
		if handlers.Priority == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "priority handler not configured"}
		}
		return handlers.Priority(*cmd.Priority)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "delete handler not configured"}
		}
		return handlers.Delete(*cmd.Delete)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "show handler not configured"}
		}
		return handlers.Show(*cmd.Show)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
