package model

import "errors"

var (
	ErrUnauthorized     = errors.New("model: owner identity is required")
	ErrTitleRequired    = errors.New("model: task title is required")
	ErrTitleTooLong     = errors.New("model: task title exceeds the maximum length")
	ErrInvalidStatus    = errors.New("model: invalid task status")
	ErrTaskNotFound     = errors.New("model: task not found")
	ErrPriorityLimit    = errors.New("model: active priority limit reached")
	ErrStoreUnavailable = errors.New("model: store unavailable")
)
