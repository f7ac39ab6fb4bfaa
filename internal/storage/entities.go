package storage

import "time"

type Task struct {
	ID         string
	OwnerID    string
	Title      string
	Status     string
	IsPriority bool
	CreatedAt  time.Time
}

// DailySession passed to UpsertDailyRecord carries delta semantics for
// FocusMinutes (added to the stored value) and absolute semantics for
// CyclesCompleted (overwrites the stored value). Reads return stored values.
type DailySession struct {
	OwnerID         string
	Day             time.Time
	FocusMinutes    int
	CyclesCompleted int
}
