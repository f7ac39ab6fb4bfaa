package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is the durable store collaborator. Task reads are always scoped
// by owner; an id that exists under another owner is indistinguishable from a
// missing one. UpsertDailyRecord must be atomic per (owner, day): two
// concurrent calls may never create two rows for the same day.
type Repository interface {
	CreateTask(ctx context.Context, in Task) error
	FindTaskByID(ctx context.Context, id, ownerID string) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, id, ownerID string) error
	FindTasksByOwner(ctx context.Context, ownerID string) ([]Task, error)

	// CountPriorityActiveTasks counts the owner's priority tasks whose
	// status is not DONE. excludeID, when non-empty, removes that task from
	// its own count so a toggle does not count itself.
	CountPriorityActiveTasks(ctx context.Context, ownerID, excludeID string) (int, error)

	FindDailyRecord(ctx context.Context, ownerID string, day time.Time) (DailySession, error)
	UpsertDailyRecord(ctx context.Context, in DailySession) (DailySession, error)
}
