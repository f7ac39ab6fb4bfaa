// Package task enforces the task lifecycle rules: title validation, owner
// scoping, and the cap of three concurrently active priority tasks.
package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/storage"
)

type Service struct {
	repo storage.Repository

	// ownerMu serializes check-then-write sequences per owner so two racing
	// priority toggles cannot both observe count=2 and jointly exceed the cap.
	mu      sync.Mutex
	ownerMu map[string]*sync.Mutex

	now   func() time.Time
	newID func() string
}

func NewService(repo storage.Repository) *Service {
	return &Service{
		repo:    repo,
		ownerMu: make(map[string]*sync.Mutex),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (s *Service) lockOwner(ownerID string) func() {
	s.mu.Lock()
	mu, ok := s.ownerMu[ownerID]
	if !ok {
		mu = &sync.Mutex{}
		s.ownerMu[ownerID] = mu
	}
	s.mu.Unlock()
	mu.Lock()
	return mu.Unlock
}

func (s *Service) Create(ctx context.Context, ownerID, title string, isPriority bool) (model.Task, error) {
	if strings.TrimSpace(ownerID) == "" {
		return model.Task{}, model.ErrUnauthorized
	}
	title = strings.TrimSpace(title)
	if err := model.ValidateTitle(title); err != nil {
		return model.Task{}, err
	}

	unlock := s.lockOwner(ownerID)
	defer unlock()

	if isPriority {
		count, err := s.repo.CountPriorityActiveTasks(ctx, ownerID, "")
		if err != nil {
			return model.Task{}, storeErr(err)
		}
		if count >= model.MaxActivePriorities {
			return model.Task{}, model.ErrPriorityLimit
		}
	}

	created := model.Task{
		ID:         s.newID(),
		OwnerID:    ownerID,
		Title:      title,
		Status:     model.TaskStatusTodo,
		IsPriority: isPriority,
		CreatedAt:  s.now(),
	}
	if err := s.repo.CreateTask(ctx, toRecord(created)); err != nil {
		return model.Task{}, storeErr(err)
	}
	return created, nil
}

// List returns the owner's tasks in presentation order: priority tasks first,
// newest first within each group, later-created first on timestamp ties.
func (s *Service) List(ctx context.Context, ownerID string) ([]model.Task, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, model.ErrUnauthorized
	}
	records, err := s.repo.FindTasksByOwner(ctx, ownerID)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]model.Task, 0, len(records))
	for _, rec := range records {
		out = append(out, fromRecord(rec))
	}
	return out, nil
}

// SetStatus is a free-form setter over the three statuses. Any transition is
// allowed, including DONE back to DOING; the interaction layer cycles
// TODO -> DOING -> DONE -> TODO but the engine does not restrict it.
func (s *Service) SetStatus(ctx context.Context, id, ownerID string, status model.TaskStatus) (model.Task, error) {
	if strings.TrimSpace(ownerID) == "" {
		return model.Task{}, model.ErrUnauthorized
	}
	if !status.IsValid() {
		return model.Task{}, fmt.Errorf("%w: %q", model.ErrInvalidStatus, status)
	}

	unlock := s.lockOwner(ownerID)
	defer unlock()

	current, err := s.repo.FindTaskByID(ctx, id, ownerID)
	if err != nil {
		return model.Task{}, storeErr(err)
	}
	current.Status = string(status)
	if err := s.repo.UpdateTask(ctx, current); err != nil {
		return model.Task{}, storeErr(err)
	}
	return fromRecord(current), nil
}

// SetPriority toggles the priority flag. Raising it re-checks the cap against
// the owner's other active priorities; lowering it always succeeds.
func (s *Service) SetPriority(ctx context.Context, id, ownerID string, isPriority bool) (model.Task, error) {
	if strings.TrimSpace(ownerID) == "" {
		return model.Task{}, model.ErrUnauthorized
	}

	unlock := s.lockOwner(ownerID)
	defer unlock()

	current, err := s.repo.FindTaskByID(ctx, id, ownerID)
	if err != nil {
		return model.Task{}, storeErr(err)
	}
	if isPriority && !current.IsPriority {
		count, err := s.repo.CountPriorityActiveTasks(ctx, ownerID, id)
		if err != nil {
			return model.Task{}, storeErr(err)
		}
		if count >= model.MaxActivePriorities {
			return model.Task{}, model.ErrPriorityLimit
		}
	}
	current.IsPriority = isPriority
	if err := s.repo.UpdateTask(ctx, current); err != nil {
		return model.Task{}, storeErr(err)
	}
	return fromRecord(current), nil
}

func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return model.ErrUnauthorized
	}
	if err := s.repo.DeleteTask(ctx, id, ownerID); err != nil {
		return storeErr(err)
	}
	return nil
}

func storeErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return model.ErrTaskNotFound
	}
	return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
}

func toRecord(t model.Task) storage.Task {
	return storage.Task{
		ID:         t.ID,
		OwnerID:    t.OwnerID,
		Title:      t.Title,
		Status:     string(t.Status),
		IsPriority: t.IsPriority,
		CreatedAt:  t.CreatedAt,
	}
}

func fromRecord(rec storage.Task) model.Task {
	return model.Task{
		ID:         rec.ID,
		OwnerID:    rec.OwnerID,
		Title:      rec.Title,
		Status:     model.TaskStatus(rec.Status),
		IsPriority: rec.IsPriority,
		CreatedAt:  rec.CreatedAt,
	}
}
