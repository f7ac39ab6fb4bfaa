package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/storage"
)

// fakeRepo implements only the daily-record half of the repository with the
// store's contractual merge semantics: minutes add, cycles overwrite, one row
// per (owner, day).
type fakeRepo struct {
	mu      sync.Mutex
	records map[string]storage.DailySession
	err     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string]storage.DailySession)}
}

func dayKey(ownerID string, day time.Time) string {
	return ownerID + "|" + day.Format("2006-01-02")
}

func (f *fakeRepo) FindDailyRecord(_ context.Context, ownerID string, day time.Time) (storage.DailySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return storage.DailySession{}, f.err
	}
	rec, ok := f.records[dayKey(ownerID, day)]
	if !ok {
		return storage.DailySession{}, storage.ErrNotFound
	}
	return rec, nil
}

func (f *fakeRepo) UpsertDailyRecord(_ context.Context, in storage.DailySession) (storage.DailySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return storage.DailySession{}, f.err
	}
	key := dayKey(in.OwnerID, in.Day)
	rec, ok := f.records[key]
	if !ok {
		rec = storage.DailySession{OwnerID: in.OwnerID, Day: in.Day}
	}
	rec.FocusMinutes += in.FocusMinutes
	rec.CyclesCompleted = in.CyclesCompleted
	f.records[key] = rec
	return rec, nil
}

func (f *fakeRepo) CreateTask(context.Context, storage.Task) error { return nil }
func (f *fakeRepo) FindTaskByID(context.Context, string, string) (storage.Task, error) {
	return storage.Task{}, storage.ErrNotFound
}
func (f *fakeRepo) UpdateTask(context.Context, storage.Task) error { return nil }
func (f *fakeRepo) DeleteTask(context.Context, string, string) error {
	return storage.ErrNotFound
}
func (f *fakeRepo) FindTasksByOwner(context.Context, string) ([]storage.Task, error) {
	return nil, nil
}
func (f *fakeRepo) CountPriorityActiveTasks(context.Context, string, string) (int, error) {
	return 0, nil
}

func newTestService(repo storage.Repository, at time.Time) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return at }
	return svc
}

func TestGetTodayZeroValuedWhenEmpty(t *testing.T) {
	at := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeRepo(), at)

	rec, err := svc.GetToday(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("get today: %v", err)
	}
	if rec.FocusMinutes != 0 || rec.CyclesCompleted != 0 {
		t.Fatalf("expected zero-valued record, got %#v", rec)
	}
	if !rec.Day.Equal(model.DayOf(at)) {
		t.Fatalf("record day = %v, want %v", rec.Day, model.DayOf(at))
	}
}

func TestReportCycleAdditiveMinutesOverwrittenCycles(t *testing.T) {
	at := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeRepo(), at)
	ctx := context.Background()

	rec, err := svc.ReportCycle(ctx, "owner-1", 1500, 1)
	if err != nil {
		t.Fatalf("first report: %v", err)
	}
	if rec.FocusMinutes != 25 || rec.CyclesCompleted != 1 {
		t.Fatalf("first report: got {%d, %d}, want {25, 1}", rec.FocusMinutes, rec.CyclesCompleted)
	}

	// Second report the same day: minutes are additive, the cycle count is
	// the authoritative run total, not a sum.
	rec, err = svc.ReportCycle(ctx, "owner-1", 1500, 2)
	if err != nil {
		t.Fatalf("second report: %v", err)
	}
	if rec.FocusMinutes != 50 {
		t.Fatalf("minutes must accumulate: got %d, want 50", rec.FocusMinutes)
	}
	if rec.CyclesCompleted != 2 {
		t.Fatalf("cycles must be overwritten: got %d, want 2", rec.CyclesCompleted)
	}

	// A fresh run reporting a lower total wins too: last write, not max.
	rec, err = svc.ReportCycle(ctx, "owner-1", 1500, 1)
	if err != nil {
		t.Fatalf("third report: %v", err)
	}
	if rec.FocusMinutes != 75 || rec.CyclesCompleted != 1 {
		t.Fatalf("third report: got {%d, %d}, want {75, 1}", rec.FocusMinutes, rec.CyclesCompleted)
	}
}

func TestReportCycleFloorsPartialMinutes(t *testing.T) {
	at := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeRepo(), at)

	rec, err := svc.ReportCycle(context.Background(), "owner-1", 119, 1)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if rec.FocusMinutes != 1 {
		t.Fatalf("119 seconds must floor to 1 minute, got %d", rec.FocusMinutes)
	}
}

func TestReportCycleOpensNewDayAfterMidnight(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	evening := time.Date(2026, 8, 30, 23, 50, 0, 0, time.UTC)
	svc.now = func() time.Time { return evening }
	if _, err := svc.ReportCycle(ctx, "owner-1", 1500, 3); err != nil {
		t.Fatalf("evening report: %v", err)
	}

	pastMidnight := time.Date(2026, 8, 31, 0, 10, 0, 0, time.UTC)
	svc.now = func() time.Time { return pastMidnight }
	rec, err := svc.ReportCycle(ctx, "owner-1", 1500, 4)
	if err != nil {
		t.Fatalf("post-midnight report: %v", err)
	}
	if rec.FocusMinutes != 25 || rec.CyclesCompleted != 4 {
		t.Fatalf("post-midnight report must open a new record, got %#v", rec)
	}

	rec, err = svc.GetToday(ctx, "owner-1")
	if err != nil {
		t.Fatalf("get today: %v", err)
	}
	if rec.FocusMinutes != 25 {
		t.Fatalf("today must reflect only the new day, got %d minutes", rec.FocusMinutes)
	}
}

func TestOwnersAreIsolated(t *testing.T) {
	at := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeRepo(), at)
	ctx := context.Background()

	if _, err := svc.ReportCycle(ctx, "owner-1", 1500, 1); err != nil {
		t.Fatalf("report: %v", err)
	}
	rec, err := svc.GetToday(ctx, "owner-2")
	if err != nil {
		t.Fatalf("get today: %v", err)
	}
	if rec.FocusMinutes != 0 {
		t.Fatalf("owner-2 must not see owner-1 minutes, got %d", rec.FocusMinutes)
	}
}

func TestUnauthorizedWithoutOwner(t *testing.T) {
	svc := newTestService(newFakeRepo(), time.Now())
	if _, err := svc.GetToday(context.Background(), " "); !errors.Is(err, model.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got: %v", err)
	}
	if _, err := svc.ReportCycle(context.Background(), "", 1500, 1); !errors.Is(err, model.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got: %v", err)
	}
}

func TestStoreFailureSurfacesAsUnavailable(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errors.New("connection reset")
	svc := newTestService(repo, time.Now())

	if _, err := svc.GetToday(context.Background(), "owner-1"); !errors.Is(err, model.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got: %v", err)
	}
	if _, err := svc.ReportCycle(context.Background(), "owner-1", 1500, 1); !errors.Is(err, model.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got: %v", err)
	}
}
