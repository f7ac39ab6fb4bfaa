// Package session aggregates completed focus cycles into one record per
// owner per local calendar day.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/storage"
)

type Service struct {
	repo storage.Repository
	now  func() time.Time
}

func NewService(repo storage.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// GetToday returns the current day's record, zero-valued when nothing has
// been reported yet.
func (s *Service) GetToday(ctx context.Context, ownerID string) (model.DailySession, error) {
	if strings.TrimSpace(ownerID) == "" {
		return model.DailySession{}, model.ErrUnauthorized
	}
	day := model.DayOf(s.now())
	rec, err := s.repo.FindDailyRecord(ctx, ownerID, day)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.DailySession{OwnerID: ownerID, Day: day}, nil
		}
		return model.DailySession{}, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return fromRecord(rec), nil
}

// ReportCycle folds one completed focus period into today's record. Focus
// minutes accumulate across reports; the cycle count is the run's latest
// total and overwrites the stored value rather than adding to it. Both
// semantics are deliberate and must not be normalized to match each other.
func (s *Service) ReportCycle(ctx context.Context, ownerID string, focusSecondsCompleted, cyclesCompletedRun int) (model.DailySession, error) {
	if strings.TrimSpace(ownerID) == "" {
		return model.DailySession{}, model.ErrUnauthorized
	}
	if focusSecondsCompleted < 0 {
		focusSecondsCompleted = 0
	}
	rec, err := s.repo.UpsertDailyRecord(ctx, storage.DailySession{
		OwnerID:         ownerID,
		Day:             model.DayOf(s.now()),
		FocusMinutes:    focusSecondsCompleted / 60,
		CyclesCompleted: cyclesCompletedRun,
	})
	if err != nil {
		return model.DailySession{}, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	return fromRecord(rec), nil
}

func fromRecord(rec storage.DailySession) model.DailySession {
	return model.DailySession{
		OwnerID:         rec.OwnerID,
		Day:             rec.Day,
		FocusMinutes:    rec.FocusMinutes,
		CyclesCompleted: rec.CyclesCompleted,
	}
}
