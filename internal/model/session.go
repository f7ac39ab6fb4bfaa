package model

import "time"

// DailySession accumulates completed focus work for one owner on one
// calendar day. Day is local midnight in the clock's location.
type DailySession struct {
	OwnerID         string
	Day             time.Time
	FocusMinutes    int
	CyclesCompleted int
}

// DayOf truncates t to midnight in t's own location. Reports arriving after
// local midnight therefore key a fresh record.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
