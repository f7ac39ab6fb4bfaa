package scheduler

import (
	"errors"
	"testing"
	"time"
)

func TestEngineFiresInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Alarm{ID: "later", Kind: KindMidnight, At: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Alarm{ID: "sooner", Kind: KindMidnight, At: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitAlarm(t, engine.C(), time.Second)
	second := waitAlarm(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	at := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Alarm{ID: "alarm", At: at}); err != nil {
			t.Fatalf("schedule alarm: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped alarms > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesAlarmTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Alarm{ID: "bad"}); !errors.Is(err, ErrInvalidAlarmTime) {
		t.Fatalf("expected ErrInvalidAlarmTime, got %v", err)
	}
}

func TestStopIsIdempotentAndSilencesAlarms(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	if err := engine.Schedule(Alarm{ID: "pending", At: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	engine.Stop()
	engine.Stop()

	select {
	case alarm, ok := <-engine.C():
		if ok {
			t.Fatalf("no alarm expected after stop, got %s", alarm.ID)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("output channel should be closed after stop")
	}
}

func waitAlarm(t *testing.T, ch <-chan Alarm, timeout time.Duration) Alarm {
	t.Helper()
	select {
	case alarm := <-ch:
		return alarm
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for alarm")
		return Alarm{}
	}
}
