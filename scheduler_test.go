package motion

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

// testClock is a manually advanced clock driving a scheduler with Tick.
type testClock struct {
	now   time.Duration
	sched *Scheduler
}

func newTestScheduler() (*Scheduler, *testClock) {
	clk := &testClock{}
	clk.sched = NewScheduler(nil, WithClock(func() time.Duration { return clk.now }))
	return clk.sched, clk
}

// advance moves the clock forward by d and runs one tick.
func (c *testClock) advance(d time.Duration) {
	c.now += d
	c.sched.Tick(c.now)
}

// run advances in steps of step until total has elapsed.
func (c *testClock) run(total, step time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		c.advance(step)
	}
}

func TestScheduleStartsRunning(t *testing.T) {
	q := &FrameQueue{}
	s := NewScheduler(q)
	if s.Running() {
		t.Fatal("new scheduler should be idle")
	}
	s.Schedule(func(_, _ time.Duration, _ func()) {})
	if !s.Running() {
		t.Fatal("scheduler should run after Schedule")
	}
	if q.Pending() != 1 {
		t.Errorf("Pending = %d, want 1 frame request", q.Pending())
	}

	// A second task must not request a second frame.
	s.Schedule(func(_, _ time.Duration, _ func()) {})
	if q.Pending() != 1 {
		t.Errorf("Pending = %d after second Schedule, want 1", q.Pending())
	}
}

func TestTickPassesDeltaAndNow(t *testing.T) {
	s, clk := newTestScheduler()

	var deltas, nows []time.Duration
	s.Schedule(func(delta, now time.Duration, _ func()) {
		deltas = append(deltas, delta)
		nows = append(nows, now)
	})

	clk.advance(16 * time.Millisecond)
	clk.advance(10 * time.Millisecond)

	if len(deltas) != 2 {
		t.Fatalf("callback ran %d times, want 2", len(deltas))
	}
	if deltas[0] != 16*time.Millisecond || deltas[1] != 10*time.Millisecond {
		t.Errorf("deltas = %v, want [16ms 10ms]", deltas)
	}
	if nows[1] != 26*time.Millisecond {
		t.Errorf("now = %v, want 26ms", nows[1])
	}
}

func TestKillFromCallback(t *testing.T) {
	s, clk := newTestScheduler()

	calls := 0
	s.Schedule(func(_, _ time.Duration, kill func()) {
		calls++
		kill()
	})
	clk.advance(time.Millisecond)
	clk.advance(time.Millisecond)

	if calls != 1 {
		t.Errorf("killed task ran %d times, want 1", calls)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
	if s.Running() {
		t.Error("scheduler should be idle once empty")
	}
}

func TestKillOtherTaskDuringTick(t *testing.T) {
	s, clk := newTestScheduler()

	var second *Task
	secondCalls := 0
	thirdCalls := 0
	s.Schedule(func(_, _ time.Duration, _ func()) {
		second.Kill()
	})
	second = s.Schedule(func(_, _ time.Duration, _ func()) { secondCalls++ })
	s.Schedule(func(_, _ time.Duration, _ func()) { thirdCalls++ })

	clk.advance(time.Millisecond)

	if secondCalls != 0 {
		t.Errorf("task killed earlier in the tick ran %d times", secondCalls)
	}
	if thirdCalls != 1 {
		t.Errorf("task after the killed one ran %d times, want 1", thirdCalls)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2 after sweep", s.Len())
	}
	if !second.Dead() {
		t.Error("second task should report Dead")
	}
}

func TestScheduleDuringTickRunsNextTick(t *testing.T) {
	s, clk := newTestScheduler()

	inner := 0
	s.Schedule(func(_, _ time.Duration, kill func()) {
		s.Schedule(func(_, _ time.Duration, kill func()) {
			inner++
			kill()
		})
		kill()
	})

	clk.advance(time.Millisecond)
	if inner != 0 {
		t.Fatalf("task scheduled mid-tick ran in the same tick")
	}
	clk.advance(time.Millisecond)
	if inner != 1 {
		t.Errorf("inner ran %d times, want 1", inner)
	}
}

func TestKillAllGoesIdleOnNextTick(t *testing.T) {
	q := &FrameQueue{}
	var now time.Duration
	s := NewScheduler(q, WithClock(func() time.Duration { return now }))

	calls := 0
	for i := 0; i < 3; i++ {
		s.Schedule(func(_, _ time.Duration, _ func()) { calls++ })
	}

	now = 16 * time.Millisecond
	q.Pump()
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}

	s.KillAll()
	if !s.Running() {
		t.Error("KillAll should not stop the scheduler before the next tick")
	}

	now = 32 * time.Millisecond
	q.Pump()
	if calls != 3 {
		t.Errorf("dead tasks ran: calls = %d", calls)
	}
	if s.Running() {
		t.Error("scheduler should be idle after the tick that observed no live tasks")
	}
	if q.Pending() != 0 {
		t.Errorf("idle scheduler requested %d frames", q.Pending())
	}
}

func TestFrameQueueDrivesScheduler(t *testing.T) {
	q := &FrameQueue{}
	var now time.Duration
	s := NewScheduler(q, WithClock(func() time.Duration { return now }))

	var total time.Duration
	s.Schedule(func(delta, _ time.Duration, kill func()) {
		total += delta
		if total >= 50*time.Millisecond {
			kill()
		}
	})

	frames := 0
	for q.Pending() > 0 {
		now += 10 * time.Millisecond
		q.Pump()
		frames++
		if frames > 100 {
			t.Fatal("scheduler never went idle")
		}
	}
	if frames != 5 {
		t.Errorf("frames = %d, want 5", frames)
	}
	if total != 50*time.Millisecond {
		t.Errorf("total = %v, want 50ms", total)
	}
}

func TestFrozenStopsFrameRequests(t *testing.T) {
	q := &FrameQueue{}
	var now time.Duration
	s := NewScheduler(q, WithClock(func() time.Duration { return now }))
	s.SetFrozen(true)

	calls := 0
	s.Schedule(func(_, _ time.Duration, _ func()) { calls++ })
	if q.Pending() != 0 {
		t.Fatalf("frozen scheduler requested a frame")
	}

	now = 10 * time.Millisecond
	s.Tick(now)
	if calls != 1 {
		t.Errorf("manual Tick while frozen: calls = %d, want 1", calls)
	}

	s.SetFrozen(false)
	if q.Pending() != 1 {
		t.Errorf("unfreezing should request a frame, Pending = %d", q.Pending())
	}
}

func TestTaskPanicPropagates(t *testing.T) {
	s, clk := newTestScheduler()
	s.Schedule(func(_, _ time.Duration, _ func()) {
		panic("boom")
	})

	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recovered %v, want boom", r)
		}
	}()
	clk.advance(time.Millisecond)
	t.Fatal("panic was swallowed")
}

func TestDefaultSchedulerIsShared(t *testing.T) {
	if Default() != Default() {
		t.Error("Default should return the same scheduler")
	}
}

func TestSchedulerDebugOutput(t *testing.T) {
	s, clk := newTestScheduler()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	s.Schedule(func(_, _ time.Duration, kill func()) { kill() })
	clk.advance(time.Millisecond)

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if !strings.Contains(output, "[motion] tick") || !strings.Contains(output, "swept: 1") {
		t.Errorf("expected tick stats in stderr, got: %q", output)
	}
}

func TestSchedulerTaskCountWarning(t *testing.T) {
	s, _ := newTestScheduler()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	for i := 0; i < debugMaxTasks+1; i++ {
		s.Schedule(func(_, _ time.Duration, _ func()) {})
	}

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	if !strings.Contains(buf.String(), "warning: scheduler has") {
		t.Errorf("expected task count warning, got: %q", buf.String())
	}
}

func BenchmarkSchedulerTick(b *testing.B) {
	s, _ := newTestScheduler()
	for i := 0; i < 100; i++ {
		s.Schedule(func(_, _ time.Duration, _ func()) {})
	}
	var now time.Duration
	b.ReportAllocs()
	for b.Loop() {
		now += time.Millisecond
		s.Tick(now)
	}
}
