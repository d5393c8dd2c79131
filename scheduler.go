package motion

import "time"

// TaskFunc is a per-frame callback. delta is the time since the previous
// tick, now is the absolute clock time of this tick, and kill removes the
// task at the end of the tick.
type TaskFunc func(delta, now time.Duration, kill func())

// Task is a handle to one recurring per-frame callback registered on a
// Scheduler.
type Task struct {
	fn   TaskFunc
	dead bool
	kill func()
}

// Kill marks the task dead. The scheduler drops it at the end of the current
// (or next) tick; the callback is never invoked again.
func (t *Task) Kill() {
	t.dead = true
}

// Dead reports whether Kill has been called.
func (t *Task) Dead() bool {
	return t.dead
}

// FrameSource delivers host frame callbacks. RequestFrame schedules fn to run
// once on the next host frame.
type FrameSource interface {
	RequestFrame(fn func())
}

// FrameQueue is a FrameSource backed by a plain callback queue. The host
// calls Pump once per frame; callbacks requested while pumping run on the
// following frame.
type FrameQueue struct {
	pending []func()
	running []func()
}

// RequestFrame queues fn for the next Pump.
func (q *FrameQueue) RequestFrame(fn func()) {
	q.pending = append(q.pending, fn)
}

// Pending returns the number of callbacks waiting for the next Pump.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Pump runs every callback queued before this call.
func (q *FrameQueue) Pump() {
	if len(q.pending) == 0 {
		return
	}
	q.running, q.pending = q.pending, q.running[:0]
	for i, fn := range q.running {
		q.running[i] = nil
		fn()
	}
	q.running = q.running[:0]
}

// DefaultFrames is the frame queue behind Default. Exactly one host must
// pump it once per frame: the first Stage created, or a custom loop when no
// Stage exists.
var DefaultFrames = &FrameQueue{}

var defaultScheduler *Scheduler

// Default returns the process-wide scheduler, creating it on first use.
func Default() *Scheduler {
	if defaultScheduler == nil {
		defaultScheduler = NewScheduler(DefaultFrames)
	}
	return defaultScheduler
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithClock replaces the scheduler clock. Tests use this together with Tick
// for deterministic stepping.
func WithClock(clock func() time.Duration) SchedulerOption {
	return func(s *Scheduler) { s.clock = clock }
}

// Scheduler multiplexes many per-frame tasks onto one host frame callback.
// It requests frames only while at least one live task exists and goes idle
// once empty. It is not safe for concurrent use; everything runs on the
// host's frame thread.
type Scheduler struct {
	source   FrameSource
	clock    func() time.Duration
	tasks    []*Task
	lastTick time.Duration
	running  bool
	frozen   bool
	inFrame  bool
	frameFn  func()
	sink     EventSink

	debug bool
	stats schedulerStats
}

// NewScheduler creates an idle scheduler that requests frames from source.
// A nil source is allowed when the scheduler is only driven by Tick.
func NewScheduler(source FrameSource, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{source: source}
	epoch := time.Now()
	s.clock = func() time.Duration { return time.Since(epoch) }
	for _, opt := range opts {
		opt(s)
	}
	s.frameFn = s.frame
	return s
}

// Schedule registers fn to run once per frame until killed. If the scheduler
// was idle it records the current time as the last tick and starts
// requesting frames.
func (s *Scheduler) Schedule(fn TaskFunc) *Task {
	t := &Task{fn: fn}
	t.kill = t.Kill
	s.tasks = append(s.tasks, t)
	if !s.running {
		s.running = true
		s.lastTick = s.clock()
		s.request()
	}
	if s.debug {
		debugCheckTaskCount(s)
	}
	return t
}

// KillAll marks every task dead. Frames keep being requested until the next
// tick observes the empty set.
func (s *Scheduler) KillAll() {
	for _, t := range s.tasks {
		t.dead = true
	}
}

// SetFrozen stops (true) or restarts (false) automatic frame requests.
// Tick still works while frozen.
func (s *Scheduler) SetFrozen(frozen bool) {
	if s.frozen == frozen {
		return
	}
	s.frozen = frozen
	if !frozen && s.running {
		s.request()
	}
}

// Frozen reports whether automatic frame requests are suspended.
func (s *Scheduler) Frozen() bool {
	return s.frozen
}

// Running reports whether the scheduler has live tasks and is requesting
// frames.
func (s *Scheduler) Running() bool {
	return s.running
}

// Len returns the number of tasks currently held, including tasks killed
// during the current tick that have not been swept yet.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Now returns the scheduler clock.
func (s *Scheduler) Now() time.Duration {
	return s.clock()
}

// SetEventSink sets the receiver for lifecycle events of controllers driven
// by this scheduler. Nil disables events.
func (s *Scheduler) SetEventSink(sink EventSink) {
	s.sink = sink
}

// Tick runs one frame at time now: every task that was live when the tick
// began is invoked with the elapsed time, then dead tasks are swept. Panics
// raised by tasks propagate to the caller.
func (s *Scheduler) Tick(now time.Duration) {
	delta := now - s.lastTick
	s.lastTick = now

	// Tasks scheduled from inside a callback first run on the next tick.
	n := len(s.tasks)
	for i := 0; i < n; i++ {
		t := s.tasks[i]
		if t.dead {
			continue
		}
		t.fn(delta, now, t.kill)
	}

	swept := s.sweep()
	if len(s.tasks) == 0 {
		s.running = false
	}
	if s.debug {
		s.stats.ticks++
		s.stats.swept += swept
		s.debugLog(now, delta, swept)
	}
}

// sweep removes dead tasks in place, keeping insertion order.
func (s *Scheduler) sweep() int {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.dead {
			live = append(live, t)
		}
	}
	swept := len(s.tasks) - len(live)
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
	return swept
}

func (s *Scheduler) request() {
	if s.frozen || s.inFrame || s.source == nil {
		return
	}
	s.inFrame = true
	s.source.RequestFrame(s.frameFn)
}

// frame is the host frame callback.
func (s *Scheduler) frame() {
	s.inFrame = false
	if s.frozen || !s.running {
		return
	}
	s.Tick(s.clock())
	if s.running {
		s.request()
	}
}

func (s *Scheduler) emit(typ EventType, c *Controller) {
	if s.sink == nil {
		return
	}
	s.sink.EmitEvent(Event{Type: typ, Name: c.name, Controller: c})
}
