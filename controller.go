package motion

import "time"

// ProgressSink receives every progress update of a Controller. eased is the
// progress after easing, linear the progress before it. Tween and Timeline
// are ProgressSinks; so is any SinkFunc.
type ProgressSink interface {
	Apply(eased, linear float64)
}

// SinkFunc adapts a plain function to ProgressSink.
type SinkFunc func(eased, linear float64)

// Apply calls f(eased, linear).
func (f SinkFunc) Apply(eased, linear float64) { f(eased, linear) }

// Playable is anything backed by a Controller: a bare Controller, a Tween or
// a Timeline.
type Playable interface {
	Base() *Controller
}

// Config holds the options recognized by every controller. The zero value is
// a zero-length, linear, manually started controller on the default
// scheduler.
type Config struct {
	// Duration excludes Delay; Controller.Duration reports both.
	Duration time.Duration
	Delay    time.Duration
	Easing   EasingFunc // nil means Linear
	Reversed bool

	// AutoStart starts the controller at construction.
	AutoStart bool
	// InitSeek seeks to the given progress at construction when > 0.
	InitSeek float64

	// Scheduler drives the controller; nil means Default().
	Scheduler *Scheduler
	// Name is reported in lifecycle events.
	Name string

	// BeforeStart runs on every Start and Resume, after the owner's own
	// start hook (where a tween claims its target) and before the frame task
	// is scheduled.
	BeforeStart func()

	OnStart    func()
	OnPause    func()
	OnResume   func()
	OnStop     func(wasRunning bool)
	OnSeek     func(progress float64)
	OnDelay    func(elapsed time.Duration)
	OnComplete func()
	OnReset    func()
}

// Controller owns one normalized progress value driven by the scheduler
// clock, and the pause/seek/reverse/resolve state machine shared by every
// animation.
//
// Lifecycle: idle -> running <-> paused -> resolved. Stop returns a running
// or paused controller to idle without completing it; Reset clears the
// resolved flag for replay. Once resolved, Seek is a no-op so late frames
// cannot resurrect a finished run.
type Controller struct {
	cfg   Config
	name  string
	sched *Scheduler
	sink  ProgressSink

	duration time.Duration
	delay    time.Duration
	easing   EasingFunc

	reversed   bool
	paused     bool
	resolved   bool
	overridden bool

	raw      float64 // clamped seek input, delay included
	progress float64 // linear progress after the delay remap and reversal
	eased    float64

	task  *Task
	thens []func()

	// Hooks installed by Tween and Timeline.
	startHook   func(resuming bool)
	settleHook  func()
	reverseHook func()
	resetHook   func(silent bool)
}

// NewController creates a controller that hands every progress update to
// sink. sink may be nil for a controller that only reports callbacks.
func NewController(cfg Config, sink ProgressSink) *Controller {
	c := newController(cfg, sink)
	c.init()
	return c
}

func newController(cfg Config, sink ProgressSink) *Controller {
	c := &Controller{
		cfg:      cfg,
		name:     cfg.Name,
		sched:    cfg.Scheduler,
		sink:     sink,
		duration: max(cfg.Duration, 0),
		delay:    max(cfg.Delay, 0),
		easing:   cfg.Easing,
		reversed: cfg.Reversed,
	}
	if c.sched == nil {
		c.sched = Default()
	}
	if c.easing == nil {
		c.easing = Linear
	}
	if c.reversed {
		c.progress = 1
		c.eased = 1
	}
	return c
}

// init applies InitSeek and AutoStart once the owner has installed its hooks.
func (c *Controller) init() {
	if c.cfg.InitSeek > 0 {
		c.Seek(c.cfg.InitSeek)
	}
	if c.cfg.AutoStart {
		c.Start()
	}
}

// Base returns c.
func (c *Controller) Base() *Controller {
	return c
}

// Start runs the controller from the beginning. It is a no-op while the
// controller is owned by a Timeline.
func (c *Controller) Start() {
	c.start(0, false)
}

func (c *Controller) start(from time.Duration, silent bool) {
	if c.overridden {
		return
	}
	if c.startHook != nil {
		c.startHook(silent)
	}
	if c.cfg.BeforeStart != nil {
		c.cfg.BeforeStart()
	}
	c.resolved = false
	c.paused = false
	if c.task != nil {
		c.task.Kill()
	}

	origin := c.sched.Now()
	c.task = c.sched.Schedule(func(_, now time.Duration, _ func()) {
		if c.paused {
			return
		}
		total := c.Duration()
		if total <= 0 {
			c.Seek(1)
			return
		}
		c.Seek(float64(from+now-origin) / float64(total))
	})

	if !silent {
		if c.cfg.OnStart != nil {
			c.cfg.OnStart()
		}
		c.sched.emit(EventStart, c)
	}
}

// Pause freezes a running controller at its current progress.
func (c *Controller) Pause() {
	if c.paused || c.task == nil {
		return
	}
	c.task.Kill()
	c.task = nil
	c.paused = true
	if c.cfg.OnPause != nil {
		c.cfg.OnPause()
	}
	c.sched.emit(EventPause, c)
}

// Resume continues a paused controller from exactly where it was paused.
// Controllers owned by a Timeline cannot be resumed on their own.
func (c *Controller) Resume() {
	if !c.paused || c.overridden {
		return
	}
	c.paused = false
	c.start(c.Passed(), true)
	if c.cfg.OnResume != nil {
		c.cfg.OnResume()
	}
	c.sched.emit(EventResume, c)
}

// Stop halts a running or paused controller without completing it. OnStop
// receives whether a frame task was live. Stopping an idle controller does
// nothing.
func (c *Controller) Stop() {
	wasRunning := c.task != nil
	if !wasRunning && !c.paused {
		return
	}
	if c.task != nil {
		c.task.Kill()
		c.task = nil
	}
	c.paused = false
	c.settle()
	if c.cfg.OnStop != nil {
		c.cfg.OnStop(wasRunning)
	}
	c.sched.emit(EventStop, c)
}

// Seek moves to progress (clamped to [0, 1], delay included). While progress
// is inside the delay window only OnDelay fires.
func (c *Controller) Seek(progress float64) {
	c.seek(progress, false)
}

// SeekNoDelay moves to progress ignoring the delay window: progress maps
// straight onto the active phase.
func (c *Controller) SeekNoDelay(progress float64) {
	c.seek(progress, true)
}

func (c *Controller) seek(progress float64, noDelay bool) {
	if c.resolved {
		return
	}
	raw := clamp01(progress)
	c.raw = raw
	if c.cfg.OnSeek != nil {
		c.cfg.OnSeek(raw)
	}

	linear := raw
	if c.delay > 0 && !noDelay {
		total := float64(c.Duration())
		threshold := float64(c.delay) / total
		if raw < threshold {
			if c.cfg.OnDelay != nil {
				c.cfg.OnDelay(time.Duration(raw * total))
			}
			return
		}
		// Zero-length delayed controllers complete at the end of the delay.
		if threshold >= 1 {
			linear = 1
		} else {
			linear = (raw - threshold) / (1 - threshold)
		}
	}
	if c.reversed {
		linear = 1 - linear
	}

	eased := c.easing(linear)
	c.progress = linear
	c.eased = eased
	task := c.task
	if c.sink != nil {
		c.sink.Apply(eased, linear)
	}

	// The sink may have stopped or resolved the controller.
	if c.resolved || (task != nil && c.task != task) {
		return
	}
	if (!c.reversed && linear >= 1) || (c.reversed && linear <= 0) {
		c.complete()
	}
}

func (c *Controller) complete() {
	if c.task != nil {
		c.task.Kill()
		c.task = nil
	}
	c.resolve()
}

// resolve marks the controller finished and releases Then callbacks.
func (c *Controller) resolve() {
	if c.resolved {
		panic("motion: controller resolved twice")
	}
	c.resolved = true
	c.paused = false
	c.settle()
	if c.cfg.OnComplete != nil {
		c.cfg.OnComplete()
	}
	c.sched.emit(EventComplete, c)

	thens := c.thens
	c.thens = nil
	for _, fn := range thens {
		fn()
	}
}

// Then registers fn to run once when the controller resolves. If it already
// has, fn runs immediately.
func (c *Controller) Then(fn func()) {
	if c.resolved {
		fn()
		return
	}
	c.thens = append(c.thens, fn)
}

// Reset clears the resolved state, stops any live task and seeks to 0.
func (c *Controller) Reset() {
	c.ResetTo(0, false)
}

// ResetTo is Reset with an explicit target. A negative seekTo skips the seek;
// silent suppresses OnReset.
func (c *Controller) ResetTo(seekTo float64, silent bool) {
	c.resolved = false
	c.paused = false
	if c.task != nil {
		c.task.Kill()
		c.task = nil
	}
	c.settle()
	c.raw = 0
	c.progress = 0
	if c.reversed {
		c.progress = 1
	}
	c.eased = c.progress
	if c.resetHook != nil {
		c.resetHook(silent)
	}
	if seekTo >= 0 {
		c.seek(seekTo, false)
	}
	if !silent {
		if c.cfg.OnReset != nil {
			c.cfg.OnReset()
		}
		c.sched.emit(EventReset, c)
	}
}

// Reverse toggles the playback direction.
func (c *Controller) Reverse() {
	c.reversed = !c.reversed
	if c.reverseHook != nil {
		c.reverseHook()
	}
}

func (c *Controller) settle() {
	if c.settleHook != nil {
		c.settleHook()
	}
}

// takeOver hands control to an owning Timeline: the controller stops its own
// task and ignores Start until released.
func (c *Controller) takeOver() {
	if c.task != nil {
		c.task.Kill()
		c.task = nil
	}
	c.overridden = true
	c.paused = true
}

// Progress returns the linear progress of the active phase, reversal applied.
func (c *Controller) Progress() float64 { return c.progress }

// Eased returns Progress after easing.
func (c *Controller) Eased() float64 { return c.eased }

// RawProgress returns the last clamped Seek input, delay included.
func (c *Controller) RawProgress() float64 { return c.raw }

// Passed returns the elapsed run time corresponding to RawProgress.
func (c *Controller) Passed() time.Duration {
	return time.Duration(c.raw * float64(c.Duration()))
}

// Duration returns the configured duration plus the delay.
func (c *Controller) Duration() time.Duration { return c.duration + c.delay }

// Delay returns the configured delay.
func (c *Controller) Delay() time.Duration { return c.delay }

// Complete reports whether the controller has resolved.
func (c *Controller) Complete() bool { return c.resolved }

// Paused reports whether the controller is paused.
func (c *Controller) Paused() bool { return c.paused }

// Reversed reports whether the controller plays backwards.
func (c *Controller) Reversed() bool { return c.reversed }

// Running reports whether the controller has a live frame task.
func (c *Controller) Running() bool { return c.task != nil }

// Name returns Config.Name.
func (c *Controller) Name() string { return c.name }

// Scheduler returns the scheduler driving the controller.
func (c *Controller) Scheduler() *Scheduler { return c.sched }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
