package motion

import (
	"image/color"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Stage is an ebiten.Game that hosts animations: it owns a Scheduler, pumps
// its frame queue once per Update, and draws registered elements.
type Stage struct {
	// TickRate is the number of Update calls per second used to advance the
	// stage clock. 0 means ebiten.TPS().
	TickRate int
	// Background fills the screen before elements are drawn; nil skips it.
	Background color.Color
	// Width and Height fix the logical screen size; 0 follows the window.
	Width, Height int

	sched  *Scheduler
	frames FrameQueue
	now    time.Duration

	elements []*Element
	named    map[string]Playable

	script   *Script
	updateFn func() error
}

// NewStage creates a stage with its own scheduler. The scheduler clock is the
// stage clock, which advances by exactly one tick per Update, so animations
// are frame-rate deterministic.
//
// The first stage created owns DefaultFrames and pumps it from its Update;
// later stages only pump their own queue, so controllers on Default tick once
// per host frame.
func NewStage() *Stage {
	st := &Stage{named: make(map[string]Playable)}
	st.sched = NewScheduler(&st.frames, WithClock(st.clock))
	if defaultFramesOwner == nil {
		defaultFramesOwner = st
	}
	return st
}

// defaultFramesOwner is the stage that pumps DefaultFrames.
var defaultFramesOwner *Stage

func (st *Stage) clock() time.Duration {
	return st.now
}

// Scheduler returns the stage scheduler. Pass it as Config.Scheduler to run
// controllers on the stage clock.
func (st *Stage) Scheduler() *Scheduler {
	return st.sched
}

// Now returns the stage clock.
func (st *Stage) Now() time.Duration {
	return st.now
}

// Update advances the clock by one tick, runs the script step, then pumps
// the frame queues and calls the update func.
func (st *Stage) Update() error {
	rate := st.TickRate
	if rate <= 0 {
		rate = ebiten.TPS()
	}
	st.now += time.Second / time.Duration(rate)

	if st.script != nil {
		if err := st.script.step(st); err != nil {
			return err
		}
	}
	st.frames.Pump()
	if defaultFramesOwner == st {
		DefaultFrames.Pump()
	}

	if st.updateFn != nil {
		return st.updateFn()
	}
	return nil
}

// Draw fills the background and draws every visible element in ZIndex order.
func (st *Stage) Draw(screen *ebiten.Image) {
	if st.Background != nil {
		screen.Fill(st.Background)
	}
	sort.SliceStable(st.elements, func(i, j int) bool {
		return st.elements[i].ZIndex < st.elements[j].ZIndex
	})
	for _, el := range st.elements {
		el.Draw(screen)
	}
}

// Layout implements ebiten.Game.
func (st *Stage) Layout(outsideWidth, outsideHeight int) (int, int) {
	if st.Width > 0 && st.Height > 0 {
		return st.Width, st.Height
	}
	return outsideWidth, outsideHeight
}

// Add appends an element to the draw list. Disposed elements are dropped
// on the next Add or Remove.
func (st *Stage) Add(el *Element) {
	if el == nil {
		panic("motion: cannot add nil element")
	}
	st.compact()
	st.elements = append(st.elements, el)
}

// Remove detaches el from the draw list. No-op if it is not present.
func (st *Stage) Remove(el *Element) {
	for i, e := range st.elements {
		if e == el {
			copy(st.elements[i:], st.elements[i+1:])
			st.elements[len(st.elements)-1] = nil
			st.elements = st.elements[:len(st.elements)-1]
			break
		}
	}
	st.compact()
}

// Elements returns the draw list. The returned slice MUST NOT be mutated.
func (st *Stage) Elements() []*Element {
	return st.elements
}

// compact drops disposed elements.
func (st *Stage) compact() {
	live := st.elements[:0]
	for _, el := range st.elements {
		if !el.IsDisposed() {
			live = append(live, el)
		}
	}
	for i := len(live); i < len(st.elements); i++ {
		st.elements[i] = nil
	}
	st.elements = live
}

// Register names a controller so scripts can address it.
func (st *Stage) Register(name string, p Playable) {
	if p == nil {
		delete(st.named, name)
		return
	}
	st.named[name] = p
}

// Lookup returns the controller registered under name.
func (st *Stage) Lookup(name string) (Playable, bool) {
	p, ok := st.named[name]
	return p, ok
}

// SetScript attaches a frame script; nil detaches it.
func (st *Stage) SetScript(sc *Script) {
	st.script = sc
}

// SetUpdateFunc sets a function called at the end of every Update.
func (st *Stage) SetUpdateFunc(fn func() error) {
	st.updateFn = fn
}

// SetEventSink forwards lifecycle events of controllers on this stage's
// scheduler.
func (st *Stage) SetEventSink(sink EventSink) {
	st.sched.SetEventSink(sink)
}

// SetDebugMode toggles scheduler debug output.
func (st *Stage) SetDebugMode(enabled bool) {
	st.sched.SetDebugMode(enabled)
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
}

// Run opens a window and runs the stage as the ebiten game loop. It blocks
// until the window is closed or Update returns an error.
func Run(st *Stage, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		if st.Width == 0 && st.Height == 0 {
			st.Width, st.Height = cfg.Width, cfg.Height
		}
	}
	return ebiten.RunGame(st)
}
