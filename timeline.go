package motion

import "time"

// TimelineItem is one entry of a Timeline. Offset places the item relative to
// its predecessor, as a fraction of the predecessor's duration: 0 starts when
// the predecessor ends, -1 starts together with it, 1 leaves a gap of one
// predecessor duration.
type TimelineItem struct {
	Controller Playable
	Offset     float64
}

// TimelineConfig holds the options of a Timeline on top of Config.
// Config.Duration is ignored: a timeline's duration is derived from its items.
type TimelineConfig struct {
	Config
	Items []TimelineItem
}

type timelineItem struct {
	p      Playable
	c      *Controller
	offset float64
	start  time.Duration
}

// Timeline is a controller that drives other controllers. Children never run
// their own frame tasks; the timeline seeks each of them with a local
// progress derived from its own.
type Timeline struct {
	*Controller
	items []timelineItem
}

// NewTimeline creates a timeline holding cfg.Items in order.
func NewTimeline(cfg TimelineConfig) *Timeline {
	tl := &Timeline{}
	base := cfg.Config
	base.Duration = 0
	tl.Controller = newController(base, tl)
	tl.startHook = tl.beforeStart
	tl.reverseHook = tl.propagateReverse
	tl.resetHook = tl.propagateReset
	for _, it := range cfg.Items {
		tl.Add(it.Controller, it.Offset)
	}
	tl.init()
	return tl
}

// Add appends p to the timeline. The child is taken over: it stops its own
// task, ignores Start, and follows the timeline's direction.
func (tl *Timeline) Add(p Playable, offset float64) {
	if p == nil {
		panic("motion: cannot add nil controller to timeline")
	}
	c := p.Base()
	if c == nil {
		panic("motion: cannot add nil controller to timeline")
	}
	if c == tl.Controller {
		panic("motion: cannot add a timeline to itself")
	}
	c.takeOver()
	if tl.reversed && !c.reversed {
		c.Reverse()
	}
	tl.items = append(tl.items, timelineItem{p: p, c: c, offset: clampOffset(offset)})
	tl.layout()
}

// SetOffset changes the offset of item i and reflows every later item.
func (tl *Timeline) SetOffset(i int, offset float64) {
	if i < 0 || i >= len(tl.items) {
		panic("motion: timeline item index out of range")
	}
	tl.items[i].offset = clampOffset(offset)
	tl.layout()
}

// Len returns the number of items.
func (tl *Timeline) Len() int {
	return len(tl.items)
}

// Items returns a copy of the timeline items.
func (tl *Timeline) Items() []TimelineItem {
	out := make([]TimelineItem, len(tl.items))
	for i, it := range tl.items {
		out[i] = TimelineItem{Controller: it.p, Offset: it.offset}
	}
	return out
}

// Window returns the start and end of item i on the timeline, delay
// excluded.
func (tl *Timeline) Window(i int) (start, end time.Duration) {
	it := tl.items[i]
	return it.start, it.start + it.c.Duration()
}

// layout recomputes item start times and the timeline duration. Each item
// starts where its predecessor ends, shifted by offset times the
// predecessor's duration, so resizing an item reflows everything after it.
func (tl *Timeline) layout() {
	var total time.Duration
	for i := range tl.items {
		it := &tl.items[i]
		var shift time.Duration
		if i > 0 && it.offset != 0 {
			shift = time.Duration(float64(tl.items[i-1].c.Duration()) * it.offset)
		}
		it.start = total + shift
		total += it.c.Duration() + shift
	}
	tl.duration = total
}

// Apply seeks every child to its local progress. Children before their
// window clamp to 0 and children past it clamp to 1. When reversed, items
// are driven last to first and receive run-time progress (1 - local). The
// final forward frame finishes every child, including one that overlaps past
// the computed end.
func (tl *Timeline) Apply(eased, linear float64) {
	tl.layout()
	pos := float64(tl.duration) * eased
	final := !tl.reversed && linear >= 1
	n := len(tl.items)
	for i := 0; i < n; i++ {
		idx := i
		if tl.reversed {
			idx = n - 1 - i
		}
		it := &tl.items[idx]
		d := float64(it.c.Duration())
		var local float64
		switch {
		case d > 0:
			local = (pos - float64(it.start)) / d
		case pos > float64(it.start), pos == float64(it.start) && !tl.reversed:
			local = 1
		}
		if final {
			local = 1
		}
		if tl.reversed {
			local = 1 - local
		}
		// A child resolves only at run-time progress 1; anything less puts
		// it back inside its window.
		if it.c.resolved && clamp01(local) < 1 {
			it.c.ResetTo(-1, true)
		}
		it.c.seek(local, false)
	}
}

func (tl *Timeline) beforeStart(resuming bool) {
	if resuming {
		return
	}
	for _, it := range tl.items {
		it.c.ResetTo(-1, true)
	}
}

// propagateReverse flips every child. A resolved child sits at the start of
// its window in the new direction, so it is unresolved while the timeline is
// still active.
func (tl *Timeline) propagateReverse() {
	for _, it := range tl.items {
		it.c.Reverse()
		if it.c.resolved && !tl.resolved {
			it.c.ResetTo(-1, true)
		}
	}
}

func (tl *Timeline) propagateReset(silent bool) {
	for _, it := range tl.items {
		it.c.ResetTo(-1, silent)
	}
}

func clampOffset(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
