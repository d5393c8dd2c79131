package motion

import (
	"fmt"
	"os"
	"time"
)

// schedulerStats accumulates tick counters. Only populated in debug mode.
type schedulerStats struct {
	ticks int
	swept int
}

// SetDebugMode enables or disables debug mode. When enabled, per-tick stats
// and task count warnings are printed to stderr.
func (s *Scheduler) SetDebugMode(enabled bool) {
	s.debug = enabled
	if !enabled {
		s.stats = schedulerStats{}
	}
}

// debugLog prints one tick's stats to stderr.
func (s *Scheduler) debugLog(now, delta time.Duration, swept int) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[motion] tick %d at %v (+%v) | tasks: %d | swept: %d | total swept: %d\n",
		s.stats.ticks, now, delta, len(s.tasks), swept, s.stats.swept)
}

// debugCheckTaskCount warns on stderr if a scheduler holds more tasks than
// the threshold, which usually means controllers are started and never
// stopped.
const debugMaxTasks = 1000

func debugCheckTaskCount(s *Scheduler) {
	if len(s.tasks) > debugMaxTasks {
		_, _ = fmt.Fprintf(os.Stderr, "[motion] warning: scheduler has %d tasks (threshold %d)\n",
			len(s.tasks), debugMaxTasks)
	}
}
