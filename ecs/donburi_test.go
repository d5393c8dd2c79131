package ecs

import (
	"testing"
	"time"

	"github.com/phanxgames/motion"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []motion.Event
	LifecycleEventType.Subscribe(world, func(w donburi.World, e motion.Event) {
		received = append(received, e)
	})

	sink.EmitEvent(motion.Event{Type: motion.EventStart, Name: "intro"})
	sink.EmitEvent(motion.Event{Type: motion.EventComplete, Name: "intro"})

	// Events are queued until processed.
	LifecycleEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Type != motion.EventStart || received[0].Name != "intro" {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Type != motion.EventComplete {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiSink_ControllerLifecycle(t *testing.T) {
	world := donburi.NewWorld()

	var now time.Duration
	sched := motion.NewScheduler(nil, motion.WithClock(func() time.Duration { return now }))
	sched.SetEventSink(NewDonburiSink(world))

	var types []motion.EventType
	LifecycleEventType.Subscribe(world, func(w donburi.World, e motion.Event) {
		types = append(types, e.Type)
	})

	c := motion.NewController(motion.Config{
		Name:      "fade",
		Duration:  100 * time.Millisecond,
		Scheduler: sched,
	}, nil)
	c.Start()
	now = 100 * time.Millisecond
	sched.Tick(now)

	events.ProcessAllEvents(world)

	want := []motion.EventType{motion.EventStart, motion.EventComplete}
	if len(types) != len(want) {
		t.Fatalf("got %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink motion.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestSpawn(t *testing.T) {
	world := donburi.NewWorld()
	c := motion.NewController(motion.Config{
		Duration:  time.Second,
		Scheduler: motion.NewScheduler(nil),
	}, nil)

	e := Spawn(world, c)
	entry := world.Entry(e)
	if !entry.HasComponent(ControllerComponent) {
		t.Fatal("entity missing ControllerComponent")
	}
	if got := ControllerComponent.Get(entry).Playable; got.Base() != c {
		t.Errorf("Playable = %v, want %v", got, c)
	}
}
