// Package ecs provides ECS adapters for motion.
package ecs

import (
	"github.com/phanxgames/motion"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType is the Donburi event type for motion lifecycle events.
var LifecycleEventType = events.NewEventType[motion.Event]()

// ControllerData links an entity to the animation driving it.
type ControllerData struct {
	Playable motion.Playable
}

// ControllerComponent stores a ControllerData on an entity.
var ControllerComponent = donburi.NewComponentType[ControllerData]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to LifecycleEventType and can be consumed with events.Subscribe
// and ProcessEvents.
func NewDonburiSink(world donburi.World) motion.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event motion.Event) {
	LifecycleEventType.Publish(s.world, event)
}

// Spawn creates an entity carrying p in ControllerComponent.
func Spawn(world donburi.World, p motion.Playable) donburi.Entity {
	e := world.Create(ControllerComponent)
	ControllerComponent.SetValue(world.Entry(e), ControllerData{Playable: p})
	return e
}
