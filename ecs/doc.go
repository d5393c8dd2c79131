// Package ecs provides ECS adapters for motion.
//
// [NewDonburiSink] bridges controller lifecycle events (start, pause, stop,
// complete, overwrite, ...) into a [Donburi] world as typed events. Subscribe
// to [LifecycleEventType] in your ECS systems to receive them. [Spawn]
// attaches a controller to a new entity through [ControllerComponent].
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	stage.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
