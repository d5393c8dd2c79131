// Package motion is a frame-driven animation core for [Ebitengine].
//
// Every animation is a [Controller]: one normalized progress value in [0, 1]
// advanced by a shared [Scheduler] once per frame, with pause, resume, seek,
// reverse, stop and reset. What the progress drives is pluggable through
// [ProgressSink]:
//
//   - [Tween] interpolates numeric properties of a [State] or an [Element]
//   - [Timeline] sequences other controllers with overlaps and gaps
//   - [Group] shapes up to four raw fields with gween easings
//   - [TweenColor] blends an element tint in CIE L*a*b*
//
// # Quick start
//
// A [Stage] is an ebiten.Game that owns a scheduler on a frame-exact clock:
//
//	st := motion.NewStage()
//	box := motion.NewElement("box")
//	st.Add(box)
//
//	slide := motion.ElementTo(box, motion.State{motion.PropX: 300},
//		motion.TweenConfig{Config: motion.Config{
//			Duration:  time.Second,
//			Easing:    motion.FromTweenFunc(ease.OutCubic),
//			Scheduler: st.Scheduler(),
//		}})
//	slide.Start()
//
//	motion.Run(st, motion.RunConfig{Title: "Demo", Width: 640, Height: 480})
//
// Outside a Stage, controllers run on [Default], which is fed by
// [DefaultFrames]. The first Stage created pumps it; without a Stage, pump it
// once per frame from your own game loop, or build a [Scheduler] on any
// [FrameSource].
//
// # Timelines
//
// Items are laid out in order. Each item's offset is a fraction of its
// predecessor's duration: 0 plays after it, -1 together with it, 0.5 after a
// half-length gap.
//
//	tl := motion.NewTimeline(motion.TimelineConfig{Items: []motion.TimelineItem{
//		{Controller: fadeIn},
//		{Controller: slide, Offset: -0.5},
//	}})
//	tl.Start()
//
// Children of a timeline stop running on their own; the timeline seeks them.
//
// # Overwrite protection
//
// Starting a tween stops any other tween registered on the same target (or
// [TweenConfig].Key). Set [OverwriteOff] to let tweens share a target.
//
// # Presets and scripts
//
// [LoadPresets] reads named timing presets from YAML or JSON. [LoadScript]
// reads a frame script that drives registered controllers on a Stage, one
// step per frame, for reproducible playback.
//
// # Debug mode
//
// [Scheduler.SetDebugMode] prints per-tick statistics to stderr and warns
// when a scheduler accumulates an unusual number of tasks.
//
// # ECS integration
//
// The ecs submodule forwards lifecycle events into a Donburi world.
//
// [Ebitengine]: https://ebitengine.org
package motion
