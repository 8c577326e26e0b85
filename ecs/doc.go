// Package ecs provides a [Donburi] adapter for flipbook sprite sheets.
//
// Attach a [flipbook.SpriteSheet] to an entity with the [Sheet] component and
// call [Update] once per tick. Frame events are published as [FrameEvent]
// values on [FrameEventType]; subscribe to it in your systems and drain it
// with ProcessEvents.
//
// Usage:
//
//	e := world.Create(ecs.Sheet)
//	ecs.Sheet.SetValue(world.Entry(e), ecs.SheetData{Sheet: sheet})
//	ecs.FrameEventType.Subscribe(world, onFrameEvent)
//
//	// each tick
//	ecs.Update(world, dt)
//	ecs.FrameEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
