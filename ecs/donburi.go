package ecs

import (
	"github.com/phanxgames/flipbook"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// SheetData is the component value holding an entity's sprite sheet.
type SheetData struct {
	Sheet *flipbook.SpriteSheet
}

// Sheet is the Donburi component type for SheetData.
var Sheet = donburi.NewComponentType[SheetData]()

// FrameEvent is published once per event name when an entity's active
// animation moves onto a frame that declares events.
type FrameEvent struct {
	Entity    donburi.Entity
	Animation string
	Frame     int
	Name      string
}

// FrameEventType is the Donburi event type for FrameEvent.
var FrameEventType = events.NewEventType[FrameEvent]()

var sheetQuery = donburi.NewQuery(filter.Contains(Sheet))

// Update advances every sheet in world by dt seconds and publishes the frame
// events each one produced. Events are queued; process them with
// FrameEventType.ProcessEvents.
func Update(world donburi.World, dt float64) {
	sheetQuery.Each(world, func(entry *donburi.Entry) {
		data := Sheet.Get(entry)
		if data.Sheet == nil {
			return
		}
		data.Sheet.Update(dt)
		names := data.Sheet.Events()
		if len(names) == 0 {
			return
		}
		anim, _ := data.Sheet.Active()
		frame := data.Sheet.Current().Index()
		for _, name := range names {
			FrameEventType.Publish(world, FrameEvent{
				Entity:    entry.Entity(),
				Animation: anim,
				Frame:     frame,
				Name:      name,
			})
		}
	})
}
