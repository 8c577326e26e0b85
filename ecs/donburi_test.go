package ecs

import (
	"testing"

	"github.com/phanxgames/flipbook"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func testSheet() *flipbook.SpriteSheet {
	walk := flipbook.NewAnimation(nil, []flipbook.Frame{
		{Duration: 0.1},
		{Duration: 0.1, Events: []string{"step", "dust"}},
	})
	s := flipbook.NewSpriteSheet(nil, map[string]*flipbook.Animation{"walk": walk})
	s.Select("walk")
	return s
}

func spawn(world donburi.World, s *flipbook.SpriteSheet) donburi.Entity {
	e := world.Create(Sheet)
	Sheet.SetValue(world.Entry(e), SheetData{Sheet: s})
	return e
}

func TestUpdate_PublishesFrameEvents(t *testing.T) {
	world := donburi.NewWorld()
	e := spawn(world, testSheet())

	var received []FrameEvent
	FrameEventType.Subscribe(world, func(w donburi.World, ev FrameEvent) {
		received = append(received, ev)
	})

	Update(world, 0.05)
	FrameEventType.ProcessEvents(world)
	if len(received) != 0 {
		t.Fatalf("expected no events before the frame changes, got %d", len(received))
	}

	Update(world, 0.05)
	FrameEventType.ProcessEvents(world)
	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Name != "step" || received[1].Name != "dust" {
		t.Errorf("event names = %q, %q, want step, dust", received[0].Name, received[1].Name)
	}
	for _, ev := range received {
		if ev.Entity != e || ev.Animation != "walk" || ev.Frame != 1 {
			t.Errorf("event = %+v, want entity %v animation walk frame 1", ev, e)
		}
	}
}

func TestUpdate_EventsAreEdgeTriggered(t *testing.T) {
	world := donburi.NewWorld()
	spawn(world, testSheet())

	var count int
	FrameEventType.Subscribe(world, func(w donburi.World, ev FrameEvent) {
		count++
	})

	Update(world, 0.1) // frame 1
	Update(world, 0.01)
	Update(world, 0.01)
	events.ProcessAllEvents(world)

	if count != 2 {
		t.Errorf("count = %d, want 2 (one frame change, two events)", count)
	}
}

func TestUpdate_NoEventsWhilePausedOrStopped(t *testing.T) {
	world := donburi.NewWorld()
	s := testSheet()
	spawn(world, s)

	var count int
	FrameEventType.Subscribe(world, func(w donburi.World, ev FrameEvent) {
		count++
	})

	Update(world, 0.1) // frame 1: step, dust
	s.Pause(true)
	Update(world, 0.016)
	Update(world, 0.016)
	s.Stop()
	Update(world, 0.016)
	events.ProcessAllEvents(world)

	if count != 2 {
		t.Errorf("count = %d, want 2 (events only on the frame change)", count)
	}
}

func TestUpdate_NilSheetIgnored(t *testing.T) {
	world := donburi.NewWorld()
	world.Create(Sheet)

	Update(world, 1) // must not panic
}

func TestUpdate_TicksEverySheet(t *testing.T) {
	world := donburi.NewWorld()
	a, b := testSheet(), testSheet()
	spawn(world, a)
	spawn(world, b)

	Update(world, 0.1)

	if a.Current().Index() != 1 || b.Current().Index() != 1 {
		t.Errorf("indices = %d, %d, want 1, 1", a.Current().Index(), b.Current().Index())
	}
}
