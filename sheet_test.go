package flipbook

import (
	"slices"
	"strings"
	"testing"
)

func newTestSheet() *SpriteSheet {
	run := NewAnimation(nil, framesWithDurations(0.1, 0.1, 0.1, 0.1))
	jump := NewAnimation(nil, framesWithDurations(0.1, 0.1, 0.1))
	return NewSpriteSheet(nil, map[string]*Animation{"run": run, "jump": jump})
}

// --- Select ---

func TestSelect_Defaults(t *testing.T) {
	s := newTestSheet()
	if !s.Select("run") {
		t.Fatal("Select(run) = false")
	}
	name, ok := s.Active()
	if !ok || name != "run" {
		t.Errorf("Active = (%q, %v), want (run, true)", name, ok)
	}
	a := s.Current()
	if a.State() != Playing || a.Index() != 0 || a.Speed() != 1 || a.Reversed() || !a.Looping() {
		t.Errorf("defaults = state %v index %d speed %v reversed %v loop %v",
			a.State(), a.Index(), a.Speed(), a.Reversed(), a.Looping())
	}
}

func TestSelect_Options(t *testing.T) {
	s := newTestSheet()
	s.Select("run", StartAt(9), WithSpeed(2), Reversed(), Once())
	a := s.Current()
	if a.Index() != 3 || a.Speed() != 2 || !a.Reversed() || a.Looping() {
		t.Errorf("got index %d speed %v reversed %v loop %v, want 3 2 true false",
			a.Index(), a.Speed(), a.Reversed(), a.Looping())
	}
}

func TestSelect_UnknownNameLeavesStateUnchanged(t *testing.T) {
	s := newTestSheet()
	if s.Select("fly") {
		t.Error("Select(fly) = true, want false")
	}
	if _, ok := s.Active(); ok {
		t.Error("unknown name became active")
	}

	s.Select("run")
	s.Update(0.05)
	if s.Select("fly") {
		t.Error("Select(fly) = true, want false")
	}
	if name, _ := s.Active(); name != "run" {
		t.Errorf("Active = %q, want run", name)
	}
	if s.Current().Elapsed() != 0.05 {
		t.Errorf("Elapsed = %v, want 0.05", s.Current().Elapsed())
	}
}

func TestSelect_IdempotentWhilePlaying(t *testing.T) {
	s := newTestSheet()
	s.Select("run")
	s.Update(0.05)
	s.Select("run")
	s.Select("run", StartAt(2))
	if got := s.Current().Elapsed(); got != 0.05 {
		t.Errorf("Elapsed = %v, want 0.05 (reselect must not restart)", got)
	}
	if got := s.Current().Index(); got != 0 {
		t.Errorf("Index = %d, want 0", got)
	}
}

func TestSelect_InterruptRestarts(t *testing.T) {
	s := newTestSheet()
	s.Select("run")
	s.Update(0.05)
	s.Select("run", Interrupt(), StartAt(2))
	if s.Current().Elapsed() != 0 || s.Current().Index() != 2 {
		t.Errorf("cursor = (%d, %v), want (2, 0)", s.Current().Index(), s.Current().Elapsed())
	}
}

func TestSelect_RestartsWhenNotPlaying(t *testing.T) {
	s := newTestSheet()
	s.Select("run")
	s.Update(0.05)
	s.Pause(true)
	s.Select("run")
	if s.Current().State() != Playing || s.Current().Elapsed() != 0 {
		t.Errorf("paused reselect: state %v elapsed %v, want playing 0",
			s.Current().State(), s.Current().Elapsed())
	}
}

func TestSelect_SwitchAnimation(t *testing.T) {
	s := newTestSheet()
	s.Select("run")
	s.Select("jump")
	if name, _ := s.Active(); name != "jump" {
		t.Errorf("Active = %q, want jump", name)
	}
	run, _ := s.Animation("run")
	s.Update(0.1)
	if run.Index() != 0 {
		t.Error("inactive animation was advanced")
	}
}

// --- Replay ---

func TestReplay(t *testing.T) {
	s := newTestSheet()
	s.Replay(StartAt(1)) // nothing active: no-op

	s.Select("run")
	s.Update(0.1)
	s.Replay(StartAt(3), Reversed())
	a := s.Current()
	if a.Index() != 3 || !a.Reversed() || a.Elapsed() != 0 {
		t.Errorf("cursor = (%d, reversed %v, %v), want (3, true, 0)", a.Index(), a.Reversed(), a.Elapsed())
	}
}

// --- Delegation without an active animation ---

func TestNoActiveAnimation(t *testing.T) {
	s := newTestSheet()
	s.Pause(true)
	s.Pause(false)
	s.Stop()
	s.Update(1)
	if got := s.Events(); got != nil {
		t.Errorf("Events = %v, want nil", got)
	}
	if got := s.Shapes(); got != nil {
		t.Errorf("Shapes = %v, want nil", got)
	}
	if s.Current() != nil {
		t.Error("Current != nil")
	}
	if _, ok := s.DrawIntent(Vec2{}); ok {
		t.Error("DrawIntent ok = true with nothing active")
	}
}

func TestPauseStopDelegate(t *testing.T) {
	s := newTestSheet()
	s.Select("run")
	s.Pause(true)
	if s.Current().State() != Paused {
		t.Errorf("State = %v, want paused", s.Current().State())
	}
	s.Pause(false)
	s.Stop()
	if s.Current().State() != Stopped {
		t.Errorf("State = %v, want stopped", s.Current().State())
	}
}

func TestUpdate_NoEventsWhilePausedOrStopped(t *testing.T) {
	s, err := Parse(strings.NewReader(blinkXML), "eyes.xml", &recordingLoader{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s.Select("blink")
	s.Update(0.1)
	if got := s.Events(); !slices.Equal(got, []string{"closed"}) {
		t.Fatalf("Events entering frame 1 = %v, want [closed]", got)
	}

	s.Pause(true)
	for i := 0; i < 3; i++ {
		s.Update(0.016)
		if got := s.Events(); len(got) != 0 {
			t.Errorf("paused tick %d: Events = %v, want none", i, got)
		}
	}

	s.Stop()
	s.Update(0.016)
	if got := s.Events(); len(got) != 0 {
		t.Errorf("stopped tick: Events = %v, want none", got)
	}
	if got := s.Shapes(); len(got) != 0 {
		t.Errorf("stopped tick: Shapes = %v, want none", got)
	}
}

// --- Scenarios ---

func TestScenario_Blink(t *testing.T) {
	s, err := Parse(strings.NewReader(blinkXML), "eyes.xml", &recordingLoader{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s.Select("blink")
	if s.Current().Index() != 0 {
		t.Fatalf("Index = %d, want 0", s.Current().Index())
	}

	s.Update(0.05)
	if s.Current().Index() != 0 {
		t.Errorf("after 0.05: Index = %d, want 0", s.Current().Index())
	}
	if got := s.Events(); len(got) != 0 {
		t.Errorf("after 0.05: Events = %v, want none", got)
	}

	s.Update(0.06)
	if s.Current().Index() != 1 {
		t.Errorf("after 0.11: Index = %d, want 1", s.Current().Index())
	}
	if got := s.Events(); !slices.Equal(got, []string{"closed"}) {
		t.Errorf("after 0.11: Events = %v, want [closed]", got)
	}

	s.Update(0.2)
	if s.Current().Index() != 0 {
		t.Errorf("after frame 1 elapsed: Index = %d, want 0", s.Current().Index())
	}
	if s.Current().State() != Playing {
		t.Errorf("State = %v, want playing", s.Current().State())
	}
}

func TestScenario_JumpOnce(t *testing.T) {
	s := newTestSheet()
	s.Select("jump", Once())
	for elapsed := 0.0; elapsed < 0.3-1e-9; elapsed += 0.05 {
		s.Update(0.05)
	}
	a := s.Current()
	if a.State() != Stopped {
		t.Errorf("State = %v, want stopped", a.State())
	}
	if a.Index() != 2 {
		t.Errorf("Index = %d, want 2", a.Index())
	}
}

func TestNames_Sorted(t *testing.T) {
	s := newTestSheet()
	if got := s.Names(); !slices.Equal(got, []string{"jump", "run"}) {
		t.Errorf("Names = %v, want [jump run]", got)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}
