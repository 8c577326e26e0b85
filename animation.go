package flipbook

import "github.com/hajimehoshi/ebiten/v2"

// Animation is an ordered, immutable sequence of frames plus the mutable
// playback cursor that walks it. Animations are created by the atlas parser
// and driven through their owning SpriteSheet, but can also be played
// directly.
//
// Time accumulates in seconds, scaled by the playback speed. A frame is shown
// for at least its declared duration and at most one frame is stepped per
// Advance call, so a long dt never skips frames.
type Animation struct {
	frames  []Frame
	texture *ebiten.Image

	index    int
	prev     int
	elapsed  float64
	state    PlayState
	speed    float64
	reversed bool
	loop     bool
}

// NewAnimation creates a stopped Animation over frames. It panics if frames is
// empty; the atlas parser never produces an empty animation.
func NewAnimation(texture *ebiten.Image, frames []Frame) *Animation {
	if len(frames) == 0 {
		panic("flipbook: NewAnimation with no frames")
	}
	return &Animation{
		frames:  frames,
		texture: texture,
		prev:    -1,
		speed:   1,
		loop:    true,
	}
}

// Play restarts playback from start. start is clamped into the frame range.
// A non-positive speed is ignored and the previous speed is kept.
func (a *Animation) Play(start int, speed float64, reversed, loop bool) {
	a.index = clampIndex(start, len(a.frames))
	if speed > 0 {
		a.speed = speed
	}
	a.reversed = reversed
	a.loop = loop
	a.elapsed = 0
	a.state = Playing
}

// Pause pauses a playing animation (paused=true) or resumes a paused one
// (paused=false). Any other combination is a no-op.
func (a *Animation) Pause(paused bool) {
	switch {
	case paused && a.state == Playing:
		a.state = Paused
	case !paused && a.state == Paused:
		a.state = Playing
	}
}

// Stop stops playback. The current frame and elapsed time are kept.
func (a *Animation) Stop() {
	a.state = Stopped
}

// Advance moves playback forward by dt seconds. Unless the animation is
// playing it only clears the frame-changed edge, so Events and Shapes report
// nothing for that tick.
func (a *Animation) Advance(dt float64) {
	a.prev = a.index
	if a.state != Playing {
		return
	}
	a.elapsed += dt * a.speed
	if a.elapsed < a.frames[a.index].Duration {
		return
	}
	a.elapsed = 0
	if a.reversed {
		a.index--
	} else {
		a.index++
	}

	n := len(a.frames)
	switch {
	case a.index >= n:
		if a.loop {
			a.index = 0
			return
		}
		a.index = n - 1
		a.prev = a.index
		a.state = Stopped
	case a.index < 0:
		if a.loop {
			a.index = n - 1
			return
		}
		a.index = 0
		a.prev = 0
		a.state = Stopped
	}
}

// Changed reports whether the last Advance moved to a different frame.
// A non-looping animation that runs off either end does not count as a
// change: the terminal frame was already current.
func (a *Animation) Changed() bool {
	return a.prev != a.index
}

// Events returns the current frame's events on the tick the frame became
// current, and nil otherwise. Call it after Advance.
func (a *Animation) Events() []string {
	if !a.Changed() {
		return nil
	}
	return a.frames[a.index].Events
}

// Shapes returns the current frame's shapes with the same edge-triggered
// contract as Events.
func (a *Animation) Shapes() []Shape {
	if !a.Changed() {
		return nil
	}
	return a.frames[a.index].Shapes
}

// SetSpeed changes the playback speed without restarting. Non-positive values
// are ignored.
func (a *Animation) SetSpeed(speed float64) {
	if speed > 0 {
		a.speed = speed
	}
}

// Elapsed returns the time accumulated on the current frame, in seconds.
func (a *Animation) Elapsed() float64 { return a.elapsed }

// TotalDuration returns the sum of all frame durations, in seconds.
func (a *Animation) TotalDuration() float64 {
	var total float64
	for i := range a.frames {
		total += a.frames[i].Duration
	}
	return total
}

// Index returns the current frame index.
func (a *Animation) Index() int { return a.index }

// Frame returns the current frame.
func (a *Animation) Frame() Frame { return a.frames[a.index] }

// Frames returns the frame list. The returned slice MUST NOT be mutated.
func (a *Animation) Frames() []Frame { return a.frames }

// Len returns the number of frames.
func (a *Animation) Len() int { return len(a.frames) }

// State returns the playback state.
func (a *Animation) State() PlayState { return a.state }

// Speed returns the playback speed multiplier.
func (a *Animation) Speed() float64 { return a.speed }

// Reversed reports whether playback runs from the last frame to the first.
func (a *Animation) Reversed() bool { return a.reversed }

// Looping reports whether playback wraps at the ends of the sequence.
func (a *Animation) Looping() bool { return a.loop }

// Texture returns the texture shared by every animation of the sheet.
func (a *Animation) Texture() *ebiten.Image { return a.texture }

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
