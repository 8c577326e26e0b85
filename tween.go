package flipbook

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// SpeedTween eases an Animation's playback speed toward a target value, for
// slow-motion ramps and wind-ups. Call Update(dt) each frame alongside the
// animation's own update; the tween writes the speed through SetSpeed, so
// intermediate values that reach zero or below are skipped.
//
// There is no global tween manager. Callers own and update their tweens.
type SpeedTween struct {
	tween  *gween.Tween
	target *Animation
	Done   bool
}

// TweenSpeed creates a SpeedTween that moves anim's speed from its current
// value to the given one over duration seconds using the easing function.
func TweenSpeed(anim *Animation, to float64, duration float32, fn ease.TweenFunc) *SpeedTween {
	return &SpeedTween{
		tween:  gween.New(float32(anim.Speed()), float32(to), duration, fn),
		target: anim,
	}
}

// Update advances the tween by dt seconds and applies the eased speed.
func (t *SpeedTween) Update(dt float32) {
	if t.Done {
		return
	}
	val, finished := t.tween.Update(dt)
	t.target.SetSpeed(float64(val))
	t.Done = finished
}

// Reset rewinds the tween to its starting speed.
func (t *SpeedTween) Reset() {
	t.tween.Reset()
	t.Done = false
}
