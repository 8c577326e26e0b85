package flipbook

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteSheet owns a texture, the named animations cut from it, and at most
// one active animation that receives playback commands and updates.
//
// Create one with Parse, ParseCompressed or LoadFile. A SpriteSheet is not
// safe for concurrent use.
type SpriteSheet struct {
	// Version is the atlas format version the sheet was loaded from.
	Version string

	texture    *ebiten.Image
	animations map[string]*Animation
	active     *activeAnimation
}

// activeAnimation is the current selection. A nil *activeAnimation on the
// sheet means nothing has been selected yet.
type activeAnimation struct {
	name string
	anim *Animation
}

// NewSpriteSheet assembles a sheet from already-built animations, for callers
// that generate frames in code instead of loading an atlas.
func NewSpriteSheet(texture *ebiten.Image, animations map[string]*Animation) *SpriteSheet {
	s := &SpriteSheet{
		texture:    texture,
		animations: make(map[string]*Animation, len(animations)),
	}
	for name, a := range animations {
		s.animations[name] = a
	}
	return s
}

// --- play options ---

type playOptions struct {
	start     int
	speed     float64
	reversed  bool
	loop      bool
	interrupt bool
}

func defaultPlayOptions() playOptions {
	return playOptions{speed: 1, loop: true}
}

// PlayOption configures Select and Replay. The defaults are: first frame,
// speed 1, forward, looping, no interrupt.
type PlayOption func(*playOptions)

// StartAt starts playback at frame i. Out-of-range values are clamped.
func StartAt(i int) PlayOption {
	return func(o *playOptions) { o.start = i }
}

// WithSpeed sets the playback speed multiplier. Non-positive values keep the
// animation's current speed.
func WithSpeed(speed float64) PlayOption {
	return func(o *playOptions) { o.speed = speed }
}

// Reversed plays from the start frame toward the first frame.
func Reversed() PlayOption {
	return func(o *playOptions) { o.reversed = true }
}

// Once plays through a single time and stops on the last frame reached.
func Once() PlayOption {
	return func(o *playOptions) { o.loop = false }
}

// Interrupt restarts the animation even if it is already the active, playing
// one.
func Interrupt() PlayOption {
	return func(o *playOptions) { o.interrupt = true }
}

// --- playback ---

// Select makes name the active animation and starts it. Selecting the
// animation that is already active and playing does nothing unless
// Interrupt is given, so Select can be called every tick with the desired
// animation. It reports whether name exists; an unknown name leaves playback
// unchanged.
func (s *SpriteSheet) Select(name string, opts ...PlayOption) bool {
	anim, ok := s.animations[name]
	if !ok {
		debugf("animation %q not found", name)
		return false
	}
	o := defaultPlayOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if s.active != nil && s.active.name == name && anim.State() == Playing && !o.interrupt {
		return true
	}
	anim.Play(o.start, o.speed, o.reversed, o.loop)
	s.active = &activeAnimation{name: name, anim: anim}
	return true
}

// Replay restarts the active animation with opts. Interrupt has no effect
// here; the animation always restarts. It does nothing if no animation has
// been selected.
func (s *SpriteSheet) Replay(opts ...PlayOption) {
	if s.active == nil {
		return
	}
	o := defaultPlayOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s.active.anim.Play(o.start, o.speed, o.reversed, o.loop)
}

// Pause pauses (true) or resumes (false) the active animation.
func (s *SpriteSheet) Pause(paused bool) {
	if s.active != nil {
		s.active.anim.Pause(paused)
	}
}

// Stop stops the active animation.
func (s *SpriteSheet) Stop() {
	if s.active != nil {
		s.active.anim.Stop()
	}
}

// Update advances the active animation by dt seconds.
func (s *SpriteSheet) Update(dt float64) {
	if s.active != nil {
		s.active.anim.Advance(dt)
	}
}

// Events returns the events of the frame the active animation moved to during
// the last Update, or nil if the frame did not change or nothing is active.
func (s *SpriteSheet) Events() []string {
	if s.active == nil {
		return nil
	}
	return s.active.anim.Events()
}

// Shapes is the shape counterpart of Events.
func (s *SpriteSheet) Shapes() []Shape {
	if s.active == nil {
		return nil
	}
	return s.active.anim.Shapes()
}

// --- queries ---

// Active returns the name of the active animation, if any.
func (s *SpriteSheet) Active() (string, bool) {
	if s.active == nil {
		return "", false
	}
	return s.active.name, true
}

// Current returns the active animation, or nil if none is selected.
func (s *SpriteSheet) Current() *Animation {
	if s.active == nil {
		return nil
	}
	return s.active.anim
}

// Animation returns the animation with the given name.
func (s *SpriteSheet) Animation(name string) (*Animation, bool) {
	a, ok := s.animations[name]
	return a, ok
}

// Names returns the animation names in sorted order.
func (s *SpriteSheet) Names() []string {
	names := make([]string, 0, len(s.animations))
	for name := range s.animations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of animations.
func (s *SpriteSheet) Len() int { return len(s.animations) }

// Texture returns the texture shared by all animations.
func (s *SpriteSheet) Texture() *ebiten.Image { return s.texture }
