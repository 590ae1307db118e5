package follow

import (
	"time"

	"github.com/additionsdigital/gradientfollow/pkg/render"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultTransition is the length of each transition pass.
const DefaultTransition = 300 * time.Millisecond

// Phase is the state of the entry transition.
type Phase int

const (
	Idle       Phase = iota // Not started yet
	FirstPass               // Easing toward the pointer at entry
	SecondPass              // Catching up with a pointer that moved meanwhile
	Done                    // Finished for good; direct mapping takes over
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case FirstPass:
		return "first pass"
	case SecondPass:
		return "second pass"
	case Done:
		return "done"
	}
	return "unknown"
}

// Transition eases the scene from its current values to the direct-mapping
// values in at most two passes. The roll tween drives the phase changes;
// the other three run alongside it with the same duration and easing.
type Transition struct {
	duration time.Duration
	phase    Phase
	trigger  InputVector

	roll, scale, sky, ground *gween.Tween

	// Saturation and lightness stay at their values from the start of the
	// pass; only hues are tweened.
	skyBase, groundBase render.HSL
	current             Params
}

// NewTransition creates an idle transition whose passes last d.
func NewTransition(d time.Duration) *Transition {
	if d <= 0 {
		d = DefaultTransition
	}
	return &Transition{duration: d}
}

// Phase returns the current phase.
func (t *Transition) Phase() Phase { return t.phase }

// Active reports whether a pass is running.
func (t *Transition) Active() bool {
	return t.phase == FirstPass || t.phase == SecondPass
}

// Begin starts the first pass from from toward to. trigger is the input at
// the time of the trigger; it decides whether a second pass is needed. Only
// an idle transition can begin.
func (t *Transition) Begin(from, to Params, trigger InputVector) bool {
	if t.phase != Idle {
		return false
	}
	t.trigger = trigger
	t.start(FirstPass, from, to)
	return true
}

func (t *Transition) start(phase Phase, from, to Params) {
	d := float32(t.duration.Seconds())
	t.phase = phase
	t.current = from
	t.skyBase, t.groundBase = from.Sky, from.Ground

	t.roll = gween.New(float32(from.Roll), float32(to.Roll), d, ease.InOutQuart)
	t.scale = gween.New(float32(from.ScaleX), float32(to.ScaleX), d, ease.InOutQuart)
	t.sky = gween.New(float32(from.Sky.H), float32(to.Sky.H), d, ease.InOutQuart)
	t.ground = gween.New(float32(from.Ground.H), float32(to.Ground.H), d, ease.InOutQuart)
}

// Advance moves the active pass forward by dt and returns the values to
// apply this frame. When the first pass ends with input different from the
// trigger input, a second pass starts from the reached values toward
// target(). Advance on an inactive transition returns the last values.
func (t *Transition) Advance(dt time.Duration, input InputVector, target func() Params) Params {
	if !t.Active() {
		return t.current
	}

	step := float32(dt.Seconds())
	roll, finished := t.roll.Update(step)
	scale, _ := t.scale.Update(step)
	sky, _ := t.sky.Update(step)
	ground, _ := t.ground.Update(step)

	t.current = Params{
		Roll:   float64(roll),
		ScaleX: float64(scale),
		Sky:    render.HSL{H: float64(sky), S: t.skyBase.S, L: t.skyBase.L},
		Ground: render.HSL{H: float64(ground), S: t.groundBase.S, L: t.groundBase.L},
	}

	if finished {
		switch {
		case t.phase == FirstPass && input != t.trigger:
			t.start(SecondPass, t.current, target())
		default:
			t.phase = Done
		}
	}
	return t.current
}
