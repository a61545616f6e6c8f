// Package swipe holds the gesture decision logic of the triage surface.
// It is pure state: the UI feeds drag offsets and animation progress in,
// decisions and presentation values come out.
package swipe

import (
	"math"

	"github.com/Nico-ST/SvenSwipe/internal/domain"
	"github.com/Nico-ST/SvenSwipe/internal/haptics"
)

// Phase is the tracker's input lifecycle.
type Phase int

const (
	// PhaseIdle accepts drag updates.
	PhaseIdle Phase = iota
	// PhaseExiting plays the exit animation; input is disabled until the
	// animation completes and the tracker resets.
	PhaseExiting
)

const maxRotationDegrees = 12.0

// DecisionFunc receives the confirmed decision at the exit animation's visual
// midpoint. The tracker never calls it twice for one gesture.
type DecisionFunc func(decision domain.SwipeDecision)

// Tracker follows a single card's drag. Only the horizontal offset is
// semantically meaningful; the vertical component is carried for rendering.
type Tracker struct {
	threshold  float64
	haptic     haptics.Engine
	onDecision DecisionFunc

	phase    Phase
	offsetX  float64
	offsetY  float64
	armed    bool // threshold-crossing pulse re-arms when dropping back below
	decision domain.SwipeDecision
	notified bool
}

func NewTracker(threshold float64, haptic haptics.Engine, onDecision DecisionFunc) *Tracker {
	if haptic == nil {
		haptic = haptics.Noop{}
	}
	return &Tracker{
		threshold:  threshold,
		haptic:     haptic,
		onDecision: onDecision,
		armed:      true,
	}
}

func (t *Tracker) Phase() Phase { return t.phase }

// Offset returns the current drag offset.
func (t *Tracker) Offset() (x, y float64) { return t.offsetX, t.offsetY }

// Progress is min(|x|/threshold, 1), used for label opacity and scale.
func (t *Tracker) Progress() float64 {
	p := math.Abs(t.offsetX) / t.threshold
	if p > 1 {
		return 1
	}
	return p
}

// Rotation is the card tilt in degrees, proportional to the horizontal drag.
func (t *Tracker) Rotation() float64 {
	r := t.offsetX / t.threshold * maxRotationDegrees
	return math.Max(-maxRotationDegrees, math.Min(maxRotationDegrees, r))
}

// Update moves the drag offset. Crossing the threshold fires one selection
// pulse; dropping back below re-arms it.
func (t *Tracker) Update(x, y float64) {
	if t.phase != PhaseIdle {
		return
	}
	t.offsetX = x
	t.offsetY = y

	over := math.Abs(x) > t.threshold
	if over && t.armed {
		t.haptic.Pulse(haptics.Selection)
		t.armed = false
	} else if !over {
		t.armed = true
	}
}

// Release ends the gesture. Below or at the threshold the card snaps back and
// no decision is made. Beyond it, input is disabled and the exit animation
// starts; the decision reaches the callback via Animate.
func (t *Tracker) Release() {
	if t.phase != PhaseIdle {
		return
	}

	if math.Abs(t.offsetX) <= t.threshold {
		t.offsetX = 0
		t.offsetY = 0
		return
	}

	if t.offsetX > 0 {
		t.decision = domain.DecisionKeep
	} else {
		t.decision = domain.DecisionDelete
	}
	t.phase = PhaseExiting
	t.notified = false
}

// Animate advances the exit animation, progress in [0, 1]. The decision
// callback fires once the visual midpoint is passed; completing the animation
// resets offset and rotation and re-enables input. This ordering guarantees
// the caller never sees two decisions from overlapping gestures.
func (t *Tracker) Animate(progress float64) {
	if t.phase != PhaseExiting {
		return
	}

	if progress >= 0.5 && !t.notified {
		t.notified = true
		if t.onDecision != nil {
			t.onDecision(t.decision)
		}
	}

	if progress >= 1 {
		t.offsetX = 0
		t.offsetY = 0
		t.armed = true
		t.phase = PhaseIdle
	}
}

// Swipe runs a complete programmatic gesture: one update past the threshold
// in the decision's direction, release, and a full exit animation. The shell
// uses it for keyboard-driven triage.
func (t *Tracker) Swipe(decision domain.SwipeDecision) {
	if t.phase != PhaseIdle {
		return
	}

	offset := t.threshold * 1.5
	if decision == domain.DecisionDelete {
		offset = -offset
	}
	t.Update(offset, 0)
	t.Release()
	t.Animate(0.5)
	t.Animate(1)
}
