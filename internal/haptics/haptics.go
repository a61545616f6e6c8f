package haptics

import "github.com/Nico-ST/SvenSwipe/pkg/logger"

// Kind selects the pulse strength: a light tap for keep decisions, a warning
// buzz for deletes, a selection tick for threshold crossings mid-drag.
type Kind int

const (
	Light Kind = iota
	Warning
	Selection
)

func (k Kind) String() string {
	switch k {
	case Warning:
		return "warning"
	case Selection:
		return "selection"
	default:
		return "light"
	}
}

// Engine emits haptic pulses. Pulses are fire-and-forget side effects with no
// return value.
type Engine interface {
	Pulse(kind Kind)
}

// LogEngine stands in for device hardware by tracing pulses at debug level.
type LogEngine struct {
	Logger logger.Logger
}

func NewLogEngine(log logger.Logger) *LogEngine {
	return &LogEngine{Logger: log}
}

func (e *LogEngine) Pulse(kind Kind) {
	e.Logger.Debug("Haptic pulse", "kind", kind.String())
}

var _ Engine = (*LogEngine)(nil)

// Noop discards pulses.
type Noop struct{}

func (Noop) Pulse(Kind) {}

var _ Engine = Noop{}
