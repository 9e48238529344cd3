package scene

const TickRate = 20 // ticks per second

// SecsToTicks converts a duration in seconds to loop ticks.
func SecsToTicks(s float64) int {
	t := int(s * TickRate)
	if t < 1 {
		t = 1
	}
	return t
}

var (
	StatusDuration = SecsToTicks(2.5) // how long a status line stays in the HUD
)

// Adjustment steps and limits for the interactive controls.
const (
	PersistenceStep = 0.05
	ThresholdStep   = 0.05
	MaxOctaves      = 12
)
