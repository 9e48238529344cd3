package scene

// Action is a viewer request applied to the shared field.
type Action int

const (
	ActionNone Action = iota
	ActionRegenerate
	ActionResmooth
	ActionOctavesUp
	ActionOctavesDown
	ActionPersistenceUp
	ActionPersistenceDown
	ActionThresholdUp
	ActionThresholdDown
	ActionToggleInterpolation
	ActionToggleDimensions
	ActionDimensions1
	ActionDimensions2
	ActionToggleContours
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:                "none",
	ActionRegenerate:          "regenerate",
	ActionResmooth:            "resmooth",
	ActionOctavesUp:           "octaves+",
	ActionOctavesDown:         "octaves-",
	ActionPersistenceUp:       "persistence+",
	ActionPersistenceDown:     "persistence-",
	ActionThresholdUp:         "threshold+",
	ActionThresholdDown:       "threshold-",
	ActionToggleInterpolation: "interpolation",
	ActionToggleDimensions:    "dimensions",
	ActionDimensions1:         "1d",
	ActionDimensions2:         "2d",
	ActionToggleContours:      "contours",
	ActionQuit:                "quit",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// InputEvent is an action tagged with the viewer that sent it.
type InputEvent struct {
	ViewerID string
	Action   Action
}
