package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone             Action = iota
	ActionLeft                    // A, Left arrow - move cart left
	ActionRight                   // D, Right arrow - move cart right
	ActionFire                    // Space - fire the turret (when auto fire is off)
	ActionStart                   // Enter - start the level
	ActionNext                    // N - advance to the next level after passing
	ActionRetry                   // T - replay the current level, keeping progress
	ActionRestart                 // R - restart the campaign from level 1
	ActionPause                   // P - pause/unpause game
	ActionQuit                    // Q, Ctrl+C - exit game/session
	ActionUpgradeDamage           // 1 - buy a damage upgrade
	ActionUpgradeFireRate         // 2 - buy a fire rate upgrade
	ActionUpgradeProjectiles      // 3 - buy an extra projectile
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionStart:
		return "Start"
	case ActionNext:
		return "Next"
	case ActionRetry:
		return "Retry"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	case ActionUpgradeDamage:
		return "UpgradeDamage"
	case ActionUpgradeFireRate:
		return "UpgradeFireRate"
	case ActionUpgradeProjectiles:
		return "UpgradeProjectiles"
	default:
		return "Unknown"
	}
}

// InputFrame represents the player's input during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
