package core

import (
	"io"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/stonefall/internal/core"
)

// Phase is the state of one level.
type Phase int

const (
	PhaseIdle     Phase = iota // Waiting for the start signal
	PhaseActive                // Stones are spawning or alive
	PhasePassed                // Every stone of the wave was destroyed
	PhaseDefeated              // A stone hit the cart
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhasePassed:
		return "passed"
	case PhaseDefeated:
		return "defeated"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends the level.
func (p Phase) Terminal() bool {
	return p == PhasePassed || p == PhaseDefeated
}

// HazardCounter reports how many stones are alive.
type HazardCounter interface {
	LiveStones() int
}

// Lifecycle drives a level from Idle to Passed or Defeated.
type Lifecycle struct {
	phase   Phase
	spawner *Spawner
	cart    *Cart
	hazards HazardCounter
	logger  *log.Logger

	cartConn platformcore.Connection

	Changed  platformcore.Signal[Phase]
	Passed   platformcore.Signal[struct{}]
	Defeated platformcore.Signal[struct{}]
}

// NewLifecycle wires a lifecycle to its collaborators. A missing spawner,
// cart or hazard counter is logged and the level runs without it: no
// spawner means the level never passes, no cart means it is never lost.
func NewLifecycle(spawner *Spawner, cart *Cart, hazards HazardCounter, logger *log.Logger) *Lifecycle {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	l := &Lifecycle{
		spawner: spawner,
		cart:    cart,
		hazards: hazards,
		logger:  logger,
	}

	if spawner == nil {
		logger.Warn("lifecycle: spawner missing, level cannot be passed")
	}
	if cart == nil {
		logger.Warn("lifecycle: cart missing, level cannot be lost")
	} else {
		l.cartConn = cart.Collided.Connect(func(id StoneID) {
			l.defeat(id)
		})
	}
	if hazards == nil {
		logger.Warn("lifecycle: hazard counter missing, assuming no live stones")
	}
	return l
}

// Phase returns the current phase.
func (l *Lifecycle) Phase() Phase {
	return l.phase
}

// Start moves Idle to Active, starting a fresh wave and enabling the cart.
// Reports false in any other phase.
func (l *Lifecycle) Start() bool {
	if l.phase != PhaseIdle {
		return false
	}
	if l.spawner != nil {
		l.spawner.Reset()
	}
	if l.cart != nil {
		l.cart.SetEnabled(true)
	}
	l.setPhase(PhaseActive)
	return true
}

// Update checks the pass condition: spawning finished and no live stones.
// Call it once at the end of every tick.
func (l *Lifecycle) Update() {
	if l.phase != PhaseActive || l.spawner == nil {
		return
	}
	if !l.spawner.Done() {
		return
	}
	if l.liveStones() > 0 {
		return
	}
	l.finish(PhasePassed)
	l.logger.Info("level passed", "level", l.spawner.Level())
	l.Passed.Emit(struct{}{})
}

func (l *Lifecycle) liveStones() int {
	if l.hazards == nil {
		return 0
	}
	return l.hazards.LiveStones()
}

func (l *Lifecycle) defeat(id StoneID) {
	if l.phase != PhaseActive {
		return
	}
	l.finish(PhaseDefeated)
	l.logger.Info("level lost", "stone", id)
	l.Defeated.Emit(struct{}{})
}

// finish disables the spawner and cart and enters a terminal phase.
func (l *Lifecycle) finish(p Phase) {
	if l.spawner != nil {
		l.spawner.SetEnabled(false)
	}
	if l.cart != nil {
		l.cart.SetEnabled(false)
	}
	l.setPhase(p)
}

func (l *Lifecycle) setPhase(p Phase) {
	l.phase = p
	l.Changed.Emit(p)
}

// Close drops the cart subscription and every listener.
func (l *Lifecycle) Close() {
	if l.cart != nil {
		l.cart.Collided.Disconnect(l.cartConn)
	}
	l.Changed.DisconnectAll()
	l.Passed.DisconnectAll()
	l.Defeated.DisconnectAll()
}
