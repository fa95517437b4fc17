package core

import (
	"errors"

	platformcore "github.com/vovakirdan/stonefall/internal/core"
)

// ErrNegativeDamage is returned by ApplyDamage for a negative amount.
var ErrNegativeDamage = errors.New("breaker: negative damage")

// Destructible is a hit point pool that is destroyed exactly once.
type Destructible struct {
	maxHitPoints int
	hitPoints    int
	destroyed    bool

	// HitPointsChanged is emitted with the new hit points after every change.
	HitPointsChanged platformcore.Signal[int]
	// Destroyed is emitted once, after the final HitPointsChanged.
	Destroyed platformcore.Signal[struct{}]
}

// NewDestructible creates a pool at full health. maxHitPoints is floored to 1.
func NewDestructible(maxHitPoints int) *Destructible {
	maxHitPoints = max(maxHitPoints, 1)
	return &Destructible{
		maxHitPoints: maxHitPoints,
		hitPoints:    maxHitPoints,
	}
}

// HitPoints returns the remaining hit points.
func (d *Destructible) HitPoints() int {
	return d.hitPoints
}

// MaxHitPoints returns the hit points the pool started with.
func (d *Destructible) MaxHitPoints() int {
	return d.maxHitPoints
}

// IsDestroyed reports whether Kill has run.
func (d *Destructible) IsDestroyed() bool {
	return d.destroyed
}

// ApplyDamage subtracts amount, never going below zero, and kills the pool
// when it runs out. Damage after destruction is ignored.
func (d *Destructible) ApplyDamage(amount int) error {
	if amount < 0 {
		return ErrNegativeDamage
	}
	if d.destroyed {
		return nil
	}

	d.hitPoints = max(d.hitPoints-amount, 0)
	d.HitPointsChanged.Emit(d.hitPoints)

	if d.hitPoints <= 0 {
		d.Kill()
	}
	return nil
}

// Kill destroys the pool regardless of remaining hit points.
// Calling Kill again is a no-op.
func (d *Destructible) Kill() {
	if d.destroyed {
		return
	}
	d.destroyed = true
	if d.hitPoints != 0 {
		d.hitPoints = 0
		d.HitPointsChanged.Emit(0)
	}
	d.Destroyed.Emit(struct{}{})
}

// disconnect drops every listener on the pool's signals.
func (d *Destructible) disconnect() {
	d.HitPointsChanged.DisconnectAll()
	d.Destroyed.DisconnectAll()
}
