package core

import (
	platformcore "github.com/vovakirdan/stonefall/internal/core"
)

// EffectName identifies a timed effect.
type EffectName string

const (
	EffectFreeze        EffectName = "freeze"
	EffectInvincibility EffectName = "invincibility"
)

// Effect is an action that is switched on when triggered and off after
// Duration ticks.
type Effect struct {
	Duration int // Ticks
	On       func()
	Off      func()
}

// Expiry is emitted when an effect runs out.
type Expiry struct {
	Name EffectName
	Tick int
}

type effectState struct {
	effect   Effect
	active   bool
	deadline int
}

// Scheduler runs non-stacking timed effects against the simulation tick clock.
// Each effect has its own timer; triggering an active effect does nothing.
type Scheduler struct {
	now     int
	order   []EffectName
	effects map[EffectName]*effectState

	// Expired is emitted after an effect's Off action has run.
	Expired platformcore.Signal[Expiry]
}

// NewScheduler creates an empty scheduler at tick 0.
func NewScheduler() *Scheduler {
	return &Scheduler{
		effects: make(map[EffectName]*effectState),
	}
}

// Register adds or replaces an effect. Replacing an active effect keeps
// its deadline.
func (s *Scheduler) Register(name EffectName, e Effect) {
	if st, ok := s.effects[name]; ok {
		st.effect = e
		return
	}
	s.order = append(s.order, name)
	s.effects[name] = &effectState{effect: e}
}

// Trigger starts the effect unless it is already running.
// Reports whether it was started. Unknown names return false.
func (s *Scheduler) Trigger(name EffectName) bool {
	st, ok := s.effects[name]
	if !ok || st.active {
		return false
	}
	st.active = true
	st.deadline = s.now + max(st.effect.Duration, 0)
	if st.effect.On != nil {
		st.effect.On()
	}
	return true
}

// Tick advances the clock by one tick and expires due effects.
func (s *Scheduler) Tick() {
	s.now++
	for _, name := range s.order {
		st := s.effects[name]
		if !st.active || s.now < st.deadline {
			continue
		}
		st.active = false
		if st.effect.Off != nil {
			st.effect.Off()
		}
		s.Expired.Emit(Expiry{Name: name, Tick: s.now})
	}
}

// Now returns the current tick.
func (s *Scheduler) Now() int {
	return s.now
}

// Active reports whether the effect is running.
func (s *Scheduler) Active(name EffectName) bool {
	st, ok := s.effects[name]
	return ok && st.active
}

// Remaining returns the ticks left for an active effect, 0 otherwise.
func (s *Scheduler) Remaining(name EffectName) int {
	st, ok := s.effects[name]
	if !ok || !st.active {
		return 0
	}
	return st.deadline - s.now
}

// Reset switches off every running effect without emitting Expired.
func (s *Scheduler) Reset() {
	for _, name := range s.order {
		st := s.effects[name]
		if !st.active {
			continue
		}
		st.active = false
		if st.effect.Off != nil {
			st.effect.Off()
		}
	}
}
