package core

import (
	platformcore "github.com/vovakirdan/stonefall/internal/core"
)

// Composition counts spawned stones per tier for one wave.
type Composition [TierCount]int

// Add records one spawned stone.
func (c *Composition) Add(t Tier) error {
	if !t.Valid() {
		return ErrInvalidTier
	}
	c[t]++
	return nil
}

// Stones returns the number of top-level stones.
func (c Composition) Stones() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Total returns the number of destruction events the wave will produce,
// counting every fragment.
func (c Composition) Total() int {
	total := 0
	for t := TierSmall; t < TierCount; t++ {
		n, _ := FragmentCount(t)
		total += n * c[t]
	}
	return total
}

// Progress counts destroyed stones against the wave total.
// The total is known only once spawning has finished.
type Progress struct {
	total     int
	completed int
	finalized bool

	// Changed is emitted with the new percentage after each recorded destruction.
	Changed platformcore.Signal[float64]

	source *platformcore.Signal[StoneEvent]
	conn   platformcore.Connection
}

// StoneEvent describes a destroyed stone.
type StoneEvent struct {
	ID   StoneID
	Tier Tier
	Pos  Vec2
}

// NewProgress creates an accountant. When source is non-nil it subscribes
// to it and counts every event; Close drops the subscription.
func NewProgress(source *platformcore.Signal[StoneEvent]) *Progress {
	p := &Progress{source: source}
	if source != nil {
		p.conn = source.Connect(func(e StoneEvent) { p.RecordDestroyed(e.Tier) })
	}
	return p
}

// Finalize computes the total from the frozen wave composition.
// Destructions recorded before Finalize are kept.
func (p *Progress) Finalize(c Composition) {
	p.total = c.Total()
	p.finalized = true
	if p.completed > p.total {
		p.completed = p.total
	}
	p.Changed.Emit(p.Percent())
}

// RecordDestroyed counts one destruction at any tier.
func (p *Progress) RecordDestroyed(t Tier) {
	if !t.Valid() {
		return
	}
	if p.finalized && p.completed >= p.total {
		return
	}
	p.completed++
	p.Changed.Emit(p.Percent())
}

// Progress01 returns completed/total, or 0 before the total is known.
func (p *Progress) Progress01() float64 {
	if !p.finalized || p.total == 0 {
		return 0
	}
	return platformcore.ClampF(float64(p.completed)/float64(p.total), 0, 1)
}

// Percent returns the progress in percent.
func (p *Progress) Percent() float64 {
	return p.Progress01() * 100
}

// Completed returns the number of recorded destructions.
func (p *Progress) Completed() int {
	return p.completed
}

// Total returns the wave total, 0 until finalized.
func (p *Progress) Total() int {
	return p.total
}

// Finalized reports whether the wave total is known.
func (p *Progress) Finalized() bool {
	return p.finalized
}

// Reset clears the counters for a new wave.
func (p *Progress) Reset() {
	p.total = 0
	p.completed = 0
	p.finalized = false
	p.Changed.Emit(0)
}

// Close unsubscribes from the destruction source and drops listeners.
func (p *Progress) Close() {
	if p.source != nil {
		p.source.Disconnect(p.conn)
		p.source = nil
	}
	p.Changed.DisconnectAll()
}
