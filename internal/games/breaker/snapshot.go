package breaker

import "math"

// Snapshot is a flat view of the running level for determinism checks.
// Positions are stored in thousandths of a cell.
type Snapshot struct {
	Tick      int
	Level     int
	Phase     int
	Score     int
	Coins     int
	CartX     int
	Completed int
	Total     int

	// Each stone is 5 ints: ID, Tier, HP, X, Y
	StoneCount int
	StoneData  []int

	// Each pickup is 3 ints: Kind, X, Y
	PickupCount int
	PickupData  []int

	ProjectileCount int
}

func milli(v float64) int {
	return int(math.Round(v * 1000))
}

// Snapshot returns the current level as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	w := g.world
	snap := Snapshot{
		Tick:      w.Tick(),
		Level:     w.Level(),
		Phase:     int(w.Phase()),
		Score:     g.score,
		Coins:     w.Wallet().Coins(),
		CartX:     milli(w.Cart().X),
		Completed: w.Progress().Completed(),
		Total:     w.Progress().Total(),

		StoneCount:      len(w.Stones()),
		PickupCount:     len(w.Pickups()),
		ProjectileCount: len(w.Projectiles()),
	}

	snap.StoneData = make([]int, 0, snap.StoneCount*5)
	for _, s := range w.Stones() {
		snap.StoneData = append(snap.StoneData,
			int(s.ID), int(s.Tier), s.HitPoints(), milli(s.Pos.X), milli(s.Pos.Y))
	}

	snap.PickupData = make([]int, 0, snap.PickupCount*3)
	for _, p := range w.Pickups() {
		snap.PickupData = append(snap.PickupData, int(p.Kind), milli(p.Pos.X), milli(p.Pos.Y))
	}

	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick)                  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Phase)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Coins)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.CartX)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Completed)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Total)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.StoneCount)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PickupCount)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ProjectileCount) //#nosec G115 -- hash computation

	for _, v := range snap.StoneData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.PickupData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
