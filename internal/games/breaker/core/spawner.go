package core

import (
	"math"
	"math/rand"

	platformcore "github.com/vovakirdan/stonefall/internal/core"
)

// LevelCounter is the persisted current level.
type LevelCounter interface {
	CurrentLevel() int
	SetCurrentLevel(level int)
}

// HitPointRange derives the stone hit point range from weapon output:
// max = dps * MaxHitPointsRate, min = max * MinHitPointsPercentage.
func HitPointRange(w WeaponStats, b Balance) (min, max int) {
	dps := w.DamagePerSecond()
	max = int(float64(dps) * b.MaxHitPointsRate)
	min = int(float64(max) * b.MinHitPointsPercentage)
	return min, max
}

// SpawnQuota returns the number of stones for a level by interpolating
// between the level 1, 3 and 6 amounts.
func SpawnQuota(level int, b Balance) int {
	switch {
	case level <= 1:
		return b.AmountLevel1
	case level <= 3:
		t := float64(level-1) / 2
		return int(math.Round(platformcore.Lerp(float64(b.AmountLevel1), float64(b.AmountLevel3), t)))
	case level <= 6:
		t := float64(level-3) / 3
		return int(math.Round(platformcore.Lerp(float64(b.AmountLevel3), float64(b.AmountLevel6), t)))
	default:
		return b.AmountLevel6
	}
}

// Spawner releases one wave of stones at a fixed cadence.
type Spawner struct {
	balance Balance
	weapon  WeaponProvider
	levels  LevelCounter
	rng     *rand.Rand

	enabled     bool
	done        bool
	timer       float64
	quota       int
	spawned     int
	composition Composition
	minHP       int
	maxHP       int

	// Completed is emitted once per wave with the final composition.
	Completed platformcore.Signal[Composition]
}

// NewSpawner creates a spawner prepared for the current level.
// It stays disabled until SetEnabled(true) or Reset.
// weapon and levels may be nil: hit points then floor to 1 and the level is 1.
func NewSpawner(b Balance, weapon WeaponProvider, levels LevelCounter, rng *rand.Rand) *Spawner {
	s := &Spawner{
		balance: b,
		weapon:  weapon,
		levels:  levels,
		rng:     rng,
	}
	s.prepare()
	return s
}

// Level returns the level the current wave is built for.
func (s *Spawner) Level() int {
	if s.levels == nil {
		return 1
	}
	return max(s.levels.CurrentLevel(), 1)
}

// prepare derives the quota and hit points for a fresh wave.
func (s *Spawner) prepare() {
	s.quota = max(SpawnQuota(s.Level(), s.balance), 0)
	s.spawned = 0
	s.composition = Composition{}
	s.done = false
	s.timer = s.balance.SpawnInterval // first spawn on the first tick

	var stats WeaponStats
	if s.weapon != nil {
		stats = s.weapon.Stats()
	}
	s.minHP, s.maxHP = HitPointRange(stats, s.balance)
}

// Reset starts a fresh wave for the current level and enables spawning.
func (s *Spawner) Reset() {
	s.prepare()
	s.enabled = true
}

// SetEnabled turns spawning on or off. Disabling twice is safe.
func (s *Spawner) SetEnabled(on bool) {
	s.enabled = on
}

// Enabled reports whether the spawner is running.
func (s *Spawner) Enabled() bool {
	return s.enabled
}

// Done reports whether the wave quota has been reached.
func (s *Spawner) Done() bool {
	return s.done
}

// Quota returns the number of stones in this wave.
func (s *Spawner) Quota() int {
	return s.quota
}

// Spawned returns the number of stones released so far.
func (s *Spawner) Spawned() int {
	return s.spawned
}

// Composition returns the stones spawned so far per tier.
func (s *Spawner) Composition() Composition {
	return s.composition
}

// HitPoints returns the hit point range of this wave.
func (s *Spawner) HitPoints() (min, max int) {
	return s.minHP, s.maxHP
}

// Update advances the spawn timer and calls spawn for every stone released.
func (s *Spawner) Update(dt float64, spawn func(t Tier, hp int)) {
	if !s.enabled || s.done {
		return
	}

	s.timer += dt
	for s.spawned < s.quota && s.timer >= s.balance.SpawnInterval {
		s.timer -= s.balance.SpawnInterval
		tier := s.pickTier()
		hp := s.pickHitPoints()
		_ = s.composition.Add(tier)
		s.spawned++
		if spawn != nil {
			spawn(tier, hp)
		}
	}

	if s.spawned >= s.quota {
		s.enabled = false
		s.done = true
		s.Completed.Emit(s.composition)
	}
}

// pickTier draws Normal or Big, plus Huge from HugeFromLevel on.
func (s *Spawner) pickTier() Tier {
	choices := 2
	if s.Level() >= s.balance.HugeFromLevel {
		choices = 3
	}
	return TierNormal + Tier(s.rng.Intn(choices))
}

// pickHitPoints draws uniformly from [min, max], floored to 1.
func (s *Spawner) pickHitPoints() int {
	hp := s.minHP
	if s.maxHP > s.minHP {
		hp += s.rng.Intn(s.maxHP - s.minHP + 1)
	}
	return max(hp, 1)
}
