package core

import (
	"errors"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/stonefall/internal/core"
)

var (
	// ErrNotIdle is returned when upgrades are bought during a level.
	ErrNotIdle = errors.New("breaker: level already started")
	// ErrInsufficientCoins is returned when the wallet cannot pay.
	ErrInsufficientCoins = errors.New("breaker: not enough coins")
)

// Controls is the player input for one tick.
type Controls struct {
	Nudge float64 // <0 moves the cart target left, >0 right
	Fire  bool    // Fires when auto fire is off
}

// World owns every object of one level and advances them tick by tick.
type World struct {
	cfg     Settings
	rng     *rand.Rand
	logger  *log.Logger
	profile Profile

	stones      []*Stone
	projectiles []Projectile
	pickups     []*Pickup
	nextID      StoneID

	turret    *Turret
	cart      *Cart
	wallet    *Wallet
	spawner   *Spawner
	progress  *Progress
	scheduler *Scheduler
	lifecycle *Lifecycle

	frozen    bool // Freeze effect active
	halted    bool // Level lost, stones stay where they are
	tick      int
	destroyed int

	// StoneDestroyed is emitted once for every destroyed stone, before its
	// fragments are added.
	StoneDestroyed platformcore.Signal[StoneEvent]
}

// NewWorld builds an idle level for the profile's current level.
// A nil profile uses a fresh MemoryProfile; a nil logger discards output.
func NewWorld(cfg Settings, profile Profile, seed int64, logger *log.Logger) *World {
	if profile == nil {
		profile = NewMemoryProfile()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	w := &World{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
		logger:  logger,
		profile: profile,
	}

	w.turret = NewTurret(cfg.Turret, profile.Upgrades())
	w.cart = NewCart(cfg.Cart, cfg.Width, w.turret)
	w.wallet = NewWallet(profile.Coins())
	w.spawner = NewSpawner(cfg.Balance, w.turret, profile, w.rng)
	w.progress = NewProgress(&w.StoneDestroyed)
	w.scheduler = NewScheduler()
	w.lifecycle = NewLifecycle(w.spawner, w.cart, w, logger)

	w.spawner.Completed.Connect(func(c Composition) {
		w.progress.Finalize(c)
		w.logger.Debug("spawning complete", "stones", c.Stones(), "total", c.Total())
	})
	w.lifecycle.Defeated.Connect(func(struct{}) {
		w.halted = true
	})

	w.scheduler.Register(EffectFreeze, Effect{
		Duration: w.secondsToTicks(cfg.Effects.FreezeSeconds),
		On:       func() { w.frozen = true },
		Off:      func() { w.frozen = false },
	})
	w.scheduler.Register(EffectInvincibility, Effect{
		Duration: w.secondsToTicks(cfg.Effects.InvincibilitySeconds),
		On:       func() { w.cart.SetInvincible(true) },
		Off:      func() { w.cart.SetInvincible(false) },
	})

	return w
}

func (w *World) secondsToTicks(s float64) int {
	return int(math.Round(s * float64(w.cfg.TickRate)))
}

// Start begins the wave. Reports false unless the level is idle.
func (w *World) Start() bool {
	return w.lifecycle.Start()
}

// Step advances the world by dt seconds.
// Order: effects, spawner, cart, turret, projectiles and damage, stone
// motion, cart collision, pickups, sweep, lifecycle check.
func (w *World) Step(dt float64, in Controls) {
	w.tick++
	w.scheduler.Tick()
	w.spawner.Update(dt, w.spawnStone)

	if in.Nudge != 0 && w.cart.Enabled() {
		w.cart.Nudge(in.Nudge)
	}
	w.cart.update(dt)

	if w.cart.Enabled() {
		trigger := w.cfg.Turret.AutoFire || in.Fire
		shots := w.turret.update(dt, w.cart.Muzzle(w.cfg.Height), trigger)
		w.projectiles = append(w.projectiles, shots...)
	}

	w.updateProjectiles(dt)

	if !w.frozen && !w.halted {
		for _, s := range w.stones {
			if !s.removed {
				s.move(dt, w.cfg.Width, w.cfg.Height, w.cfg.Stones)
			}
		}
	}

	w.cart.checkCollision(w.stones, w.cfg.Height, w.cfg.Stones.BaseRadius)
	w.updatePickups(dt)
	w.sweep()
	w.lifecycle.Update()
}

// spawnStone places a new stone just outside a side wall, heading inward.
func (w *World) spawnStone(t Tier, hp int) {
	s, err := NewStone(w.newID(), t, hp, Vec2{})
	if err != nil {
		w.logger.Error("spawn stone", "tier", t, "err", err)
		return
	}
	r := s.Radius(w.cfg.Stones.BaseRadius)
	hw := s.HalfWidth(w.cfg.Stones.BaseRadius)
	s.Pos.Y = r + w.rng.Float64()*w.cfg.Height*0.2
	if w.rng.Intn(2) == 0 {
		s.Pos.X = -hw
		s.Vel.X = w.cfg.Stones.HorizontalSpeed
	} else {
		s.Pos.X = w.cfg.Width + hw
		s.Vel.X = -w.cfg.Stones.HorizontalSpeed
	}
	w.addStone(s)
}

func (w *World) newID() StoneID {
	w.nextID++
	return w.nextID
}

// AddStone puts a stone into the live set and wires its destruction.
func (w *World) AddStone(s *Stone) {
	w.addStone(s)
}

func (w *World) addStone(s *Stone) {
	s.Destroyed.Connect(func(struct{}) {
		w.onStoneDestroyed(s)
	})
	w.stones = append(w.stones, s)
}

// onStoneDestroyed records the destruction, adds fragments, rolls drops
// and removes the stone, all before the lifecycle check of this tick.
func (w *World) onStoneDestroyed(s *Stone) {
	w.destroyed++
	w.StoneDestroyed.Emit(StoneEvent{ID: s.ID, Tier: s.Tier, Pos: s.Pos})

	for _, child := range s.Fragments(w.newID, w.cfg.Stones) {
		w.addStone(child)
	}

	if w.rng.Float64() < w.cfg.Stones.CoinChance {
		w.dropPickup(PickupCoin, s.Pos)
	}
	if w.rng.Float64() < w.cfg.Stones.BonusChance {
		kind := PickupFreeze
		if w.rng.Intn(2) == 1 {
			kind = PickupInvincibility
		}
		w.dropPickup(kind, s.Pos)
	}

	s.removed = true
	s.disconnect()
}

func (w *World) dropPickup(kind PickupKind, pos Vec2) {
	w.pickups = append(w.pickups, &Pickup{
		Kind: kind,
		Pos:  pos,
		Life: w.cfg.Pickups.Lifetime,
	})
}

// updateProjectiles moves shots up and applies damage to the first stone hit.
func (w *World) updateProjectiles(dt float64) {
	kept := w.projectiles[:0]
	for _, p := range w.projectiles {
		p.Pos.Y -= w.cfg.Turret.ProjectileSpeed * dt
		p.Life -= dt
		if p.Life <= 0 || p.Pos.Y < 0 {
			continue
		}
		if target := w.stoneAt(p.Pos); target != nil {
			if err := target.ApplyDamage(p.Damage); err != nil {
				w.logger.Error("apply damage", "stone", target.ID, "err", err)
			}
			continue
		}
		kept = append(kept, p)
	}
	w.projectiles = kept
}

func (w *World) stoneAt(p Vec2) *Stone {
	for _, s := range w.stones {
		if s.removed || s.IsDestroyed() {
			continue
		}
		if s.Contains(p, w.cfg.Stones.BaseRadius) {
			return s
		}
	}
	return nil
}

// updatePickups ages pickups and applies the ones the cart touches.
func (w *World) updatePickups(dt float64) {
	minX, minY, maxX, maxY := w.cart.Bounds(w.cfg.Height)
	for _, p := range w.pickups {
		if !p.update(dt, w.cfg.Height, w.cfg.Pickups) {
			p.removed = true
			continue
		}
		if !w.cart.Enabled() || !p.touches(minX, minY, maxX, maxY) {
			continue
		}
		p.removed = true
		switch p.Kind {
		case PickupCoin:
			w.wallet.Add(w.cfg.Pickups.CoinValue)
		case PickupFreeze:
			w.scheduler.Trigger(EffectFreeze)
		case PickupInvincibility:
			w.scheduler.Trigger(EffectInvincibility)
		}
	}
}

// sweep drops removed stones and pickups.
func (w *World) sweep() {
	stones := w.stones[:0]
	for _, s := range w.stones {
		if !s.removed {
			stones = append(stones, s)
		}
	}
	for i := len(stones); i < len(w.stones); i++ {
		w.stones[i] = nil
	}
	w.stones = stones

	pickups := w.pickups[:0]
	for _, p := range w.pickups {
		if !p.removed {
			pickups = append(pickups, p)
		}
	}
	for i := len(pickups); i < len(w.pickups); i++ {
		w.pickups[i] = nil
	}
	w.pickups = pickups
}

// LiveStones returns the number of stones not yet destroyed.
func (w *World) LiveStones() int {
	n := 0
	for _, s := range w.stones {
		if !s.removed {
			n++
		}
	}
	return n
}

// BuyUpgrade spends coins on an upgrade and persists the result.
// Only allowed before the level starts.
func (w *World) BuyUpgrade(u Upgrade) error {
	if w.lifecycle.Phase() != PhaseIdle {
		return ErrNotIdle
	}
	levels := w.turret.Upgrades()
	cost := UpgradeCost(levels.Level(u), w.cfg.Upgrades)
	if !w.wallet.Spend(cost) {
		return ErrInsufficientCoins
	}
	levels = levels.Inc(u)
	w.turret.SetUpgrades(levels)
	w.profile.SaveUpgrades(levels)
	w.profile.SaveCoins(w.wallet.Coins())
	w.logger.Info("upgrade bought", "upgrade", u, "level", levels.Level(u), "cost", cost)
	return nil
}

// NextUpgradeCost returns the price of the next level of u.
func (w *World) NextUpgradeCost(u Upgrade) int {
	return UpgradeCost(w.turret.Upgrades().Level(u), w.cfg.Upgrades)
}

// Close disconnects every signal the world wired up.
func (w *World) Close() {
	w.lifecycle.Close()
	w.progress.Close()
	w.spawner.Completed.DisconnectAll()
	w.wallet.Changed.DisconnectAll()
	w.scheduler.Expired.DisconnectAll()
	w.cart.Collided.DisconnectAll()
	for _, s := range w.stones {
		s.disconnect()
	}
	w.StoneDestroyed.DisconnectAll()
}

// Stones returns the live stones. The slice must not be modified.
func (w *World) Stones() []*Stone { return w.stones }

// Projectiles returns the shots in flight.
func (w *World) Projectiles() []Projectile { return w.projectiles }

// Pickups returns the pickups on the field.
func (w *World) Pickups() []*Pickup { return w.pickups }

func (w *World) Cart() *Cart           { return w.cart }
func (w *World) Turret() *Turret       { return w.turret }
func (w *World) Wallet() *Wallet       { return w.wallet }
func (w *World) Spawner() *Spawner     { return w.spawner }
func (w *World) Progress() *Progress   { return w.progress }
func (w *World) Scheduler() *Scheduler { return w.scheduler }
func (w *World) Lifecycle() *Lifecycle { return w.lifecycle }
func (w *World) Settings() Settings    { return w.cfg }

// Phase returns the lifecycle phase.
func (w *World) Phase() Phase { return w.lifecycle.Phase() }

// Level returns the level this world was built for.
func (w *World) Level() int { return w.spawner.Level() }

// Tick returns the number of steps taken.
func (w *World) Tick() int { return w.tick }

// Destroyed returns how many stones, fragments included, were destroyed.
func (w *World) Destroyed() int { return w.destroyed }

// Frozen reports whether the freeze effect holds the stones.
func (w *World) Frozen() bool { return w.frozen }

// Halted reports whether stones were stopped by a defeat.
func (w *World) Halted() bool { return w.halted }
