package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/stonefall/internal/games/breaker/core"
)

const dt = 1.0 / 60

// quietSettings returns settings where nothing happens unless a test asks:
// no auto fire, no drops, every stone of the wave spawned on the first tick.
func quietSettings() core.Settings {
	cfg := core.DefaultSettings()
	cfg.Turret.AutoFire = false
	cfg.Stones.CoinChance = 0
	cfg.Stones.BonusChance = 0
	cfg.Balance.SpawnInterval = 0
	return cfg
}

// destroyAll kills every live stone, fragments included, without stepping.
func destroyAll(w *core.World) int {
	kills := 0
	for {
		alive := make([]*core.Stone, 0, len(w.Stones()))
		for _, s := range w.Stones() {
			if !s.IsDestroyed() {
				alive = append(alive, s)
			}
		}
		if len(alive) == 0 {
			return kills
		}
		for _, s := range alive {
			s.Kill()
			kills++
		}
	}
}

func TestWorldWaveProgressReachesHundred(t *testing.T) {
	w := core.NewWorld(quietSettings(), nil, 1, nil)
	if !w.Start() {
		t.Fatal("Start failed")
	}
	w.Step(dt, core.Controls{})

	if !w.Progress().Finalized() {
		t.Fatal("progress should be finalized once every stone is spawned")
	}
	total := w.Progress().Total()
	if total != w.Spawner().Composition().Total() {
		t.Errorf("progress total %d does not match composition total %d", total, w.Spawner().Composition().Total())
	}

	kills := destroyAll(w)
	if kills != total {
		t.Errorf("destroyed %d stones, expected %d including fragments", kills, total)
	}
	if w.Progress().Completed() != total {
		t.Errorf("Completed() = %d, expected %d", w.Progress().Completed(), total)
	}
	if w.Progress().Percent() != 100 {
		t.Errorf("Percent() = %v, expected 100", w.Progress().Percent())
	}

	w.Step(dt, core.Controls{})
	if w.Phase() != core.PhasePassed {
		t.Errorf("phase = %v, expected passed", w.Phase())
	}
}

func TestWorldFragmentsEnterLiveSet(t *testing.T) {
	w := core.NewWorld(quietSettings(), nil, 1, nil)
	stone, _ := core.NewStone(1000, core.TierHuge, 100, core.Vec2{X: 40, Y: 5})
	w.AddStone(stone)

	var events []core.StoneEvent
	w.StoneDestroyed.Connect(func(e core.StoneEvent) { events = append(events, e) })

	if err := stone.ApplyDamage(100); err != nil {
		t.Fatalf("ApplyDamage failed: %v", err)
	}

	if len(events) != 1 || events[0].Tier != core.TierHuge {
		t.Fatalf("events = %v, expected one huge destruction", events)
	}
	if w.LiveStones() != 2 {
		t.Fatalf("LiveStones() = %d, expected 2 fragments", w.LiveStones())
	}
	for _, s := range w.Stones() {
		if s.IsDestroyed() {
			continue
		}
		if s.Tier != core.TierBig || s.MaxHitPoints() != 50 {
			t.Errorf("fragment = %v/%d, expected big/50", s.Tier, s.MaxHitPoints())
		}
	}

	// The destroyed parent is disconnected; killing it again adds nothing.
	stone.Kill()
	if len(events) != 1 {
		t.Errorf("second kill produced %d events", len(events))
	}
}

func TestWorldTurretDestroysStones(t *testing.T) {
	cfg := quietSettings()
	cfg.Turret.AutoFire = true
	w := core.NewWorld(cfg, nil, 1, nil)
	w.Start()
	w.Step(dt, core.Controls{})

	stone, _ := core.NewStone(1000, core.TierSmall, 1, core.Vec2{X: w.Cart().X, Y: 5})
	w.AddStone(stone)

	for i := 0; i < 120 && !stone.IsDestroyed(); i++ {
		w.Step(dt, core.Controls{})
		stone.Pos = core.Vec2{X: w.Cart().X, Y: 5}
		stone.Vel = core.Vec2{}
	}
	if !stone.IsDestroyed() {
		t.Error("turret should destroy a small stone directly above the cart")
	}
}

func TestWorldDefeatHaltsStones(t *testing.T) {
	cfg := quietSettings()
	cfg.Balance.AmountLevel1 = 1
	w := core.NewWorld(cfg, nil, 1, nil)
	w.Start()
	w.Step(dt, core.Controls{})

	// Drop a stone onto the cart.
	stone, _ := core.NewStone(1000, core.TierNormal, 10, core.Vec2{X: w.Cart().X, Y: cfg.Height - 1})
	stone.Gravity = true
	w.AddStone(stone)
	w.Step(dt, core.Controls{})

	if w.Phase() != core.PhaseDefeated {
		t.Fatalf("phase = %v, expected defeated", w.Phase())
	}
	if !w.Halted() {
		t.Error("defeat should halt stones")
	}

	before := stone.Pos
	w.Step(dt, core.Controls{})
	if stone.Pos != before {
		t.Errorf("halted stone moved from %v to %v", before, stone.Pos)
	}
}

func TestWorldInvincibilityIgnoresCollision(t *testing.T) {
	cfg := quietSettings()
	w := core.NewWorld(cfg, nil, 1, nil)
	w.Start()
	w.Scheduler().Trigger(core.EffectInvincibility)

	stone, _ := core.NewStone(1000, core.TierNormal, 10, core.Vec2{X: w.Cart().X, Y: cfg.Height - 1})
	w.AddStone(stone)
	w.Step(dt, core.Controls{})

	if w.Phase() == core.PhaseDefeated {
		t.Error("invincible cart should not be defeated")
	}
}

func TestWorldFreezeStopsStones(t *testing.T) {
	cfg := quietSettings()
	w := core.NewWorld(cfg, nil, 1, nil)
	stone, _ := core.NewStone(1000, core.TierNormal, 10, core.Vec2{X: 40, Y: 5})
	stone.Vel = core.Vec2{X: 5, Y: 0}
	w.AddStone(stone)

	w.Scheduler().Trigger(core.EffectFreeze)
	w.Step(dt, core.Controls{})
	if stone.Pos.X != 40 || !w.Frozen() {
		t.Errorf("frozen stone moved to %v", stone.Pos)
	}

	ticks := int(cfg.Effects.FreezeSeconds * float64(cfg.TickRate))
	for i := 0; i < ticks; i++ {
		w.Step(dt, core.Controls{})
	}
	if w.Frozen() || stone.Pos.X == 40 {
		t.Errorf("stone should move again after freeze, frozen=%v x=%v", w.Frozen(), stone.Pos.X)
	}
}

func TestWorldCoinDropsAndCollect(t *testing.T) {
	cfg := quietSettings()
	cfg.Stones.CoinChance = 1
	w := core.NewWorld(cfg, nil, 1, nil)
	w.Start()

	stone, _ := core.NewStone(1000, core.TierSmall, 1, core.Vec2{X: w.Cart().X, Y: 2})
	w.AddStone(stone)
	stone.Kill()

	if len(w.Pickups()) != 1 || w.Pickups()[0].Kind != core.PickupCoin {
		t.Fatalf("expected one coin pickup, got %d", len(w.Pickups()))
	}

	for i := 0; i < 5*cfg.TickRate && w.Wallet().Coins() == 0; i++ {
		w.Step(dt, core.Controls{})
	}
	if w.Wallet().Coins() != cfg.Pickups.CoinValue {
		t.Errorf("Coins() = %d, expected %d", w.Wallet().Coins(), cfg.Pickups.CoinValue)
	}
}

func TestWorldBuyUpgrade(t *testing.T) {
	profile := core.NewMemoryProfile()
	profile.SaveCoins(20)
	w := core.NewWorld(quietSettings(), profile, 1, nil)

	if err := w.BuyUpgrade(core.UpgradeDamage); err != nil {
		t.Fatalf("BuyUpgrade failed: %v", err)
	}
	if w.Wallet().Coins() != 15 || profile.Coins() != 15 {
		t.Errorf("coins = %d (saved %d), expected 15", w.Wallet().Coins(), profile.Coins())
	}
	if profile.Upgrades().Damage != 1 {
		t.Errorf("saved damage level = %d, expected 1", profile.Upgrades().Damage)
	}
	if got := w.Turret().Stats().Damage; got != 15 {
		t.Errorf("damage = %d, expected 15", got)
	}

	// Second level costs 5 + 6 = 11, only 15 left.
	if err := w.BuyUpgrade(core.UpgradeDamage); err != nil {
		t.Fatalf("second BuyUpgrade failed: %v", err)
	}
	if err := w.BuyUpgrade(core.UpgradeDamage); !errors.Is(err, core.ErrInsufficientCoins) {
		t.Errorf("error = %v, expected ErrInsufficientCoins", err)
	}

	w.Start()
	if err := w.BuyUpgrade(core.UpgradeFireRate); !errors.Is(err, core.ErrNotIdle) {
		t.Errorf("error = %v, expected ErrNotIdle", err)
	}
}

func TestWorldUsesProfileLevel(t *testing.T) {
	profile := core.NewMemoryProfile()
	profile.SetCurrentLevel(6)
	cfg := quietSettings()
	w := core.NewWorld(cfg, profile, 1, nil)
	w.Start()

	if w.Level() != 6 {
		t.Errorf("Level() = %d, expected 6", w.Level())
	}
	if w.Spawner().Quota() != cfg.Balance.AmountLevel6 {
		t.Errorf("Quota() = %d, expected %d", w.Spawner().Quota(), cfg.Balance.AmountLevel6)
	}
}

func TestWorldClose(t *testing.T) {
	w := core.NewWorld(quietSettings(), nil, 1, nil)
	w.Start()
	w.Step(dt, core.Controls{})
	w.Close()

	if w.StoneDestroyed.Len() != 0 {
		t.Errorf("StoneDestroyed has %d listeners after Close", w.StoneDestroyed.Len())
	}
	for _, s := range w.Stones() {
		if s.Destroyed.Len() != 0 {
			t.Errorf("stone %d still wired after Close", s.ID)
		}
	}
}

func TestTurretStats(t *testing.T) {
	base := core.DefaultSettings().Turret
	base.FireRate = 1
	base.Damage = 10
	base.Projectiles = 1

	tests := []struct {
		levels   core.UpgradeLevels
		expected core.WeaponStats
	}{
		{core.UpgradeLevels{}, core.WeaponStats{Damage: 10, ProjectilesPerShot: 1, FireRate: 1}},
		{core.UpgradeLevels{Damage: 2}, core.WeaponStats{Damage: 20, ProjectilesPerShot: 1, FireRate: 1}},
		{core.UpgradeLevels{Projectiles: 3}, core.WeaponStats{Damage: 10, ProjectilesPerShot: 4, FireRate: 1}},
		{core.UpgradeLevels{FireRate: 20}, core.WeaponStats{Damage: 10, ProjectilesPerShot: 1, FireRate: 0.1}},
	}
	for _, tt := range tests {
		got := core.NewTurret(base, tt.levels).Stats()
		if got != tt.expected {
			t.Errorf("Stats(%+v) = %+v, expected %+v", tt.levels, got, tt.expected)
		}
	}
}

func TestUpgradeCost(t *testing.T) {
	cfg := core.UpgradeSettings{BaseCost: 5, CostPerLevel: 6}
	for level, want := range []int{5, 11, 17} {
		if got := core.UpgradeCost(level, cfg); got != want {
			t.Errorf("UpgradeCost(%d) = %d, expected %d", level, got, want)
		}
	}
}
