package core

import "math"

// WeaponStats are the upgrade-adjusted turret numbers.
type WeaponStats struct {
	Damage             int
	ProjectilesPerShot int
	FireRate           float64 // Seconds between shots
}

// DamagePerSecond returns the integer damage output used for balancing.
func (w WeaponStats) DamagePerSecond() int {
	if w.FireRate <= 0 {
		return 0
	}
	return int(float64(w.Damage) * float64(w.ProjectilesPerShot) * (1 / w.FireRate))
}

// WeaponProvider exposes the current weapon stats.
type WeaponProvider interface {
	Stats() WeaponStats
}

// Upgrade identifies one of the turret upgrades.
type Upgrade int

const (
	UpgradeDamage Upgrade = iota
	UpgradeFireRate
	UpgradeProjectiles
	UpgradeCount // Sentinel value for iteration
)

// String returns the string representation of an upgrade.
func (u Upgrade) String() string {
	switch u {
	case UpgradeDamage:
		return "damage"
	case UpgradeFireRate:
		return "fire_rate"
	case UpgradeProjectiles:
		return "projectiles"
	default:
		return "unknown"
	}
}

// UpgradeLevels holds the purchased level of each upgrade.
type UpgradeLevels struct {
	Damage      int `yaml:"damage"`
	FireRate    int `yaml:"fire_rate"`
	Projectiles int `yaml:"projectiles"`
}

// Level returns the level of upgrade u.
func (l UpgradeLevels) Level(u Upgrade) int {
	switch u {
	case UpgradeDamage:
		return l.Damage
	case UpgradeFireRate:
		return l.FireRate
	case UpgradeProjectiles:
		return l.Projectiles
	default:
		return 0
	}
}

// Inc returns a copy with upgrade u raised by one level.
func (l UpgradeLevels) Inc(u Upgrade) UpgradeLevels {
	switch u {
	case UpgradeDamage:
		l.Damage++
	case UpgradeFireRate:
		l.FireRate++
	case UpgradeProjectiles:
		l.Projectiles++
	}
	return l
}

// UpgradeCost returns the price of the next level of an upgrade at level.
func UpgradeCost(level int, cfg UpgradeSettings) int {
	return cfg.BaseCost + level*cfg.CostPerLevel
}

// Turret fires projectiles from the cart. It implements WeaponProvider.
type Turret struct {
	base     TurretSettings
	upgrades UpgradeLevels
	cooldown float64
}

// NewTurret creates a turret with the given base stats and upgrades.
func NewTurret(base TurretSettings, upgrades UpgradeLevels) *Turret {
	return &Turret{base: base, upgrades: upgrades}
}

// Stats returns the upgrade-adjusted weapon stats.
// Fire rate improves by 10% of base per level and never drops below 10% of base.
func (t *Turret) Stats() WeaponStats {
	rate := t.base.FireRate * (1 - 0.1*float64(t.upgrades.FireRate))
	rate = math.Max(rate, t.base.FireRate*0.1)
	return WeaponStats{
		Damage:             t.base.Damage + 5*t.upgrades.Damage,
		ProjectilesPerShot: t.base.Projectiles + t.upgrades.Projectiles,
		FireRate:           rate,
	}
}

// Upgrades returns the purchased upgrade levels.
func (t *Turret) Upgrades() UpgradeLevels {
	return t.upgrades
}

// SetUpgrades replaces the upgrade levels.
func (t *Turret) SetUpgrades(l UpgradeLevels) {
	t.upgrades = l
}

// update advances the cooldown and returns the projectiles fired this tick.
func (t *Turret) update(dt float64, origin Vec2, trigger bool) []Projectile {
	if t.cooldown > 0 {
		t.cooldown -= dt
	}
	if !trigger || t.cooldown > 0 {
		return nil
	}

	stats := t.Stats()
	t.cooldown += stats.FireRate
	if t.cooldown < 0 {
		t.cooldown = 0
	}

	n := stats.ProjectilesPerShot
	shots := make([]Projectile, 0, n)
	for i := 0; i < n; i++ {
		offset := (float64(i) - float64(n-1)/2) * t.base.ProjectileInterval
		shots = append(shots, Projectile{
			Pos:    Vec2{X: origin.X + offset, Y: origin.Y},
			Damage: stats.Damage,
			Life:   t.base.ProjectileLifetime,
		})
	}
	return shots
}

// Projectile is a shot travelling up the field.
type Projectile struct {
	Pos    Vec2
	Damage int
	Life   float64
}
