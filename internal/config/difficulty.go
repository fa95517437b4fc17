package config

import (
	"errors"
	"fmt"
	"math"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", s)
	}
}

// IsFixedPreset returns true if the preset disables wave growth.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyBreakerPreset modifies the balance section for a difficulty preset.
func ApplyBreakerPreset(cfg *BreakerConfig, preset DifficultyPreset) {
	b := &cfg.Balance
	switch preset {
	case DifficultyEasy:
		b.MaxHitPointsRate *= 0.75
		b.AmountLevel1 = scaleAmount(b.AmountLevel1, 0.75)
		b.AmountLevel3 = scaleAmount(b.AmountLevel3, 0.75)
		b.AmountLevel6 = scaleAmount(b.AmountLevel6, 0.75)
		b.HugeFromLevel += 2
	case DifficultyHard:
		b.MaxHitPointsRate *= 1.25
		b.AmountLevel1 = scaleAmount(b.AmountLevel1, 1.25)
		b.AmountLevel3 = scaleAmount(b.AmountLevel3, 1.25)
		b.AmountLevel6 = scaleAmount(b.AmountLevel6, 1.25)
		b.HugeFromLevel = max(b.HugeFromLevel-2, 1)
	case DifficultyFixed:
		// Every level plays like level 1.
		b.AmountLevel3 = b.AmountLevel1
		b.AmountLevel6 = b.AmountLevel1
	}
}

func scaleAmount(n int, k float64) int {
	return max(int(math.Round(float64(n)*k)), 1)
}

// Validate reports every out-of-range value in the config.
func (c BreakerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	b := c.Balance
	check(b.MaxHitPointsRate > 0, "balance.max_hitpoints_rate must be positive, got %v", b.MaxHitPointsRate)
	check(b.MinHitPointsPercentage >= 0 && b.MinHitPointsPercentage <= 1,
		"balance.min_hitpoints_percentage must be in [0, 1], got %v", b.MinHitPointsPercentage)
	check(b.AmountLevel1 >= 1 && b.AmountLevel3 >= 1 && b.AmountLevel6 >= 1,
		"balance amounts must be at least 1, got %d/%d/%d", b.AmountLevel1, b.AmountLevel3, b.AmountLevel6)
	check(b.HugeFromLevel >= 1, "balance.huge_from_level must be at least 1, got %d", b.HugeFromLevel)
	check(b.SpawnInterval >= 0, "balance.spawn_interval must not be negative, got %v", b.SpawnInterval)

	s := c.Stones
	check(s.Gravity >= 0, "stones.gravity must not be negative, got %v", s.Gravity)
	check(s.BaseRadius > 0, "stones.base_radius must be positive, got %v", s.BaseRadius)
	check(s.CoinChance >= 0 && s.CoinChance <= 1, "stones.coin_chance must be in [0, 1], got %v", s.CoinChance)
	check(s.BonusChance >= 0 && s.BonusChance <= 1, "stones.bonus_chance must be in [0, 1], got %v", s.BonusChance)

	t := c.Turret
	check(t.FireRate > 0, "turret.fire_rate must be positive, got %v", t.FireRate)
	check(t.Damage >= 0, "turret.damage must not be negative, got %d", t.Damage)
	check(t.Projectiles >= 1, "turret.projectiles must be at least 1, got %d", t.Projectiles)
	check(t.ProjectileSpeed > 0, "turret.projectile_speed must be positive, got %v", t.ProjectileSpeed)

	check(c.Cart.Width >= 1, "cart.width must be at least 1, got %v", c.Cart.Width)
	check(c.Cart.Speed > 0, "cart.speed must be positive, got %v", c.Cart.Speed)
	check(c.Pickups.Lifetime > 0, "pickups.lifetime must be positive, got %v", c.Pickups.Lifetime)
	check(c.Effects.FreezeSeconds >= 0 && c.Effects.InvincibilitySeconds >= 0,
		"effect durations must not be negative")
	check(c.Upgrades.BaseCost >= 0 && c.Upgrades.CostPerLevel >= 0, "upgrade costs must not be negative")

	return errors.Join(errs...)
}
