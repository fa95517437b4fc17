package config

import (
	_ "embed"
)

//go:embed defaults/breaker.yaml
var defaultBreakerYAML []byte

// DefaultBreakerConfig returns the default Breaker configuration.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Balance: BalanceConfig{
			MaxHitPointsRate:       4,
			MinHitPointsPercentage: 0.3,
			AmountLevel1:           3,
			AmountLevel3:           6,
			AmountLevel6:           10,
			HugeFromLevel:          5,
			SpawnInterval:          2,
		},
		Stones: StonesConfig{
			Gravity:         20,
			ReboundSpeed:    20,
			HorizontalSpeed: 8,
			GravityOffset:   4,
			SpawnUpForce:    8,
			BaseRadius:      2.5,
			CoinChance:      0.5,
			BonusChance:     0.1,
		},
		Turret: TurretConfig{
			FireRate:           0.4,
			Damage:             10,
			Projectiles:        1,
			ProjectileInterval: 1.5,
			ProjectileSpeed:    30,
			ProjectileLifetime: 2,
			AutoFire:           true,
		},
		Cart: CartConfig{
			Speed:     40,
			Width:     7,
			NudgeStep: 4,
		},
		Pickups: PickupsConfig{
			CoinValue: 1,
			FallSpeed: 10,
			Lifetime:  10,
		},
		Effects: EffectsConfig{
			FreezeSeconds:        5,
			InvincibilitySeconds: 5,
		},
		Upgrades: UpgradesConfig{
			BaseCost:     5,
			CostPerLevel: 6,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "breaker", "breaker_endless":
		return defaultBreakerYAML
	default:
		return nil
	}
}
