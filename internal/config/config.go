// Package config provides YAML-based configuration loading and difficulty
// presets for Stonefall.
package config

// BreakerConfig contains all configuration for the Breaker game.
type BreakerConfig struct {
	Field    FieldConfig    `yaml:"field"`
	Balance  BalanceConfig  `yaml:"balance"`
	Stones   StonesConfig   `yaml:"stones"`
	Turret   TurretConfig   `yaml:"turret"`
	Cart     CartConfig     `yaml:"cart"`
	Pickups  PickupsConfig  `yaml:"pickups"`
	Effects  EffectsConfig  `yaml:"effects"`
	Upgrades UpgradesConfig `yaml:"upgrades"`
}

// FieldConfig overrides the play field size. Zero means fit the screen.
type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BalanceConfig defines wave size and stone hit points.
type BalanceConfig struct {
	MaxHitPointsRate       float64 `yaml:"max_hitpoints_rate"`       // Max HP as a multiple of turret DPS
	MinHitPointsPercentage float64 `yaml:"min_hitpoints_percentage"` // Min HP as a fraction of max HP
	AmountLevel1           int     `yaml:"amount_level1"`
	AmountLevel3           int     `yaml:"amount_level3"`
	AmountLevel6           int     `yaml:"amount_level6"`
	HugeFromLevel          int     `yaml:"huge_from_level"`
	SpawnInterval          float64 `yaml:"spawn_interval"` // Seconds
}

// StonesConfig defines stone motion and drop chances.
type StonesConfig struct {
	Gravity         float64 `yaml:"gravity"`
	ReboundSpeed    float64 `yaml:"rebound_speed"`
	HorizontalSpeed float64 `yaml:"horizontal_speed"`
	GravityOffset   float64 `yaml:"gravity_offset"`
	SpawnUpForce    float64 `yaml:"spawn_up_force"`
	BaseRadius      float64 `yaml:"base_radius"`
	CoinChance      float64 `yaml:"coin_chance"`
	BonusChance     float64 `yaml:"bonus_chance"`
}

// TurretConfig defines the base weapon.
type TurretConfig struct {
	FireRate           float64 `yaml:"fire_rate"` // Seconds between shots
	Damage             int     `yaml:"damage"`
	Projectiles        int     `yaml:"projectiles"`
	ProjectileInterval float64 `yaml:"projectile_interval"`
	ProjectileSpeed    float64 `yaml:"projectile_speed"`
	ProjectileLifetime float64 `yaml:"projectile_lifetime"`
	AutoFire           bool    `yaml:"auto_fire"`
}

// CartConfig defines the player's cart.
type CartConfig struct {
	Speed     float64 `yaml:"speed"`
	Width     float64 `yaml:"width"`
	NudgeStep float64 `yaml:"nudge_step"`
}

// PickupsConfig defines coins and bonuses.
type PickupsConfig struct {
	CoinValue int     `yaml:"coin_value"`
	FallSpeed float64 `yaml:"fall_speed"`
	Lifetime  float64 `yaml:"lifetime"`
}

// EffectsConfig defines bonus durations in seconds.
type EffectsConfig struct {
	FreezeSeconds        float64 `yaml:"freeze_seconds"`
	InvincibilitySeconds float64 `yaml:"invincibility_seconds"`
}

// UpgradesConfig defines upgrade prices: base_cost + level*cost_per_level.
type UpgradesConfig struct {
	BaseCost     int `yaml:"base_cost"`
	CostPerLevel int `yaml:"cost_per_level"`
}
