package core

// Balance configures wave size and stone hit points.
type Balance struct {
	MaxHitPointsRate       float64 // Max stone HP as a multiple of turret DPS
	MinHitPointsPercentage float64 // Min stone HP as a fraction of the max
	AmountLevel1           int     // Stones spawned on level 1
	AmountLevel3           int     // Stones spawned on level 3
	AmountLevel6           int     // Stones spawned on level 6 and later
	HugeFromLevel          int     // First level that can spawn Huge stones
	SpawnInterval          float64 // Seconds between spawns
}

// StoneSettings configures stone motion and drops.
type StoneSettings struct {
	Gravity         float64 // Rows per second squared
	ReboundSpeed    float64 // Upward speed after hitting the floor
	HorizontalSpeed float64 // Columns per second
	GravityOffset   float64 // Distance inside the side walls at which gravity starts
	SpawnUpForce    float64 // Upward impulse given to fragments
	BaseRadius      float64 // Radius in rows of a Huge stone
	CoinChance      float64 // Probability of dropping a coin on destruction
	BonusChance     float64 // Probability of dropping a bonus on destruction
}

// TurretSettings configures the base weapon before upgrades.
type TurretSettings struct {
	FireRate           float64 // Seconds between shots
	Damage             int
	Projectiles        int
	ProjectileInterval float64 // Horizontal spacing between projectiles of one shot
	ProjectileSpeed    float64 // Rows per second
	ProjectileLifetime float64 // Seconds
	AutoFire           bool
}

// CartSettings configures the player's cart.
type CartSettings struct {
	Speed     float64 // Columns per second
	Width     float64 // Columns
	NudgeStep float64 // Target shift per left/right input
}

// PickupSettings configures coins and bonuses.
type PickupSettings struct {
	CoinValue int
	FallSpeed float64 // Rows per second
	Lifetime  float64 // Seconds before an uncollected pickup vanishes
}

// EffectSettings configures timed bonus durations in seconds.
type EffectSettings struct {
	FreezeSeconds        float64
	InvincibilitySeconds float64
}

// UpgradeSettings configures the upgrade price formula.
type UpgradeSettings struct {
	BaseCost     int
	CostPerLevel int
}

// Settings groups everything a World needs.
type Settings struct {
	Width    float64 // Field width in columns
	Height   float64 // Field height in rows
	TickRate int

	Balance  Balance
	Stones   StoneSettings
	Turret   TurretSettings
	Cart     CartSettings
	Pickups  PickupSettings
	Effects  EffectSettings
	Upgrades UpgradeSettings
}

// DefaultSettings returns settings tuned for an 80x24 terminal.
func DefaultSettings() Settings {
	return Settings{
		Width:    80,
		Height:   21,
		TickRate: 60,
		Balance: Balance{
			MaxHitPointsRate:       4,
			MinHitPointsPercentage: 0.3,
			AmountLevel1:           3,
			AmountLevel3:           6,
			AmountLevel6:           10,
			HugeFromLevel:          5,
			SpawnInterval:          2,
		},
		Stones: StoneSettings{
			Gravity:         20,
			ReboundSpeed:    20,
			HorizontalSpeed: 8,
			GravityOffset:   4,
			SpawnUpForce:    8,
			BaseRadius:      2.5,
			CoinChance:      0.5,
			BonusChance:     0.1,
		},
		Turret: TurretSettings{
			FireRate:           0.4,
			Damage:             10,
			Projectiles:        1,
			ProjectileInterval: 1.5,
			ProjectileSpeed:    30,
			ProjectileLifetime: 2,
			AutoFire:           true,
		},
		Cart: CartSettings{
			Speed:     40,
			Width:     7,
			NudgeStep: 4,
		},
		Pickups: PickupSettings{
			CoinValue: 1,
			FallSpeed: 10,
			Lifetime:  10,
		},
		Effects: EffectSettings{
			FreezeSeconds:        5,
			InvincibilitySeconds: 5,
		},
		Upgrades: UpgradeSettings{
			BaseCost:     5,
			CostPerLevel: 6,
		},
	}
}
