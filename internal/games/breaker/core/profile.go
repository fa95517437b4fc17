package core

// Profile is the player's persisted progress: level, coins and upgrades.
// Implementations handle their own storage errors; the simulation never
// waits on or fails because of them.
type Profile interface {
	LevelCounter
	Coins() int
	SaveCoins(coins int)
	Upgrades() UpgradeLevels
	SaveUpgrades(levels UpgradeLevels)
	// Reset returns the profile to level 1 with no coins or upgrades.
	Reset()
}

// MemoryProfile is a Profile that lives for the process only.
type MemoryProfile struct {
	level    int
	coins    int
	upgrades UpgradeLevels
}

// NewMemoryProfile creates a fresh profile at level 1.
func NewMemoryProfile() *MemoryProfile {
	return &MemoryProfile{level: 1}
}

func (p *MemoryProfile) CurrentLevel() int { return p.level }

func (p *MemoryProfile) SetCurrentLevel(level int) {
	if level < 1 {
		level = 1
	}
	p.level = level
}

func (p *MemoryProfile) Coins() int { return p.coins }

func (p *MemoryProfile) SaveCoins(coins int) { p.coins = coins }

func (p *MemoryProfile) Upgrades() UpgradeLevels { return p.upgrades }

func (p *MemoryProfile) SaveUpgrades(levels UpgradeLevels) { p.upgrades = levels }

func (p *MemoryProfile) Reset() {
	*p = MemoryProfile{level: 1}
}
