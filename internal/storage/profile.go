package storage

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stonefall/internal/games/breaker/core"
)

// Profile keys in the profile table.
const (
	keyLevel              = "level"
	keyCoins              = "coins"
	keyUpgradeDamage      = "upgrade_damage"
	keyUpgradeFireRate    = "upgrade_fire_rate"
	keyUpgradeProjectiles = "upgrade_projectiles"
)

// SQLProfile is a core.Profile stored in the profile table under one owner.
// Storage errors are logged and reads fall back to defaults.
type SQLProfile struct {
	store  *Store
	owner  string
	logger *log.Logger
}

// NewSQLProfile creates a profile for owner. A nil logger discards errors.
func NewSQLProfile(store *Store, owner string, logger *log.Logger) *SQLProfile {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SQLProfile{store: store, owner: owner, logger: logger}
}

// Owner returns the profile owner.
func (p *SQLProfile) Owner() string {
	return p.owner
}

func (p *SQLProfile) get(key string, def int) int {
	v, err := p.store.GetInt(p.owner, key, def)
	if err != nil {
		p.logger.Error("profile read failed", "owner", p.owner, "key", key, "err", err)
	}
	return v
}

func (p *SQLProfile) set(key string, value int) {
	if err := p.store.SetInt(p.owner, key, value); err != nil {
		p.logger.Error("profile write failed", "owner", p.owner, "key", key, "err", err)
	}
}

func (p *SQLProfile) CurrentLevel() int {
	return max(p.get(keyLevel, 1), 1)
}

func (p *SQLProfile) SetCurrentLevel(level int) {
	p.set(keyLevel, max(level, 1))
}

func (p *SQLProfile) Coins() int {
	return p.get(keyCoins, 0)
}

func (p *SQLProfile) SaveCoins(coins int) {
	p.set(keyCoins, coins)
}

func (p *SQLProfile) Upgrades() core.UpgradeLevels {
	return core.UpgradeLevels{
		Damage:      p.get(keyUpgradeDamage, 0),
		FireRate:    p.get(keyUpgradeFireRate, 0),
		Projectiles: p.get(keyUpgradeProjectiles, 0),
	}
}

func (p *SQLProfile) SaveUpgrades(l core.UpgradeLevels) {
	p.set(keyUpgradeDamage, l.Damage)
	p.set(keyUpgradeFireRate, l.FireRate)
	p.set(keyUpgradeProjectiles, l.Projectiles)
}

func (p *SQLProfile) Reset() {
	if err := p.store.DeleteProfile(p.owner); err != nil {
		p.logger.Error("profile reset failed", "owner", p.owner, "err", err)
	}
}

var _ core.Profile = (*SQLProfile)(nil)
