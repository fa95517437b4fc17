package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/stonefall/internal/games/breaker/core"
)

func TestSQLProfile(t *testing.T) {
	store := openTestStore(t)
	p := NewSQLProfile(store, "alice", nil)

	if p.CurrentLevel() != 1 || p.Coins() != 0 || p.Upgrades() != (core.UpgradeLevels{}) {
		t.Fatalf("fresh profile = level %d, coins %d, upgrades %+v", p.CurrentLevel(), p.Coins(), p.Upgrades())
	}

	p.SetCurrentLevel(3)
	p.SaveCoins(12)
	p.SaveUpgrades(core.UpgradeLevels{Damage: 1, Projectiles: 2})

	// A second handle on the same owner sees the saved values.
	again := NewSQLProfile(store, "alice", nil)
	if again.CurrentLevel() != 3 || again.Coins() != 12 {
		t.Errorf("reloaded level/coins = %d/%d, expected 3/12", again.CurrentLevel(), again.Coins())
	}
	if got := again.Upgrades(); got.Damage != 1 || got.Projectiles != 2 || got.FireRate != 0 {
		t.Errorf("reloaded upgrades = %+v", got)
	}

	other := NewSQLProfile(store, "bob", nil)
	if other.CurrentLevel() != 1 {
		t.Error("profiles of different owners must be independent")
	}

	p.Reset()
	if p.CurrentLevel() != 1 || p.Coins() != 0 {
		t.Errorf("after Reset level/coins = %d/%d", p.CurrentLevel(), p.Coins())
	}
}

func TestSQLProfileDrivesWorld(t *testing.T) {
	store := openTestStore(t)
	p := NewSQLProfile(store, "local", nil)
	p.SetCurrentLevel(6)
	p.SaveCoins(30)

	w := core.NewWorld(core.DefaultSettings(), p, 1, nil)
	if w.Level() != 6 || w.Wallet().Coins() != 30 {
		t.Errorf("world level/coins = %d/%d, expected 6/30", w.Level(), w.Wallet().Coins())
	}
	if err := w.BuyUpgrade(core.UpgradeProjectiles); err != nil {
		t.Fatalf("BuyUpgrade failed: %v", err)
	}
	if p.Upgrades().Projectiles != 1 || p.Coins() != 25 {
		t.Errorf("saved upgrades/coins = %+v/%d", p.Upgrades(), p.Coins())
	}
}

// openTestPrefs opens Prefs under a unique app name and removes its
// directory when the test ends.
func openTestPrefs(t *testing.T, appName string) *Prefs {
	t.Helper()
	p := OpenPrefs(appName, nil)
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	return p
}

func TestPrefsRoundTrip(t *testing.T) {
	appName := fmt.Sprintf("stonefall_test_prefs_%d", time.Now().UnixNano())
	p := openTestPrefs(t, appName)
	if !p.Persistent() {
		t.Skip("no data directory available for gdata")
	}

	if p.CurrentLevel() != 1 {
		t.Fatalf("fresh prefs level = %d, expected 1", p.CurrentLevel())
	}
	p.SetCurrentLevel(4)
	p.SaveCoins(7)
	p.SaveUpgrades(core.UpgradeLevels{FireRate: 3})

	reopened := openTestPrefs(t, appName)
	if reopened.CurrentLevel() != 4 || reopened.Coins() != 7 || reopened.Upgrades().FireRate != 3 {
		t.Errorf("reopened prefs = level %d, coins %d, upgrades %+v",
			reopened.CurrentLevel(), reopened.Coins(), reopened.Upgrades())
	}

	reopened.Reset()
	fresh := openTestPrefs(t, appName)
	if fresh.CurrentLevel() != 1 || fresh.Coins() != 0 {
		t.Errorf("after Reset level/coins = %d/%d", fresh.CurrentLevel(), fresh.Coins())
	}
}

func TestPrefsMemoryOnly(t *testing.T) {
	p := &Prefs{state: defaultPrefsState()}
	p.SetCurrentLevel(0)
	if p.CurrentLevel() != 1 {
		t.Errorf("level floor = %d, expected 1", p.CurrentLevel())
	}
	p.SaveCoins(3) // no manager: must not panic
	if p.Coins() != 3 {
		t.Errorf("Coins() = %d, expected 3", p.Coins())
	}
}
