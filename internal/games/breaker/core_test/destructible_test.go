package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/stonefall/internal/games/breaker/core"
)

func TestDestructibleApplyDamage(t *testing.T) {
	d := core.NewDestructible(30)
	var changes []int
	d.HitPointsChanged.Connect(func(hp int) { changes = append(changes, hp) })

	if err := d.ApplyDamage(10); err != nil {
		t.Fatalf("ApplyDamage failed: %v", err)
	}
	if d.HitPoints() != 20 {
		t.Errorf("HitPoints() = %d, expected 20", d.HitPoints())
	}
	if d.IsDestroyed() {
		t.Error("should not be destroyed with hit points left")
	}
	if len(changes) != 1 || changes[0] != 20 {
		t.Errorf("changes = %v, expected [20]", changes)
	}
}

func TestDestructibleOverkillClampsToZero(t *testing.T) {
	d := core.NewDestructible(5)
	destroyed := 0
	d.Destroyed.Connect(func(struct{}) { destroyed++ })

	_ = d.ApplyDamage(50)
	if d.HitPoints() != 0 {
		t.Errorf("HitPoints() = %d, expected 0", d.HitPoints())
	}
	if !d.IsDestroyed() || destroyed != 1 {
		t.Errorf("destroyed = %v, events = %d; expected true, 1", d.IsDestroyed(), destroyed)
	}
}

func TestDestructibleNegativeDamage(t *testing.T) {
	d := core.NewDestructible(10)
	err := d.ApplyDamage(-1)
	if !errors.Is(err, core.ErrNegativeDamage) {
		t.Errorf("ApplyDamage(-1) error = %v, expected ErrNegativeDamage", err)
	}
	if d.HitPoints() != 10 {
		t.Errorf("negative damage changed hit points to %d", d.HitPoints())
	}
}

func TestDestructibleKillIdempotent(t *testing.T) {
	d := core.NewDestructible(10)
	destroyed := 0
	d.Destroyed.Connect(func(struct{}) { destroyed++ })

	d.Kill()
	d.Kill()
	_ = d.ApplyDamage(3)

	if destroyed != 1 {
		t.Errorf("Destroyed emitted %d times, expected 1", destroyed)
	}
	if d.HitPoints() != 0 {
		t.Errorf("HitPoints() = %d after kill, expected 0", d.HitPoints())
	}
}

func TestDestructibleMaxFloor(t *testing.T) {
	d := core.NewDestructible(0)
	if d.MaxHitPoints() != 1 || d.HitPoints() != 1 {
		t.Errorf("NewDestructible(0) = %d/%d, expected 1/1", d.HitPoints(), d.MaxHitPoints())
	}
}

func TestDestructibleHitPointsBounds(t *testing.T) {
	d := core.NewDestructible(17)
	for i := 0; i < 10; i++ {
		_ = d.ApplyDamage(3)
		if d.HitPoints() < 0 || d.HitPoints() > d.MaxHitPoints() {
			t.Fatalf("hit points %d out of [0, %d]", d.HitPoints(), d.MaxHitPoints())
		}
	}
}
