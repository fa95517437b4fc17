package core_test

import (
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stonefall/internal/games/breaker/core"
)

type stoneCount int

func (c *stoneCount) LiveStones() int { return int(*c) }

func newTestLifecycle(quota int) (*core.Lifecycle, *core.Spawner, *core.Cart, *stoneCount) {
	b := testBalance()
	b.AmountLevel1 = quota
	b.SpawnInterval = 1
	spawner := core.NewSpawner(b, nil, nil, rand.New(rand.NewSource(1)))
	cfg := core.DefaultSettings()
	cart := core.NewCart(cfg.Cart, cfg.Width, nil)
	live := new(stoneCount)
	return core.NewLifecycle(spawner, cart, live, log.New(io.Discard)), spawner, cart, live
}

func TestLifecycleStart(t *testing.T) {
	l, spawner, cart, _ := newTestLifecycle(2)
	if l.Phase() != core.PhaseIdle {
		t.Fatalf("initial phase = %v, expected idle", l.Phase())
	}
	if !l.Start() {
		t.Fatal("Start from idle should succeed")
	}
	if l.Phase() != core.PhaseActive || !spawner.Enabled() || !cart.Enabled() {
		t.Errorf("after Start phase=%v spawner=%v cart=%v", l.Phase(), spawner.Enabled(), cart.Enabled())
	}
	if l.Start() {
		t.Error("second Start should be rejected")
	}
}

func TestLifecycleNotPassedWhileSpawning(t *testing.T) {
	l, spawner, _, live := newTestLifecycle(3)
	passed := 0
	l.Passed.Connect(func(struct{}) { passed++ })
	l.Start()

	// First stone spawns and is destroyed before the second arrives.
	spawner.Update(0.1, func(core.Tier, int) { *live++ })
	*live = 0
	l.Update()
	if l.Phase() != core.PhaseActive || passed != 0 {
		t.Fatalf("passed while spawning: phase=%v", l.Phase())
	}

	spawner.Update(1, func(core.Tier, int) { *live++ })
	spawner.Update(1, func(core.Tier, int) { *live++ })
	if !spawner.Done() {
		t.Fatal("spawner should be done after quota")
	}
	l.Update()
	if l.Phase() != core.PhaseActive {
		t.Fatal("passed with stones still alive")
	}

	*live = 0
	l.Update()
	l.Update()
	if l.Phase() != core.PhasePassed || passed != 1 {
		t.Errorf("phase=%v passed events=%d, expected passed once", l.Phase(), passed)
	}
}

func TestLifecycleDefeatIsImmediate(t *testing.T) {
	l, spawner, cart, live := newTestLifecycle(5)
	defeated := 0
	l.Defeated.Connect(func(struct{}) { defeated++ })
	l.Start()
	spawner.Update(0.1, func(core.Tier, int) { *live++ })

	cart.Collided.Emit(1)
	cart.Collided.Emit(2)

	if l.Phase() != core.PhaseDefeated || defeated != 1 {
		t.Errorf("phase=%v defeated events=%d", l.Phase(), defeated)
	}
	if spawner.Enabled() || cart.Enabled() {
		t.Error("defeat should disable spawner and cart")
	}

	*live = 0
	spawner.SetEnabled(true)
	spawner.Update(100, nil)
	l.Update()
	if l.Phase() != core.PhaseDefeated {
		t.Errorf("terminal phase changed to %v", l.Phase())
	}
}

func TestLifecycleCollisionWhileIdleIgnored(t *testing.T) {
	l, _, cart, _ := newTestLifecycle(1)
	cart.Collided.Emit(1)
	if l.Phase() != core.PhaseIdle {
		t.Errorf("collision before start moved phase to %v", l.Phase())
	}
}

func TestLifecycleMissingCollaborators(t *testing.T) {
	var buf bytes.Buffer
	l := core.NewLifecycle(nil, nil, nil, log.New(&buf))

	out := buf.String()
	for _, want := range []string{"spawner missing", "cart missing", "hazard counter missing"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q does not mention %q", out, want)
		}
	}

	if !l.Start() {
		t.Fatal("degraded lifecycle should still start")
	}
	l.Update()
	if l.Phase() != core.PhaseActive {
		t.Errorf("without a spawner the level cannot pass, got %v", l.Phase())
	}
	l.Close()
}

func TestLifecycleClose(t *testing.T) {
	l, _, cart, _ := newTestLifecycle(1)
	l.Start()
	l.Close()
	if cart.Collided.Len() != 0 {
		t.Errorf("cart still has %d listeners after Close", cart.Collided.Len())
	}
	cart.Collided.Emit(1)
	if l.Phase() != core.PhaseActive {
		t.Error("closed lifecycle should ignore collisions")
	}
}
