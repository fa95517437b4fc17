package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/stonefall/internal/games/breaker/core"
)

func idSource(start core.StoneID) func() core.StoneID {
	next := start
	return func() core.StoneID {
		next++
		return next
	}
}

func TestStoneFragmentsHalveHitPoints(t *testing.T) {
	cfg := core.DefaultSettings().Stones
	parent, err := core.NewStone(1, core.TierHuge, 100, core.Vec2{X: 20, Y: 5})
	if err != nil {
		t.Fatalf("NewStone failed: %v", err)
	}

	children := parent.Fragments(idSource(1), cfg)
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	for i, c := range children {
		if c.Tier != core.TierBig {
			t.Errorf("child %d tier = %v, expected big", i, c.Tier)
		}
		if c.MaxHitPoints() != 50 {
			t.Errorf("child %d max hit points = %d, expected 50", i, c.MaxHitPoints())
		}
		if c.Pos != parent.Pos {
			t.Errorf("child %d position = %v, expected %v", i, c.Pos, parent.Pos)
		}
		if c.Vel.Y >= 0 {
			t.Errorf("child %d should get an upward impulse, vy = %v", i, c.Vel.Y)
		}
	}
	if children[0].Vel.X >= 0 || children[1].Vel.X <= 0 {
		t.Errorf("children should head apart, vx = %v, %v", children[0].Vel.X, children[1].Vel.X)
	}
	if children[0].ID == children[1].ID {
		t.Error("children must have distinct IDs")
	}
}

func TestStoneFragmentsFloorAtOne(t *testing.T) {
	cfg := core.DefaultSettings().Stones
	parent, _ := core.NewStone(1, core.TierBig, 1, core.Vec2{})

	children := parent.Fragments(idSource(1), cfg)
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	for i, c := range children {
		if c.Tier != core.TierNormal {
			t.Errorf("child %d tier = %v, expected normal", i, c.Tier)
		}
		if c.MaxHitPoints() != 1 {
			t.Errorf("child %d max hit points = %d, expected 1", i, c.MaxHitPoints())
		}
	}

	grandchildren := children[0].Fragments(idSource(10), cfg)
	for i, c := range grandchildren {
		if c.Tier != core.TierSmall || c.MaxHitPoints() != 1 {
			t.Errorf("grandchild %d = %v/%d, expected small/1", i, c.Tier, c.MaxHitPoints())
		}
	}
}

func TestSmallStoneNeverFragments(t *testing.T) {
	cfg := core.DefaultSettings().Stones
	for _, hp := range []int{1, 10, 1000} {
		s, _ := core.NewStone(1, core.TierSmall, hp, core.Vec2{})
		if got := s.Fragments(idSource(1), cfg); len(got) != 0 {
			t.Errorf("small stone with %d hp produced %d fragments", hp, len(got))
		}
	}
}

func TestNewStoneInvalidTier(t *testing.T) {
	if _, err := core.NewStone(1, core.TierCount, 10, core.Vec2{}); !errors.Is(err, core.ErrInvalidTier) {
		t.Errorf("NewStone with invalid tier error = %v, expected ErrInvalidTier", err)
	}
}

func TestHitPointLabel(t *testing.T) {
	tests := []struct {
		hp       int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1K"},
		{2500, "2K"},
		{15000, "15K"},
	}
	for _, tt := range tests {
		if got := core.HitPointLabel(tt.hp); got != tt.expected {
			t.Errorf("HitPointLabel(%d) = %q, expected %q", tt.hp, got, tt.expected)
		}
	}
}

func TestStoneContains(t *testing.T) {
	s, _ := core.NewStone(1, core.TierHuge, 10, core.Vec2{X: 10, Y: 10})
	base := 2.0 // Huge: 2 rows tall radius, 4 columns wide

	if !s.Contains(core.Vec2{X: 10, Y: 10}, base) {
		t.Error("center should be inside")
	}
	if !s.Contains(core.Vec2{X: 13.5, Y: 10}, base) {
		t.Error("point within horizontal half width should be inside")
	}
	if s.Contains(core.Vec2{X: 10, Y: 12.5}, base) {
		t.Error("point below radius should be outside")
	}
}
