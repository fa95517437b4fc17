package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/stonefall/internal/games/breaker/core"
)

func TestFragmentCount(t *testing.T) {
	tests := []struct {
		tier     core.Tier
		expected int
	}{
		{core.TierSmall, 1},
		{core.TierNormal, 3},
		{core.TierBig, 7},
		{core.TierHuge, 15},
	}

	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			got, err := core.FragmentCount(tt.tier)
			if err != nil {
				t.Fatalf("FragmentCount(%v) failed: %v", tt.tier, err)
			}
			if got != tt.expected {
				t.Errorf("FragmentCount(%v) = %d, expected %d", tt.tier, got, tt.expected)
			}
		})
	}
}

func TestFragmentCountRecurrence(t *testing.T) {
	for tier := core.TierNormal; tier < core.TierCount; tier++ {
		smaller, ok := tier.Smaller()
		if !ok {
			t.Fatalf("%v should have a smaller tier", tier)
		}
		n, _ := core.FragmentCount(tier)
		m, _ := core.FragmentCount(smaller)
		if n != 1+2*m {
			t.Errorf("count(%v) = %d, expected 1 + 2*%d", tier, n, m)
		}
	}
}

func TestFragmentCountInvalid(t *testing.T) {
	for _, tier := range []core.Tier{-1, core.TierCount, 42} {
		if _, err := core.FragmentCount(tier); !errors.Is(err, core.ErrInvalidTier) {
			t.Errorf("FragmentCount(%d) error = %v, expected ErrInvalidTier", int(tier), err)
		}
	}
}

func TestTierSmaller(t *testing.T) {
	if _, ok := core.TierSmall.Smaller(); ok {
		t.Error("Small must have no smaller tier")
	}
	if got, ok := core.TierHuge.Smaller(); !ok || got != core.TierBig {
		t.Errorf("Huge.Smaller() = %v, %v, expected big, true", got, ok)
	}
	if _, ok := core.Tier(-1).Smaller(); ok {
		t.Error("invalid tier must have no smaller tier")
	}
}

func TestParseTier(t *testing.T) {
	got, err := core.ParseTier("big")
	if err != nil || got != core.TierBig {
		t.Errorf("ParseTier(big) = %v, %v", got, err)
	}
	if _, err := core.ParseTier("tiny"); !errors.Is(err, core.ErrInvalidTier) {
		t.Errorf("ParseTier(tiny) error = %v, expected ErrInvalidTier", err)
	}
}
