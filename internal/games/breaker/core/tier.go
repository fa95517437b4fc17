// Package core provides the simulation for the Breaker game: destructible
// stones that fragment into smaller tiers, the wave spawner and balancer,
// progress accounting and the level lifecycle.
// This package is UI-agnostic and deterministic for a given seed.
package core

import (
	"errors"
	"fmt"
)

// ErrInvalidTier is returned when a tier outside Small..Huge is used.
var ErrInvalidTier = errors.New("breaker: invalid tier")

// Tier is the size class of a stone. Fragmentation always yields the tier
// directly below; there is nothing below TierSmall.
type Tier int

const (
	TierSmall Tier = iota
	TierNormal
	TierBig
	TierHuge
	TierCount // Sentinel value for iteration
)

// Valid reports whether t is one of the four size classes.
func (t Tier) Valid() bool {
	return t >= TierSmall && t < TierCount
}

// String returns the string representation of a tier.
func (t Tier) String() string {
	switch t {
	case TierSmall:
		return "small"
	case TierNormal:
		return "normal"
	case TierBig:
		return "big"
	case TierHuge:
		return "huge"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Smaller returns the tier one step down.
// The second result is false for TierSmall and for invalid tiers.
func (t Tier) Smaller() (Tier, bool) {
	if !t.Valid() || t == TierSmall {
		return t, false
	}
	return t - 1, true
}

// Scale returns the size of the tier relative to Huge.
func (t Tier) Scale() float64 {
	switch t {
	case TierSmall:
		return 0.4
	case TierNormal:
		return 0.6
	case TierBig:
		return 0.75
	default:
		return 1
	}
}

// FragmentCount returns how many destruction events one stone of tier t
// produces including every descendant: 1 for Small, 1 + 2*count(t-1) otherwise.
func FragmentCount(t Tier) (int, error) {
	if !t.Valid() {
		return 0, fmt.Errorf("fragment count of %v: %w", t, ErrInvalidTier)
	}
	smaller, ok := t.Smaller()
	if !ok {
		return 1, nil
	}
	n, err := FragmentCount(smaller)
	if err != nil {
		return 0, err
	}
	return 1 + 2*n, nil
}

// ParseTier converts a tier name to a Tier.
func ParseTier(s string) (Tier, error) {
	for t := TierSmall; t < TierCount; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("parse tier %q: %w", s, ErrInvalidTier)
}
