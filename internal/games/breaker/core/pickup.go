package core

// PickupKind represents different types of pickups dropped by stones.
type PickupKind int

const (
	PickupCoin          PickupKind = iota // Adds coins to the wallet
	PickupFreeze                          // Freezes every stone
	PickupInvincibility                   // Cart ignores stones
)

// Glyph returns the display character for a pickup kind.
func (k PickupKind) Glyph() rune {
	switch k {
	case PickupCoin:
		return '$'
	case PickupFreeze:
		return '*'
	case PickupInvincibility:
		return '+'
	default:
		return '?'
	}
}

// String returns the name of the pickup kind.
func (k PickupKind) String() string {
	switch k {
	case PickupCoin:
		return "coin"
	case PickupFreeze:
		return string(EffectFreeze)
	case PickupInvincibility:
		return string(EffectInvincibility)
	default:
		return "unknown"
	}
}

// Pickup is a falling collectible. It lands on the bottom row and
// disappears when its lifetime runs out.
type Pickup struct {
	Kind   PickupKind
	Pos    Vec2
	Life   float64
	Landed bool

	removed bool
}

// update moves the pickup down and ages it. Reports false once expired.
func (p *Pickup) update(dt, height float64, cfg PickupSettings) bool {
	if !p.Landed {
		p.Pos.Y += cfg.FallSpeed * dt
		if p.Pos.Y >= height-0.5 {
			p.Pos.Y = height - 0.5
			p.Landed = true
		}
	}
	p.Life -= dt
	return p.Life > 0
}

// touches reports whether the pickup is inside the cart rectangle.
func (p *Pickup) touches(minX, minY, maxX, maxY float64) bool {
	return p.Pos.X >= minX && p.Pos.X <= maxX && p.Pos.Y >= minY && p.Pos.Y <= maxY
}
