package core

import (
	"fmt"
	"math"

	platformcore "github.com/vovakirdan/stonefall/internal/core"
)

// Vec2 is a position or velocity in field units.
// X grows to the right, Y grows downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// StoneID identifies a stone within one World.
type StoneID int

// Stone is a fragmentable hazard.
type Stone struct {
	*Destructible

	ID      StoneID
	Tier    Tier
	Pos     Vec2
	Vel     Vec2
	Gravity bool // Set once the stone has entered the field
	Color   platformcore.Color

	removed bool
}

// NewStone creates a stone of the given tier. Returns ErrInvalidTier for
// tiers outside Small..Huge.
func NewStone(id StoneID, tier Tier, maxHitPoints int, pos Vec2) (*Stone, error) {
	if !tier.Valid() {
		return nil, fmt.Errorf("new stone: %w", ErrInvalidTier)
	}
	return &Stone{
		Destructible: NewDestructible(maxHitPoints),
		ID:           id,
		Tier:         tier,
		Pos:          pos,
		Color:        stonePalette[int(id)%len(stonePalette)],
	}, nil
}

var stonePalette = []platformcore.Color{
	platformcore.ColorBrightRed,
	platformcore.ColorBrightYellow,
	platformcore.ColorBrightMagenta,
	platformcore.ColorBrightCyan,
	platformcore.ColorOrange,
	platformcore.ColorBrightGreen,
}

// Radius returns the stone radius in rows for a Huge radius of base.
func (s *Stone) Radius(base float64) float64 {
	return base * s.Tier.Scale()
}

// HalfWidth returns the horizontal half extent in columns.
// Terminal cells are about twice as tall as wide.
func (s *Stone) HalfWidth(base float64) float64 {
	return 2 * s.Radius(base)
}

// Contains reports whether p lies inside the stone's ellipse.
func (s *Stone) Contains(p Vec2, base float64) bool {
	rx := s.HalfWidth(base)
	ry := s.Radius(base)
	dx := (p.X - s.Pos.X) / rx
	dy := (p.Y - s.Pos.Y) / ry
	return dx*dx+dy*dy <= 1
}

// Overlaps reports whether the stone touches the rectangle [minX,maxX]x[minY,maxY].
func (s *Stone) Overlaps(minX, minY, maxX, maxY, base float64) bool {
	nearest := Vec2{
		X: platformcore.ClampF(s.Pos.X, minX, maxX),
		Y: platformcore.ClampF(s.Pos.Y, minY, maxY),
	}
	return s.Contains(nearest, base)
}

// Fragments returns the two children of a destroyed stone, or nil for Small.
// Children sit at the parent's position with half its max hit points
// (at least 1), get an upward impulse and head in opposite directions.
func (s *Stone) Fragments(nextID func() StoneID, cfg StoneSettings) []*Stone {
	smaller, ok := s.Tier.Smaller()
	if !ok {
		return nil
	}

	hp := platformcore.Clamp(s.MaxHitPoints()/2, 1, s.MaxHitPoints())
	children := make([]*Stone, 0, 2)
	for i := 0; i < 2; i++ {
		dir := float64(i%2*2 - 1) // -1 for the first child, +1 for the second
		child := &Stone{
			Destructible: NewDestructible(hp),
			ID:           nextID(),
			Tier:         smaller,
			Pos:          s.Pos,
			Vel:          Vec2{X: dir * cfg.HorizontalSpeed, Y: -cfg.SpawnUpForce},
			Gravity:      s.Gravity,
			Color:        s.Color,
		}
		children = append(children, child)
	}
	return children
}

// Label returns the hit point text drawn on the stone.
func (s *Stone) Label() string {
	return HitPointLabel(s.HitPoints())
}

// HitPointLabel formats hit points, abbreviating thousands as "NK".
func HitPointLabel(hp int) string {
	if hp >= 1000 {
		return fmt.Sprintf("%dK", hp/1000)
	}
	return fmt.Sprintf("%d", hp)
}

// move advances the stone one step, bouncing off the floor and side walls.
func (s *Stone) move(dt, width, height float64, cfg StoneSettings) {
	r := s.Radius(cfg.BaseRadius)
	hw := s.HalfWidth(cfg.BaseRadius)

	if !s.Gravity && s.Pos.X >= cfg.GravityOffset && s.Pos.X <= width-cfg.GravityOffset {
		s.Gravity = true
	}
	if s.Gravity {
		s.Vel.Y += cfg.Gravity * dt
	}

	s.Pos = s.Pos.Add(s.Vel.Scale(dt))

	if s.Pos.Y+r >= height && s.Vel.Y > 0 {
		s.Pos.Y = height - r
		s.Vel.Y = -cfg.ReboundSpeed
	}
	if s.Pos.Y-r < 0 && s.Vel.Y < 0 {
		s.Pos.Y = r
		s.Vel.Y = 0
	}

	// Walls only apply once the stone has entered the field.
	if !s.Gravity {
		return
	}
	if s.Pos.X-hw <= 0 && s.Vel.X < 0 {
		s.Vel.X = math.Abs(s.Vel.X)
	}
	if s.Pos.X+hw >= width && s.Vel.X > 0 {
		s.Vel.X = -math.Abs(s.Vel.X)
	}
}
