package core

import (
	platformcore "github.com/vovakirdan/stonefall/internal/core"
)

// Cart is the player's vehicle. It follows a target x position and
// carries the turret along the bottom row.
type Cart struct {
	X      float64 // Center
	target float64

	cfg        CartSettings
	minX, maxX float64

	enabled    bool
	invincible bool

	Turret *Turret

	// Collided is emitted with the stone that touched the cart.
	Collided platformcore.Signal[StoneID]
}

// NewCart creates a disabled cart centered in a field of the given width.
func NewCart(cfg CartSettings, fieldWidth float64, turret *Turret) *Cart {
	half := cfg.Width / 2
	c := &Cart{
		cfg:    cfg,
		minX:   half,
		maxX:   fieldWidth - half,
		Turret: turret,
	}
	if c.maxX < c.minX {
		c.maxX = c.minX
	}
	c.X = fieldWidth / 2
	c.target = c.X
	return c
}

// Width returns the cart width in columns.
func (c *Cart) Width() float64 {
	return c.cfg.Width
}

// Target returns the x position the cart is heading to.
func (c *Cart) Target() float64 {
	return c.target
}

// SetTarget sets the x position to drive to, clamped to the field.
func (c *Cart) SetTarget(x float64) {
	c.target = platformcore.ClampF(x, c.minX, c.maxX)
}

// Nudge shifts the target by NudgeStep in the direction of dir.
func (c *Cart) Nudge(dir float64) {
	c.SetTarget(c.target + platformcore.SignF(dir)*c.cfg.NudgeStep)
}

// SetEnabled turns player control on or off. Disabling twice is safe.
func (c *Cart) SetEnabled(on bool) {
	c.enabled = on
}

// Enabled reports whether the cart accepts input.
func (c *Cart) Enabled() bool {
	return c.enabled
}

// SetInvincible toggles stone collision immunity.
func (c *Cart) SetInvincible(on bool) {
	c.invincible = on
}

// Invincible reports whether stone collisions are ignored.
func (c *Cart) Invincible() bool {
	return c.invincible
}

// Bounds returns the cart rectangle for a field of the given height.
func (c *Cart) Bounds(height float64) (minX, minY, maxX, maxY float64) {
	half := c.cfg.Width / 2
	return c.X - half, height - 1, c.X + half, height
}

// Muzzle returns where projectiles leave the turret.
func (c *Cart) Muzzle(height float64) Vec2 {
	return Vec2{X: c.X, Y: height - 1}
}

// update moves the cart toward its target at most Speed*dt.
func (c *Cart) update(dt float64) {
	if !c.enabled {
		return
	}
	step := c.cfg.Speed * dt
	diff := c.target - c.X
	if diff > step {
		c.X += step
	} else if diff < -step {
		c.X -= step
	} else {
		c.X = c.target
	}
}

// checkCollision emits Collided for the first live stone touching the cart.
func (c *Cart) checkCollision(stones []*Stone, height, baseRadius float64) {
	if !c.enabled || c.invincible {
		return
	}
	minX, minY, maxX, maxY := c.Bounds(height)
	for _, s := range stones {
		if s.removed || s.IsDestroyed() {
			continue
		}
		if s.Overlaps(minX, minY, maxX, maxY, baseRadius) {
			c.Collided.Emit(s.ID)
			return
		}
	}
}
