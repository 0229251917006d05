package arena

// Entity is the hitpoint and motion state shared by avatars, projectiles and
// pickups.
type Entity struct {
	// Velocity is applied to the node position each tick as pos += v*dt.
	Velocity Vec2

	hitpoints    int
	maxHitpoints int
	removed      bool
}

func newEntity(hitpoints int) *Entity {
	if hitpoints < 0 {
		hitpoints = 0
	}
	return &Entity{hitpoints: hitpoints, maxHitpoints: hitpoints}
}

// Hitpoints returns the current hitpoints, never negative.
func (e *Entity) Hitpoints() int {
	return e.hitpoints
}

// MaxHitpoints returns the hitpoints the entity was created with.
func (e *Entity) MaxHitpoints() int {
	return e.maxHitpoints
}

// Damage subtracts points from the hitpoints, clamping at zero.
func (e *Entity) Damage(points int) {
	if points <= 0 {
		return
	}
	e.hitpoints -= points
	if e.hitpoints < 0 {
		e.hitpoints = 0
	}
}

// Repair adds points back, capped at the maximum. Destroyed entities stay
// destroyed.
func (e *Entity) Repair(points int) {
	if points <= 0 || e.IsDestroyed() {
		return
	}
	e.hitpoints += points
	if e.hitpoints > e.maxHitpoints {
		e.hitpoints = e.maxHitpoints
	}
}

// Destroy drops the hitpoints to zero. Avatars still play their terminal
// effect before being pruned.
func (e *Entity) Destroy() {
	e.hitpoints = 0
}

// Remove destroys the entity and skips any terminal effect, so it is pruned
// on the next pass.
func (e *Entity) Remove() {
	e.Destroy()
	e.removed = true
}

// IsDestroyed reports whether the hitpoints have reached zero.
func (e *Entity) IsDestroyed() bool {
	return e.hitpoints <= 0
}

// SetVelocity replaces the velocity.
func (e *Entity) SetVelocity(vx, vy float64) {
	e.Velocity = Vec2{vx, vy}
}

// Accelerate adds dv to the velocity.
func (e *Entity) Accelerate(dv Vec2) {
	e.Velocity = e.Velocity.Add(dv)
}
