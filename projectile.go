package arena

import "math"

// approachRate controls how sharply guided projectiles turn toward a target.
const approachRate = 200.0

// Projectile is the payload of a projectile node.
type Projectile struct {
	Type ProjectileType
	Team Team

	data     ProjectileData
	emitTime float64
}

// NewProjectile creates a projectile node. Projectiles fired by a team carry
// CategoryPlayerProjectile, all others CategoryEnemyProjectile.
func (g *Graph) NewProjectile(typ ProjectileType, team Team, tables *Tables) *Node {
	data := tables.Projectile(typ)
	category := CategoryEnemyProjectile
	if team != TeamNone {
		category = CategoryPlayerProjectile
	}
	n := g.newNode(typ.String(), NodeTypeProjectile, category)
	n.Texture = data.Texture
	n.Source = data.Source
	n.Size = data.Size
	n.Entity = newEntity(1)
	n.Projectile = &Projectile{Type: typ, Team: team, data: data}
	return n
}

// Damage returns the hitpoints a hit removes.
func (p *Projectile) Damage() int {
	return p.data.Damage
}

// MaxSpeed returns the projectile's table speed.
func (p *Projectile) MaxSpeed() float64 {
	return p.data.Speed
}

// IsGuided reports whether the projectile steers toward targets.
func (p *Projectile) IsGuided() bool {
	return p.data.Guided
}

// GuideTowards bends the velocity of n toward target, keeping its speed at
// the table maximum, and turns the node to face its heading.
func (p *Projectile) GuideTowards(n *Node, target Vec2, dt float64) {
	if !p.IsGuided() {
		return
	}
	dir := target.Sub(n.WorldPosition()).Unit()
	v := dir.Scale(approachRate * dt).Add(n.Entity.Velocity).Unit().Scale(p.MaxSpeed())
	n.Entity.Velocity = v
	n.Rotation = math.Atan2(v.Y, v.X) + math.Pi/2
}

// particleInterval is the time between trail particles of a guided projectile.
const particleInterval = 1.0 / 30

func (p *Projectile) update(n *Node, dt float64, queue *CommandQueue) {
	if n.IsDestroyed() {
		return
	}
	if p.IsGuided() {
		p.emitTime += dt
		for p.emitTime >= particleInterval {
			p.emitTime -= particleInterval
			pos := n.WorldPosition()
			emitParticle(queue, ParticleSmoke, pos)
			emitParticle(queue, ParticlePropellant, pos)
		}
	}
	n.integrate(dt)
}
