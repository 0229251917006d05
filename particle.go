package arena

import "math/rand/v2"

const defaultParticlePool = 512

// particleJitter is the random offset applied to each axis of a new particle.
var particleJitter = Range{Min: -2, Max: 2}

// particle holds per-particle simulation state. Positions are in the local
// space of the owning particle system node.
type particle struct {
	pos     Vec2
	life    float64 // remaining lifetime in seconds
	maxLife float64
	alpha   float64
	scale   float64
}

// ParticleSystem is the payload of a particle system node. It keeps a fixed
// pool of particles of one type; new particles are dropped when the pool is
// full.
type ParticleSystem struct {
	Type ParticleType

	data      ParticleData
	particles []particle
	alive     int
}

// NewParticleSystem creates a particle system node for the given type.
func (g *Graph) NewParticleSystem(typ ParticleType, tables *Tables) *Node {
	n := g.newNode(typ.String(), NodeTypeParticleSystem, CategoryParticleSystem)
	n.Texture = TextureParticle
	n.Source = Rect{Width: 8, Height: 8}
	n.Size = Vec2{8, 8}
	n.Particles = &ParticleSystem{
		Type:      typ,
		data:      tables.Particle(typ),
		particles: make([]particle, defaultParticlePool),
	}
	return n
}

// AddParticle spawns a particle at pos.
func (ps *ParticleSystem) AddParticle(pos Vec2) {
	if ps.alive >= len(ps.particles) {
		return
	}
	life := ps.data.Lifetime.Seconds()
	if life <= 0 {
		life = 1
	}
	ps.particles[ps.alive] = particle{
		pos:     Vec2{pos.X + particleJitter.Random(), pos.Y + particleJitter.Random()},
		life:    life,
		maxLife: life,
		alpha:   1,
		scale:   1,
	}
	ps.alive++
}

// AliveCount returns the number of live particles.
func (ps *ParticleSystem) AliveCount() int {
	return ps.alive
}

// Reset kills all live particles.
func (ps *ParticleSystem) Reset() {
	ps.alive = 0
}

// setData swaps in a new table row. Live particles keep their lifetimes.
func (ps *ParticleSystem) setData(data ParticleData) {
	ps.data = data
}

// update ages particles, swap-removing the expired ones.
func (ps *ParticleSystem) update(dt float64) {
	i := 0
	for i < ps.alive {
		p := &ps.particles[i]
		p.life -= dt
		if p.life <= 0 {
			ps.alive--
			ps.particles[i] = ps.particles[ps.alive]
			continue
		}
		t := 1 - p.life/p.maxLife
		p.alpha = lerp(1, 0, t)
		p.scale = lerp(1, 3, t)
		i++
	}
}

// emitParticle pushes a command that adds a particle to the system of the
// given type.
func emitParticle(queue *CommandQueue, typ ParticleType, pos Vec2) {
	queue.Push(Command{
		Category: CategoryParticleSystem,
		Action: func(n *Node, _ float64) {
			if n.Particles != nil && n.Particles.Type == typ {
				n.Particles.AddParticle(pos)
			}
		},
	})
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Random returns a random float64 in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}
