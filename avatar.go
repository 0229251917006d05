package arena

import (
	"math"
	"math/rand/v2"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	maxFireRate    = 10
	maxSpreadLevel = 3
	startMissiles  = 2
)

// Avatar is the payload of an avatar node: a player-controlled team member or
// an AI enemy.
type Avatar struct {
	Type       AvatarType
	Identifier int
	Team       Team

	data   AvatarData
	tables *Tables

	hasBall     bool
	fireRate    int
	spreadLevel int
	missileAmmo int

	isFiring           bool
	isLaunchingMissile bool
	fireCountdown      float64

	travelled      float64
	directionIndex int

	effect        *gween.Tween
	effectStarted bool
	effectDone    bool
}

// NewAvatar creates an avatar node of the given type. Team A and B avatars get
// their team's player category; every other type is an AI enemy.
func (g *Graph) NewAvatar(typ AvatarType, tables *Tables) *Node {
	data := tables.Avatar(typ)
	team, category := TeamNone, CategoryEnemyAvatar
	switch typ {
	case AvatarTeamA:
		team, category = TeamA, CategoryAvatarTeamA
	case AvatarTeamB:
		team, category = TeamB, CategoryAvatarTeamB
	}
	n := g.newNode(typ.String(), NodeTypeAvatar, category)
	n.Texture = data.Texture
	n.Source = data.Source
	n.Size = data.Size
	n.Entity = newEntity(data.Hitpoints)
	n.Avatar = &Avatar{
		Type:        typ,
		Team:        team,
		data:        data,
		tables:      tables,
		hasBall:     true,
		fireRate:    1,
		spreadLevel: 1,
		missileAmmo: startMissiles,
	}
	return n
}

// IsPlayer reports whether the avatar belongs to one of the two teams.
func (a *Avatar) IsPlayer() bool {
	return a.Team != TeamNone
}

// HasBall reports whether the avatar holds its consumable resource.
func (a *Avatar) HasBall() bool {
	return a.hasBall
}

// PickUpBall sets the resource flag.
func (a *Avatar) PickUpBall() {
	a.hasBall = true
}

// MaxSpeed returns the avatar's table speed.
func (a *Avatar) MaxSpeed() float64 {
	return a.data.Speed
}

// MissileAmmo returns the number of missiles left.
func (a *Avatar) MissileAmmo() int {
	return a.missileAmmo
}

// FireRate returns the current fire rate level.
func (a *Avatar) FireRate() int {
	return a.fireRate
}

// SpreadLevel returns the current spread level.
func (a *Avatar) SpreadLevel() int {
	return a.spreadLevel
}

// IncreaseFireRate raises the fire rate level, up to 10.
func (a *Avatar) IncreaseFireRate() {
	if a.fireRate < maxFireRate {
		a.fireRate++
	}
}

// IncreaseSpread raises the spread level, up to 3.
func (a *Avatar) IncreaseSpread() {
	if a.spreadLevel < maxSpreadLevel {
		a.spreadLevel++
	}
}

// CollectMissiles adds count missiles.
func (a *Avatar) CollectMissiles(count int) {
	a.missileAmmo += count
}

// Fire requests a volley on the next update. Avatars without a fire interval,
// and player avatars without the ball, cannot fire.
func (a *Avatar) Fire() {
	if a.data.FireInterval == 0 {
		return
	}
	if a.IsPlayer() && !a.hasBall {
		return
	}
	a.isFiring = true
}

// LaunchMissile requests a missile launch on the next update if ammo remains.
func (a *Avatar) LaunchMissile() {
	if a.missileAmmo > 0 {
		a.isLaunchingMissile = true
		a.missileAmmo--
	}
}

func (a *Avatar) effectFinished() bool {
	return a.effectDone
}

func (a *Avatar) update(n *Node, dt float64, queue *CommandQueue) {
	if n.IsDestroyed() {
		a.updateEffect(n, dt, queue)
		return
	}
	a.checkProjectileLaunch(n, dt, queue)
	a.updateMovementPattern(n, dt)
	n.integrate(dt)
}

// updateEffect plays the terminal fade. The first call also emits the
// explosion sound and, for enemies, the network notification.
func (a *Avatar) updateEffect(n *Node, dt float64, queue *CommandQueue) {
	if !a.effectStarted {
		a.effectStarted = true
		effect := SoundExplosion1
		if rand.IntN(2) == 1 {
			effect = SoundExplosion2
		}
		playLocalSound(n, queue, effect)
		if !a.IsPlayer() {
			notifyNetwork(queue, GameActionEnemyExplode, n.WorldPosition())
		}
		n.Texture = TextureSplatter
		n.Source = Rect{Width: n.Size.X, Height: n.Size.Y}
		n.DrawOrder = DrawOrderEffect

		d := float32(a.data.EffectDuration.Seconds())
		if d <= 0 {
			a.effectDone = true
			return
		}
		a.effect = gween.New(1, 0, d, ease.OutQuad)
	}
	if a.effectDone {
		return
	}
	alpha, done := a.effect.Update(float32(dt))
	n.Color.A = float64(alpha)
	a.effectDone = done
}

func (a *Avatar) checkProjectileLaunch(n *Node, dt float64, queue *CommandQueue) {
	if !a.IsPlayer() {
		a.Fire()
	}

	if a.isFiring && a.fireCountdown <= 0 {
		if a.IsPlayer() {
			playLocalSound(n, queue, SoundAlliedGunfire)
		} else {
			playLocalSound(n, queue, SoundEnemyGunfire)
		}
		queue.Push(a.fireCommand(n.id))
		a.fireCountdown += a.data.FireInterval.Seconds() / float64(a.fireRate+1)
		a.isFiring = false
		if a.IsPlayer() {
			a.hasBall = false
		}
	} else if a.fireCountdown > 0 {
		a.fireCountdown -= dt
		a.isFiring = false
	}

	if a.isLaunchingMissile {
		playLocalSound(n, queue, SoundLaunchMissile)
		queue.Push(a.missileCommand(n.id))
		a.isLaunchingMissile = false
	}
}

// updateMovementPattern steers AI avatars along their direction table.
func (a *Avatar) updateMovementPattern(n *Node, dt float64) {
	dirs := a.data.Directions
	if len(dirs) == 0 {
		return
	}
	if a.directionIndex >= len(dirs) {
		a.directionIndex = 0
	}
	if a.travelled > dirs[a.directionIndex].Distance {
		a.directionIndex = (a.directionIndex + 1) % len(dirs)
		a.travelled = 0
	}
	rad := (dirs[a.directionIndex].Angle + 90) * math.Pi / 180
	speed := a.data.Speed
	n.Entity.SetVelocity(speed*math.Cos(rad), speed*math.Sin(rad))
	a.travelled += speed * dt
}

// aimDirection is the unit direction projectiles travel: team A throws to the
// right, team B to the left, enemies downward.
func (a *Avatar) aimDirection() Vec2 {
	switch a.Team {
	case TeamA:
		return Vec2{1, 0}
	case TeamB:
		return Vec2{-1, 0}
	default:
		return Vec2{0, 1}
	}
}

func (a *Avatar) projectileType() ProjectileType {
	if a.IsPlayer() {
		return ProjectileAlliedBullet
	}
	return ProjectileEnemyBullet
}

// fireCommand returns a command for the scene layer that spawns a volley from
// the avatar identified by src. The avatar is resolved at dispatch time.
func (a *Avatar) fireCommand(src Handle) Command {
	return Command{
		Category: CategoryScene,
		Action: func(layer *Node, _ float64) {
			n, ok := layer.graph.Node(src)
			if !ok {
				return
			}
			typ := a.projectileType()
			switch a.spreadLevel {
			case 1:
				a.createProjectile(n, layer, typ, 0)
			case 2:
				a.createProjectile(n, layer, typ, -0.5)
				a.createProjectile(n, layer, typ, 0.5)
			default:
				a.createProjectile(n, layer, typ, -0.5)
				a.createProjectile(n, layer, typ, 0)
				a.createProjectile(n, layer, typ, 0.5)
			}
		},
	}
}

func (a *Avatar) missileCommand(src Handle) Command {
	return Command{
		Category: CategoryScene,
		Action: func(layer *Node, _ float64) {
			if n, ok := layer.graph.Node(src); ok {
				a.createProjectile(n, layer, ProjectileMissile, 0)
			}
		},
	}
}

// createProjectile attaches a projectile to layer, offset sideways by spread
// times the avatar width and launched along the avatar's aim direction.
func (a *Avatar) createProjectile(src, layer *Node, typ ProjectileType, spread float64) {
	p := layer.graph.NewEntity(ProjectileKind(typ, a.Team), a.tables)
	dir := a.aimDirection()
	side := Vec2{-dir.Y, dir.X}
	bounds := src.BoundingRect()

	pos := src.WorldPosition().
		Add(dir.Scale(bounds.Width / 2)).
		Add(side.Scale(spread * bounds.Height / 2))
	p.SetPosition(pos.X, pos.Y)
	p.Entity.Velocity = dir.Scale(p.Projectile.MaxSpeed())
	p.Rotation = math.Atan2(dir.Y, dir.X) + math.Pi/2
	layer.AttachChild(p)
}
