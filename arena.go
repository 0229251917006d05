package arena

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, velocities, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Unit returns v normalized to length 1. The zero vector is returned unchanged.
func (v Vec2) Unit() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap with a non-empty area.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Category is a bitmask tag carried by every node. It is used both for
// command targeting and for collision filtering.
type Category uint32

const (
	CategoryNone             Category = 0
	CategoryScene            Category = 1 << (iota - 1) // layer that accepts spawned projectiles
	CategoryAvatarTeamA                                 // player avatar, team A (pink)
	CategoryAvatarTeamB                                 // player avatar, team B (blue)
	CategoryEnemyAvatar                                 // AI-controlled avatar
	CategoryPlayerProjectile                            // projectile fired by a player avatar
	CategoryEnemyProjectile                             // projectile fired by an enemy avatar
	CategoryPickup                                      // collectible
	CategoryBackground                                  // static decoration, never collides
	CategoryParticleSystem                              // particle pool node
	CategorySoundEffect                                 // sound trigger node
	CategoryNetwork                                     // network notification node

	CategoryPlayerAvatar = CategoryAvatarTeamA | CategoryAvatarTeamB
	CategoryProjectile   = CategoryPlayerProjectile | CategoryEnemyProjectile
	CategoryAvatar       = CategoryPlayerAvatar | CategoryEnemyAvatar

	// categoryCollidable is the set of categories that take part in
	// collision detection.
	categoryCollidable = CategoryAvatar | CategoryProjectile | CategoryPickup
)

// Team identifies which half of the arena an avatar or projectile belongs to.
type Team uint8

const (
	TeamNone Team = iota // AI enemies and their projectiles
	TeamA                // pink, left half
	TeamB                // blue, right half
)

func (t Team) String() string {
	switch t {
	case TeamA:
		return "a"
	case TeamB:
		return "b"
	default:
		return "none"
	}
}

// NodeType distinguishes the payload carried by a Node.
type NodeType uint8

const (
	NodeTypeContainer      NodeType = iota // group node with no visual output
	NodeTypeSprite                         // static textured node
	NodeTypeAvatar                         // Entity + Avatar payload
	NodeTypeProjectile                     // Entity + Projectile payload
	NodeTypePickup                         // Entity + Pickup payload
	NodeTypeParticleSystem                 // particle pool
	NodeTypeSound                          // forwards sound triggers to an AudioSink
	NodeTypeNetwork                        // buffers outbound game actions
)

// TextureID identifies a texture owned by the asset provider. The core treats
// it as an opaque handle.
type TextureID uint16

const (
	TextureNone TextureID = iota
	TextureEntities
	TextureCourt
	TextureSplatter
	TextureParticle
	TextureFinishLine
)

// Layer indexes the fixed scene layers owned by the World.
type Layer uint8

const (
	LayerBackground Layer = iota
	LayerLowerAir
	LayerUpperAir
	layerCount
)
