package arena

import "fmt"

// EntityClass selects which entity family a factory call builds.
type EntityClass uint8

const (
	EntityAvatar EntityClass = iota
	EntityProjectile
	EntityPickup
)

// EntityKind keys the entity factory. Variant is an AvatarType,
// ProjectileType or PickupType depending on Class. Team only applies to
// projectiles.
type EntityKind struct {
	Class   EntityClass
	Variant uint8
	Team    Team
}

// AvatarKind returns the factory key for an avatar type.
func AvatarKind(t AvatarType) EntityKind {
	return EntityKind{Class: EntityAvatar, Variant: uint8(t)}
}

// ProjectileKind returns the factory key for a projectile type fired by team.
func ProjectileKind(t ProjectileType, team Team) EntityKind {
	return EntityKind{Class: EntityProjectile, Variant: uint8(t), Team: team}
}

// PickupKind returns the factory key for a pickup type.
func PickupKind(t PickupType) EntityKind {
	return EntityKind{Class: EntityPickup, Variant: uint8(t)}
}

// NewEntity builds the tagged entity node for kind. The world creates every
// avatar, projectile and pickup through it. Pickups come back free-floating;
// set Pickup.Slot to bind one to a respawn slot. Panics on an unknown class
// or variant.
func (g *Graph) NewEntity(kind EntityKind, tables *Tables) *Node {
	switch kind.Class {
	case EntityAvatar:
		if kind.Variant < uint8(avatarTypeCount) {
			return g.NewAvatar(AvatarType(kind.Variant), tables)
		}
	case EntityProjectile:
		if kind.Variant < uint8(projectileTypeCount) {
			return g.NewProjectile(ProjectileType(kind.Variant), kind.Team, tables)
		}
	case EntityPickup:
		if kind.Variant < uint8(pickupTypeCount) {
			return g.NewPickup(PickupType(kind.Variant), 0, tables)
		}
	}
	panic(fmt.Sprintf("arena: unknown entity kind %d/%d", kind.Class, kind.Variant))
}
