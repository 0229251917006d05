package arena

// Pickup is the payload of a pickup node. Slot is the respawn slot the pickup
// occupies, or 0 for free-floating pickups.
type Pickup struct {
	Type PickupType
	Slot int

	data PickupData
}

// NewPickup creates a pickup node for the given respawn slot.
func (g *Graph) NewPickup(typ PickupType, slot int, tables *Tables) *Node {
	data := tables.Pickup(typ)
	n := g.newNode(typ.String(), NodeTypePickup, CategoryPickup)
	n.Texture = data.Texture
	n.Source = data.Source
	n.Size = data.Size
	n.Entity = newEntity(1)
	n.Pickup = &Pickup{Type: typ, Slot: slot, data: data}
	return n
}

// Apply grants the pickup's effect to the avatar node.
func (p *Pickup) Apply(avatar *Node) {
	a := avatar.Avatar
	switch p.Type {
	case PickupBall:
		a.PickUpBall()
	case PickupHealthRefill:
		avatar.Entity.Repair(p.data.Amount)
	case PickupMissileRefill:
		a.CollectMissiles(p.data.Amount)
	case PickupFireSpread:
		a.IncreaseSpread()
	case PickupFireRate:
		a.IncreaseFireRate()
	}
}
