package arena

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types; the Type tag and the payload pointers tell the variants apart
// so traversal never needs interface dispatch or type inspection.
type Node struct {
	// Identity
	Name string
	Type NodeType

	// Hierarchy (arena handles; children are owned, parent is not)
	id       Handle
	graph    *Graph
	parent   Handle
	children []Handle
	category Category

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Size is the local-space extent of the node, centered on its pivot.
	// Used for bounding rects and as the drawn quad size.
	Size Vec2

	// Drawing
	Texture TextureID
	Source  Rect
	Color   Color
	Visible bool
	// DrawOrder sorts drawables within a layer before tree order. Lower
	// values draw first.
	DrawOrder int

	// Payloads (nil unless the Type carries them)
	Entity     *Entity
	Avatar     *Avatar
	Projectile *Projectile
	Pickup     *Pickup
	Particles  *ParticleSystem
	Sound      *SoundNode
	Network    *NetworkNode

	removeRequested bool
	released        bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ScaleX = 1
	n.ScaleY = 1
	n.Color = ColorWhite
	n.Visible = true
}

func (g *Graph) newNode(name string, typ NodeType, category Category) *Node {
	n := &Node{Name: name, Type: typ, category: category}
	nodeDefaults(n)
	g.alloc(n)
	return n
}

// NewContainer creates a grouping node with no visual representation.
func (g *Graph) NewContainer(name string, category Category) *Node {
	return g.newNode(name, NodeTypeContainer, category)
}

// NewSprite creates a static textured node. Sprites carry CategoryBackground
// unless the caller changes it, so they never take part in collisions.
func (g *Graph) NewSprite(name string, tex TextureID, source Rect) *Node {
	n := g.newNode(name, NodeTypeSprite, CategoryBackground)
	n.Texture = tex
	n.Source = source
	n.Size = Vec2{source.Width, source.Height}
	return n
}

// ID returns the node's arena handle.
func (n *Node) ID() Handle {
	return n.id
}

// Graph returns the arena that owns the node.
func (n *Node) Graph() *Graph {
	return n.graph
}

// Category returns the node's category bitmask.
func (n *Node) Category() Category {
	return n.category
}

// SetCategory replaces the node's category bitmask.
func (n *Node) SetCategory(c Category) {
	n.category = c
}

// --- Tree manipulation ---

// AttachChild transfers ownership of child to n, appending it to n's children.
// Panics if child is nil, belongs to another graph, has been released, already
// has a parent, or is an ancestor of n (cycle).
func (n *Node) AttachChild(child *Node) {
	if child == nil {
		panic("arena: cannot attach nil child")
	}
	if child.graph != n.graph {
		panic("arena: child belongs to another graph")
	}
	if child.released || n.released {
		panic("arena: attach on released node")
	}
	if !child.parent.IsZero() {
		panic("arena: child already has a parent")
	}
	if isAncestor(child, n) {
		panic("arena: attaching child would create a cycle")
	}
	child.parent = n.id
	n.children = append(n.children, child.id)
}

// Parent returns the node's parent, or nil for the root and detached nodes.
func (n *Node) Parent() *Node {
	if n.graph == nil {
		return nil
	}
	return n.graph.lookup(n.parent)
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.graph.lookup(n.children[index])
}

// Children returns a snapshot of the child list in child order.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, h := range n.children {
		if c := n.graph.lookup(h); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// IsReleased reports whether the node's arena slot has been freed.
func (n *Node) IsReleased() bool {
	return n.released
}

// --- Lifecycle ---

// MarkForRemoval flags the node so the next RemoveDestroyed pass erases it
// together with its subtree.
func (n *Node) MarkForRemoval() {
	n.removeRequested = true
}

// IsDestroyed reports whether the node is an entity whose hitpoints are gone.
// Non-entity nodes are never destroyed.
func (n *Node) IsDestroyed() bool {
	return n.Entity != nil && n.Entity.IsDestroyed()
}

// IsMarkedForRemoval reports whether the node should disappear on the next
// prune pass. Destroyed avatars stay until their terminal effect finishes.
func (n *Node) IsMarkedForRemoval() bool {
	if n.removeRequested {
		return true
	}
	if !n.IsDestroyed() {
		return false
	}
	if n.Avatar != nil && !n.Entity.removed {
		return n.Avatar.effectFinished()
	}
	return true
}

// --- Traversal ---

// Update advances the node's own state and then recurses into its children in
// child order. Commands produced along the way are pushed onto queue.
func (n *Node) Update(dt float64, queue *CommandQueue) {
	n.updateCurrent(dt, queue)
	for i := 0; i < len(n.children); i++ {
		if c := n.graph.lookup(n.children[i]); c != nil {
			c.Update(dt, queue)
		}
	}
}

func (n *Node) updateCurrent(dt float64, queue *CommandQueue) {
	switch n.Type {
	case NodeTypeAvatar:
		n.Avatar.update(n, dt, queue)
	case NodeTypeProjectile:
		n.Projectile.update(n, dt, queue)
	case NodeTypePickup:
		n.integrate(dt)
	case NodeTypeParticleSystem:
		n.Particles.update(dt)
	}
}

// integrate applies the entity's velocity to its position.
func (n *Node) integrate(dt float64) {
	if n.Entity == nil {
		return
	}
	n.X += n.Entity.Velocity.X * dt
	n.Y += n.Entity.Velocity.Y * dt
}

// OnCommand runs cmd on n if the categories match, then forwards it to every
// child regardless of whether n matched.
func (n *Node) OnCommand(cmd Command, dt float64) {
	if cmd.Category&n.category != 0 {
		cmd.Action(n, dt)
	}
	for i := 0; i < len(n.children); i++ {
		if c := n.graph.lookup(n.children[i]); c != nil {
			c.OnCommand(cmd, dt)
		}
	}
}

// RemoveDestroyed erases every child marked for removal, releasing its whole
// subtree, and then recurses into the surviving children.
func (n *Node) RemoveDestroyed() {
	kept := n.children[:0]
	for _, h := range n.children {
		c := n.graph.lookup(h)
		if c == nil {
			continue
		}
		if c.IsMarkedForRemoval() {
			n.graph.release(c)
			continue
		}
		kept = append(kept, h)
	}
	for i := len(kept); i < len(n.children); i++ {
		n.children[i] = Handle{}
	}
	n.children = kept

	for i := 0; i < len(n.children); i++ {
		if c := n.graph.lookup(n.children[i]); c != nil {
			c.RemoveDestroyed()
		}
	}
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent() {
		if p == candidate {
			return true
		}
	}
	return false
}
