package arena

// Handle addresses a node slot in a Graph. A handle whose slot has been
// released resolves to nothing, even after the slot is reused.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero handle, which never resolves.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

// Index returns the arena slot index of the handle.
func (h Handle) Index() uint32 {
	return h.index
}

type graphSlot struct {
	node *Node
	gen  uint32
}

// Graph is the arena that owns every node of a scene tree. Nodes refer to
// their parent and children by Handle; the slot of a node lives exactly as
// long as the node stays reachable from its parent.
type Graph struct {
	slots []graphSlot
	free  []uint32
	live  int
	root  *Node
}

// NewGraph creates a graph with a pre-created root container.
func NewGraph() *Graph {
	g := &Graph{}
	g.root = g.NewContainer("root", CategoryNone)
	return g
}

// Root returns the graph's root container node.
func (g *Graph) Root() *Node {
	return g.root
}

// Len returns the number of live nodes, including the root and nodes that
// were created but never attached.
func (g *Graph) Len() int {
	return g.live
}

// Node resolves a handle. It returns false for zero or stale handles.
func (g *Graph) Node(h Handle) (*Node, bool) {
	n := g.lookup(h)
	return n, n != nil
}

func (g *Graph) lookup(h Handle) *Node {
	if h.gen == 0 || int(h.index) >= len(g.slots) {
		return nil
	}
	s := g.slots[h.index]
	if s.gen != h.gen {
		return nil
	}
	return s.node
}

// alloc places n into a free slot and binds it to the graph.
func (g *Graph) alloc(n *Node) {
	var idx uint32
	if k := len(g.free); k > 0 {
		idx = g.free[k-1]
		g.free = g.free[:k-1]
	} else {
		idx = uint32(len(g.slots))
		g.slots = append(g.slots, graphSlot{gen: 0})
	}
	s := &g.slots[idx]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.node = n
	n.id = Handle{index: idx, gen: s.gen}
	n.graph = g
	g.live++
}

// release frees n and its entire owned subtree. The parent link of n is not
// touched; callers detach n from its parent first.
func (g *Graph) release(n *Node) {
	for _, h := range n.children {
		if c := g.lookup(h); c != nil {
			g.release(c)
		}
	}
	s := &g.slots[n.id.index]
	s.node = nil
	s.gen++
	g.free = append(g.free, n.id.index)
	g.live--

	n.children = nil
	n.parent = Handle{}
	n.released = true
}
