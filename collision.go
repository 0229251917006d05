package arena

import "sort"

// Pair is an unordered pair of colliding nodes. Pairs produced by
// CollectCollisionPairs hold the node with the lower arena index in First.
type Pair struct {
	First, Second *Node
}

type pairKey struct {
	a, b uint32
}

func newPair(a, b *Node) (Pair, pairKey) {
	if b.id.index < a.id.index {
		a, b = b, a
	}
	return Pair{First: a, Second: b}, pairKey{a.id.index, b.id.index}
}

// collidable reports whether n takes part in collision detection.
func collidable(n *Node) bool {
	return n.Entity != nil && n.category&categoryCollidable != 0 && n.category&CategoryBackground == 0
}

// CollectCollisionPairs tests every pair of distinct collidable entities under
// root for bounding-box overlap. Destroyed entities are skipped. The result
// holds each overlapping pair once, ordered by the arena indices of its nodes.
func CollectCollisionPairs(root *Node) []Pair {
	var live []*Node
	var bounds []Rect
	collectCollidable(root, &live, &bounds)

	seen := make(map[pairKey]struct{})
	var pairs []Pair
	var keys []pairKey
	for i := 0; i < len(live); i++ {
		for j := i + 1; j < len(live); j++ {
			if !bounds[i].Intersects(bounds[j]) {
				continue
			}
			p, k := newPair(live[i], live[j])
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			pairs = append(pairs, p)
			keys = append(keys, k)
		}
	}
	sort.Sort(pairsByKey{pairs, keys})
	return pairs
}

func collectCollidable(n *Node, live *[]*Node, bounds *[]Rect) {
	if collidable(n) && !n.IsDestroyed() {
		*live = append(*live, n)
		*bounds = append(*bounds, n.BoundingRect())
	}
	for i := 0; i < len(n.children); i++ {
		if c := n.graph.lookup(n.children[i]); c != nil {
			collectCollidable(c, live, bounds)
		}
	}
}

type pairsByKey struct {
	pairs []Pair
	keys  []pairKey
}

func (p pairsByKey) Len() int { return len(p.pairs) }
func (p pairsByKey) Less(i, j int) bool {
	if p.keys[i].a != p.keys[j].a {
		return p.keys[i].a < p.keys[j].a
	}
	return p.keys[i].b < p.keys[j].b
}
func (p pairsByKey) Swap(i, j int) {
	p.pairs[i], p.pairs[j] = p.pairs[j], p.pairs[i]
	p.keys[i], p.keys[j] = p.keys[j], p.keys[i]
}

// MatchesCategories reports whether pair holds one node of category a and
// one of category b, in either order. On a reversed match the pair is swapped
// in place so First matches a and Second matches b.
func MatchesCategories(pair *Pair, a, b Category) bool {
	c1 := pair.First.Category()
	c2 := pair.Second.Category()
	switch {
	case a&c1 != 0 && b&c2 != 0:
		return true
	case a&c2 != 0 && b&c1 != 0:
		pair.First, pair.Second = pair.Second, pair.First
		return true
	default:
		return false
	}
}
