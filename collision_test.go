package arena

import "testing"

func boxPickup(g *Graph, x, y float64) *Node {
	n := g.NewPickup(PickupBall, 0, DefaultTables())
	n.Size = Vec2{10, 10}
	n.SetPosition(x, y)
	g.Root().AttachChild(n)
	return n
}

func TestCollisionPairsDedup(t *testing.T) {
	g := NewGraph()
	a := boxPickup(g, 0, 0)
	b := boxPickup(g, 8, 0)
	c := boxPickup(g, 16, 0)

	pairs := CollectCollisionPairs(g.Root())
	if len(pairs) != 2 {
		t.Fatalf("pairs = %d, want 2", len(pairs))
	}
	if pairs[0].First != a || pairs[0].Second != b {
		t.Errorf("pairs[0] = {%s, %s}, want {A, B}", pairs[0].First.Name, pairs[0].Second.Name)
	}
	if pairs[1].First != b || pairs[1].Second != c {
		t.Error("pairs[1] should be {B, C}")
	}
}

func TestCollisionPairsIndependentOfTreeOrder(t *testing.T) {
	g := NewGraph()
	layer := g.NewContainer("layer", CategoryScene)
	// c is created first but attached deepest.
	c := g.NewPickup(PickupBall, 0, DefaultTables())
	c.Size = Vec2{10, 10}
	c.SetPosition(16, 0)
	a := boxPickup(g, 0, 0)
	b := boxPickup(g, 8, 0)
	g.Root().AttachChild(layer)
	layer.AttachChild(c)

	pairs := CollectCollisionPairs(g.Root())
	if len(pairs) != 2 {
		t.Fatalf("pairs = %d, want 2", len(pairs))
	}
	seen := map[[2]*Node]int{}
	for _, p := range pairs {
		if p.First.ID().Index() >= p.Second.ID().Index() {
			t.Error("pair not ordered by arena index")
		}
		seen[[2]*Node{p.First, p.Second}]++
	}
	if seen[[2]*Node{a, b}] != 1 {
		t.Error("{A, B} should appear once")
	}
	if seen[[2]*Node{c, b}] != 1 {
		t.Error("{B, C} should appear once")
	}
}

func TestCollisionEdgeTouchIsNotOverlap(t *testing.T) {
	g := NewGraph()
	boxPickup(g, 0, 0)
	boxPickup(g, 10, 0)
	if n := len(CollectCollisionPairs(g.Root())); n != 0 {
		t.Errorf("pairs = %d, want 0", n)
	}
}

func TestCollisionSkipsDestroyedAndBackground(t *testing.T) {
	g := NewGraph()
	boxPickup(g, 0, 0)
	dead := boxPickup(g, 2, 0)
	dead.Entity.Destroy()
	bg := g.NewSprite("bg", TextureCourt, Rect{Width: 100, Height: 100})
	g.Root().AttachChild(bg)

	if n := len(CollectCollisionPairs(g.Root())); n != 0 {
		t.Errorf("pairs = %d, want 0", n)
	}
}

func TestMatchesCategoriesSwaps(t *testing.T) {
	g := NewGraph()
	tables := DefaultTables()
	pickup := g.NewPickup(PickupBall, 0, tables)
	avatar := g.NewAvatar(AvatarTeamA, tables)

	pair := Pair{First: pickup, Second: avatar}
	if !MatchesCategories(&pair, CategoryPlayerAvatar, CategoryPickup) {
		t.Fatal("expected match")
	}
	if pair.First != avatar || pair.Second != pickup {
		t.Error("pair should be reordered to (avatar, pickup)")
	}

	if MatchesCategories(&pair, CategoryEnemyAvatar, CategoryPickup) {
		t.Error("enemy avatar should not match")
	}
	if pair.First != avatar {
		t.Error("failed match must not reorder")
	}
}

func TestRectIntersects(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	tests := []struct {
		other Rect
		want  bool
	}{
		{Rect{5, 5, 10, 10}, true},
		{Rect{10, 0, 5, 5}, false},
		{Rect{-5, -5, 5, 5}, false},
		{Rect{2, 2, 2, 2}, true},
		{Rect{20, 20, 1, 1}, false},
	}
	for _, tt := range tests {
		if got := r.Intersects(tt.other); got != tt.want {
			t.Errorf("Intersects(%v) = %v, want %v", tt.other, got, tt.want)
		}
	}
}
