package arena

import (
	"math"
	"testing"
)

// --- computeLocalTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	n := NewGraph().NewContainer("n", CategoryNone)
	assertMatrix(t, "identity", computeLocalTransform(n), identityTransform)
}

func TestLocalTransformTranslation(t *testing.T) {
	n := NewGraph().NewContainer("n", CategoryNone)
	n.SetPosition(10, 20)
	assertMatrix(t, "translate", computeLocalTransform(n), [6]float64{1, 0, 0, 1, 10, 20})
}

func TestLocalTransformScale(t *testing.T) {
	n := NewGraph().NewContainer("n", CategoryNone)
	n.SetScale(-3, 3)
	assertMatrix(t, "scale", computeLocalTransform(n), [6]float64{-3, 0, 0, 3, 0, 0})
}

func TestLocalTransformRotation90(t *testing.T) {
	n := NewGraph().NewContainer("n", CategoryNone)
	n.SetRotation(math.Pi / 2)
	assertMatrix(t, "rot90", computeLocalTransform(n), [6]float64{0, 1, -1, 0, 0, 0})
}

func TestLocalTransformPivot(t *testing.T) {
	n := NewGraph().NewContainer("n", CategoryNone)
	n.SetPivot(5, 5)
	n.SetPosition(100, 100)
	m := computeLocalTransform(n)
	x, y := transformPoint(m, 5, 5)
	assertNear(t, "pivot x", x, 100)
	assertNear(t, "pivot y", y, 100)
}

// --- Affine helpers ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 1, -1, 3, 7, 8}
	assertMatrix(t, "I*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, identityTransform), m)
}

func TestInvertAffine(t *testing.T) {
	m := [6]float64{2, 1, -1, 3, 7, 8}
	assertMatrix(t, "m*inv", multiplyAffine(m, invertAffine(m)), identityTransform)
}

func TestInvertAffineSingularReturnsIdentity(t *testing.T) {
	assertMatrix(t, "singular", invertAffine([6]float64{0, 0, 0, 0, 5, 5}), identityTransform)
}

// --- World transforms ---

func TestWorldTransformThreeLevels(t *testing.T) {
	g := NewGraph()
	a := g.NewContainer("a", CategoryNone)
	b := g.NewContainer("b", CategoryNone)
	c := g.NewContainer("c", CategoryNone)
	g.Root().AttachChild(a)
	a.AttachChild(b)
	b.AttachChild(c)

	a.SetPosition(100, 50)
	a.SetRotation(math.Pi / 2)
	b.SetPosition(10, 0)
	b.SetScale(2, 2)
	c.SetPosition(3, 4)

	want := multiplyAffine(computeLocalTransform(g.Root()),
		multiplyAffine(computeLocalTransform(a),
			multiplyAffine(computeLocalTransform(b), computeLocalTransform(c))))
	assertMatrix(t, "leaf", c.WorldTransform(), want)

	// a rotates +x onto +y: b sits at (100, 60), c at b + rot(2*(3,4)).
	p := c.WorldPosition()
	assertNear(t, "leaf x", p.X, 100-8)
	assertNear(t, "leaf y", p.Y, 60+6)
}

func TestWorldTransformDetachedIsLocal(t *testing.T) {
	n := NewGraph().NewContainer("n", CategoryNone)
	n.SetPosition(4, 5)
	assertMatrix(t, "detached", n.WorldTransform(), computeLocalTransform(n))
}

func TestWorldToLocalRoundtrip(t *testing.T) {
	g := NewGraph()
	parent := g.NewContainer("parent", CategoryNone)
	child := g.NewContainer("child", CategoryNone)
	parent.AttachChild(child)
	parent.SetPosition(30, -20)
	parent.SetRotation(0.7)
	child.SetScale(1.5, 0.5)
	child.SetPosition(8, 2)

	wx, wy := child.LocalToWorld(3, 9)
	lx, ly := child.WorldToLocal(wx, wy)
	assertNear(t, "lx", lx, 3)
	assertNear(t, "ly", ly, 9)
}

func TestMoveOffsetsPosition(t *testing.T) {
	n := NewGraph().NewContainer("n", CategoryNone)
	n.SetPosition(1, 2)
	n.Move(Vec2{3, -4})
	if n.Position() != (Vec2{4, -2}) {
		t.Errorf("Position = %v, want (4, -2)", n.Position())
	}
}

// --- Bounds ---

func TestBoundingRectCentered(t *testing.T) {
	n := NewGraph().NewSprite("s", TextureEntities, Rect{Width: 20, Height: 10})
	n.SetPosition(100, 100)
	want := Rect{X: 90, Y: 95, Width: 20, Height: 10}
	if got := n.BoundingRect(); got != want {
		t.Errorf("BoundingRect = %v, want %v", got, want)
	}
}

func TestBoundingRectMirroredScale(t *testing.T) {
	n := NewGraph().NewSprite("s", TextureEntities, Rect{Width: 10, Height: 10})
	n.SetScale(-3, 3)
	b := n.BoundingRect()
	assertNear(t, "x", b.X, -15)
	assertNear(t, "width", b.Width, 30)
}

func TestBoundingRectRotated(t *testing.T) {
	n := NewGraph().NewSprite("s", TextureEntities, Rect{Width: 20, Height: 10})
	n.SetRotation(math.Pi / 2)
	b := n.BoundingRect()
	assertNear(t, "width", b.Width, 10)
	assertNear(t, "height", b.Height, 20)
}
