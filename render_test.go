package arena

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

type recordingSink struct {
	cmds []RenderCommand
}

func (r *recordingSink) Draw(cmd RenderCommand) {
	r.cmds = append(r.cmds, cmd)
}

func TestDrawLayerOrder(t *testing.T) {
	w := testWorld(t)
	w.AddAvatar(1, TeamA)
	w.CreatePickupAt(1)
	w.Layer(LayerLowerAir).Children()[0].Particles.AddParticle(Vec2{900, 500})

	var sink recordingSink
	w.Draw(&sink)
	if len(sink.cmds) == 0 {
		t.Fatal("no commands emitted")
	}
	if sink.cmds[0].Texture != TextureCourt {
		t.Errorf("first command texture = %v, want court", sink.cmds[0].Texture)
	}
	for i := 1; i < len(sink.cmds); i++ {
		a, b := sink.cmds[i-1], sink.cmds[i]
		if a.Layer > b.Layer {
			t.Errorf("command %d layer %d after layer %d", i, b.Layer, a.Layer)
		}
		if a.Layer == b.Layer && !commandLessOrEqual(a, b) {
			t.Errorf("command %d out of draw order", i)
		}
	}

	var particles, upper int
	for _, c := range sink.cmds {
		switch {
		case c.Texture == TextureParticle:
			particles++
			if c.Layer != LayerLowerAir {
				t.Errorf("particle on layer %d", c.Layer)
			}
		case c.Layer == LayerUpperAir:
			upper++
		}
	}
	if particles != 1 {
		t.Errorf("particle commands = %d, want 1", particles)
	}
	if upper != 2 {
		t.Errorf("upper air commands = %d, want 2", upper)
	}
}

func TestDrawSplatterUnderLiveAvatar(t *testing.T) {
	w := testWorld(t)
	live := w.AddAvatar(1, TeamA)
	dead := w.AddAvatar(2, TeamB)
	dead.Entity.Destroy()
	w.Update(frame)
	if dead.Texture != TextureSplatter || dead.DrawOrder != DrawOrderEffect {
		t.Fatalf("dead avatar texture = %v, draw order = %d", dead.Texture, dead.DrawOrder)
	}

	var sink recordingSink
	w.Draw(&sink)
	splatter, avatar := -1, -1
	for i, c := range sink.cmds {
		if c.Layer != LayerUpperAir {
			continue
		}
		switch c.Texture {
		case TextureSplatter:
			splatter = i
		case live.Texture:
			avatar = i
		}
	}
	if splatter < 0 || avatar < 0 {
		t.Fatalf("splatter = %d, avatar = %d, want both drawn", splatter, avatar)
	}
	// The dead avatar was attached later, so only the draw order puts it first.
	if splatter > avatar {
		t.Errorf("splatter drawn at %d after live avatar at %d", splatter, avatar)
	}
}

func TestDrawCullsOffscreen(t *testing.T) {
	w := testWorld(t)
	far := w.Graph().NewSprite("far", TextureEntities, Rect{Width: 10, Height: 10})
	far.SetPosition(-500, -500)
	w.Layer(LayerUpperAir).AttachChild(far)
	hidden := w.Graph().NewSprite("hidden", TextureEntities, Rect{Width: 10, Height: 10})
	hidden.SetPosition(100, 100)
	hidden.Visible = false
	w.Layer(LayerUpperAir).AttachChild(hidden)

	var sink recordingSink
	w.Draw(&sink)
	for _, c := range sink.cmds {
		if c.Layer == LayerUpperAir {
			t.Errorf("unexpected upper air command %+v", c)
		}
	}
}

func TestDrawTransformMapsSourceToScreen(t *testing.T) {
	w := testWorld(t)
	s := w.Graph().NewSprite("s", TextureEntities, Rect{X: 32, Width: 16, Height: 8})
	s.Size = Vec2{32, 16}
	s.SetPosition(100, 200)
	w.Layer(LayerUpperAir).AttachChild(s)

	var sink recordingSink
	w.Draw(&sink)
	var cmd *RenderCommand
	for i := range sink.cmds {
		if sink.cmds[i].Layer == LayerUpperAir {
			cmd = &sink.cmds[i]
		}
	}
	if cmd == nil {
		t.Fatal("sprite not drawn")
	}
	// Source pixel (0, 0) lands on the quad's top-left corner, (16, 8) on
	// the bottom-right. The default camera maps world to screen 1:1.
	x, y := transformPoint(cmd.Transform, 0, 0)
	assertNear(t, "x0", x, 84)
	assertNear(t, "y0", y, 192)
	x, y = transformPoint(cmd.Transform, 16, 8)
	assertNear(t, "x1", x, 116)
	assertNear(t, "y1", y, 208)
}

func TestMergeSortStable(t *testing.T) {
	var r renderer
	r.commands = []RenderCommand{
		{Layer: 2, treeOrder: 1},
		{Layer: 0, treeOrder: 5},
		{Layer: 1, treeOrder: 2},
		{Layer: 0, treeOrder: 3},
		{Layer: 2, treeOrder: 0},
		{Layer: 2, treeOrder: 4, DrawOrder: DrawOrderEffect},
	}
	r.mergeSort()
	want := []struct {
		layer Layer
		order int
	}{{0, 3}, {0, 5}, {1, 2}, {2, 4}, {2, 0}, {2, 1}}
	for i, w := range want {
		c := r.commands[i]
		if c.Layer != w.layer || c.treeOrder != w.order {
			t.Errorf("commands[%d] = (%d, %d), want (%d, %d)", i, c.Layer, c.treeOrder, w.layer, w.order)
		}
	}
}

func TestCommandGeoM(t *testing.T) {
	cmd := RenderCommand{Transform: [6]float64{2, 0.5, -1, 3, 10, 20}}
	m := commandGeoM(&cmd)
	want := ebiten.GeoM{}
	want.SetElement(0, 0, 2)
	want.SetElement(1, 0, 0.5)
	want.SetElement(0, 1, -1)
	want.SetElement(1, 1, 3)
	want.SetElement(0, 2, 10)
	want.SetElement(1, 2, 20)
	x, y := m.Apply(1, 1)
	wx, wy := transformPoint(cmd.Transform, 1, 1)
	assertNear(t, "x", x, wx)
	assertNear(t, "y", y, wy)
	if m != want {
		t.Errorf("GeoM = %v, want %v", m, want)
	}
}
