package arena

// RenderCommand is a single draw instruction emitted during scene traversal.
// Transform maps source-rect pixel space to screen space.
type RenderCommand struct {
	Texture   TextureID
	Source    Rect
	Transform [6]float64
	Color     Color
	Layer     Layer
	DrawOrder int
	treeOrder int // assigned during traversal for stable sort
}

// DrawOrderEffect is the draw order of terminal effects, so splatters stay
// under live avatars and pickups on the same layer.
const DrawOrderEffect = -1

// RenderSink receives the draw calls of a frame in back-to-front order.
type RenderSink interface {
	Draw(cmd RenderCommand)
}

// renderer collects and sorts render commands. Buffers are reused across
// frames.
type renderer struct {
	commands []RenderCommand
	sortBuf  []RenderCommand
	cull     Rect
}

// build walks the given layers depth-first and returns the sorted commands.
// The returned slice is valid until the next call.
func (r *renderer) build(layers []*Node, view [6]float64, cull Rect) []RenderCommand {
	r.commands = r.commands[:0]
	r.cull = cull
	order := 0
	for i, layer := range layers {
		r.traverse(layer, view, Layer(i), &order)
	}
	r.mergeSort()
	return r.commands
}

// traverse emits commands for n and its subtree. parentTransform already
// includes the view transform.
func (r *renderer) traverse(n *Node, parentTransform [6]float64, layer Layer, treeOrder *int) {
	if !n.Visible {
		return
	}
	world := multiplyAffine(parentTransform, computeLocalTransform(n))

	switch n.Type {
	case NodeTypeSprite, NodeTypeAvatar, NodeTypeProjectile, NodeTypePickup:
		if n.Texture != TextureNone && !r.culled(n) {
			*treeOrder++
			r.commands = append(r.commands, RenderCommand{
				Texture:   n.Texture,
				Source:    n.Source,
				Transform: multiplyAffine(world, quadTransform(n.Size, n.Source)),
				Color:     n.Color,
				Layer:     layer,
				DrawOrder: n.DrawOrder,
				treeOrder: *treeOrder,
			})
		}
	case NodeTypeParticleSystem:
		r.emitParticles(n, world, layer, treeOrder)
	}

	for i := 0; i < len(n.children); i++ {
		if c := n.graph.lookup(n.children[i]); c != nil {
			r.traverse(c, world, layer, treeOrder)
		}
	}
}

// emitParticles emits one command per live particle of a particle system.
func (r *renderer) emitParticles(n *Node, world [6]float64, layer Layer, treeOrder *int) {
	ps := n.Particles
	if ps == nil || ps.alive == 0 {
		return
	}
	quad := quadTransform(n.Size, n.Source)
	base := ps.data.Color
	for i := 0; i < ps.alive; i++ {
		p := &ps.particles[i]
		at := [6]float64{p.scale, 0, 0, p.scale, p.pos.X, p.pos.Y}
		*treeOrder++
		r.commands = append(r.commands, RenderCommand{
			Texture:   n.Texture,
			Source:    n.Source,
			Transform: multiplyAffine(world, multiplyAffine(at, quad)),
			Color:     Color{base.R * n.Color.R, base.G * n.Color.G, base.B * n.Color.B, base.A * n.Color.A * p.alpha},
			Layer:     layer,
			DrawOrder: n.DrawOrder,
			treeOrder: *treeOrder,
		})
	}
}

// culled reports whether the world bounds of n miss the cull rect.
func (r *renderer) culled(n *Node) bool {
	if r.cull.Width == 0 && r.cull.Height == 0 {
		return false
	}
	b := n.BoundingRect()
	if b.Width == 0 && b.Height == 0 {
		return false
	}
	return !b.Intersects(r.cull)
}

// quadTransform maps the source rect's pixel space onto a quad of the given
// size centered on the local origin.
func quadTransform(size Vec2, src Rect) [6]float64 {
	sx, sy := 1.0, 1.0
	if src.Width > 0 {
		sx = size.X / src.Width
	}
	if src.Height > 0 {
		sy = size.Y / src.Height
	}
	return [6]float64{sx, 0, 0, sy, -size.X / 2, -size.Y / 2}
}

// --- Merge sort ---

// commandLessOrEqual orders by layer, then draw order, then tree order.
func commandLessOrEqual(a, b RenderCommand) bool {
	if a.Layer != b.Layer {
		return a.Layer < b.Layer
	}
	if a.DrawOrder != b.DrawOrder {
		return a.DrawOrder < b.DrawOrder
	}
	return a.treeOrder <= b.treeOrder
}

// mergeSort stably sorts r.commands, ping-ponging between the command slice
// and r.sortBuf. It allocates only when the frame outgrows the buffer.
func (r *renderer) mergeSort() {
	n := len(r.commands)
	if n < 2 {
		return
	}
	if cap(r.sortBuf) < n {
		r.sortBuf = make([]RenderCommand, n)
	}
	src, dst := r.commands, r.sortBuf[:n]
	for run := 1; run < n; run *= 2 {
		for lo := 0; lo < n; lo += 2 * run {
			mergeRun(src, dst, lo, min(lo+run, n), min(lo+2*run, n))
		}
		src, dst = dst, src
	}
	// After an odd number of passes the result sits in the scratch buffer.
	if &src[0] != &r.commands[0] {
		copy(r.commands, src)
	}
}

// mergeRun merges the sorted runs src[lo:mid] and src[mid:hi] into dst.
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j := lo, mid
	for k := lo; k < hi; k++ {
		if i < mid && (j >= hi || commandLessOrEqual(src[i], src[j])) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
	}
}
