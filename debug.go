package arena

import (
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-frame timing and tree metrics.
// Only populated when the world runs with WithDebug.
type debugStats struct {
	dispatchTime   time.Duration
	collisionTime  time.Duration
	updateTime     time.Duration
	commandCount   int
	collisionPairs int
	nodeCount      int
}

// debugLog writes the frame stats at debug level.
func (w *World) debugLog(stats debugStats) {
	if !w.debug {
		return
	}
	total := stats.dispatchTime + stats.collisionTime + stats.updateTime
	w.log.Debug("frame",
		zap.Duration("dispatch", stats.dispatchTime),
		zap.Duration("collisions", stats.collisionTime),
		zap.Duration("update", stats.updateTime),
		zap.Duration("total", total),
		zap.Int("commands", stats.commandCount),
		zap.Int("pairs", stats.collisionPairs),
		zap.Int("nodes", stats.nodeCount))
}

// debugDrawLog writes the draw stats at debug level.
func (w *World) debugDrawLog(build time.Duration, cmds []RenderCommand) {
	w.log.Debug("draw",
		zap.Duration("build", build),
		zap.Int("commands", len(cmds)),
		zap.Int("batches", countBatches(cmds)))
}

const (
	debugMaxTreeDepth  = 32
	debugMaxChildCount = 1000
)

// debugCheckTree warns when the tree under n grows deeper than
// debugMaxTreeDepth or a node holds more than debugMaxChildCount children.
func (w *World) debugCheckTree(n *Node, depth int) {
	if depth > debugMaxTreeDepth {
		w.log.Warn("tree depth exceeds threshold",
			zap.String("node", n.Name),
			zap.Int("depth", depth),
			zap.Int("threshold", debugMaxTreeDepth))
		return
	}
	if len(n.children) > debugMaxChildCount {
		w.log.Warn("node child count exceeds threshold",
			zap.String("node", n.Name),
			zap.Int("children", len(n.children)),
			zap.Int("threshold", debugMaxChildCount))
	}
	for _, h := range n.children {
		if c := n.graph.lookup(h); c != nil {
			w.debugCheckTree(c, depth+1)
		}
	}
}

// countBatches counts contiguous runs of commands sharing a texture and
// layer. This is the number of draw calls a batching sink would issue.
func countBatches(commands []RenderCommand) int {
	if len(commands) == 0 {
		return 0
	}
	count := 1
	for i := 1; i < len(commands); i++ {
		prev, cur := &commands[i-1], &commands[i]
		if cur.Texture != prev.Texture || cur.Layer != prev.Layer {
			count++
		}
	}
	return count
}
