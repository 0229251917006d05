package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/arena"
)

// hud prints frame rates and player state in the top-left corner. The text
// is redrawn every ~0.5 seconds.
type hud struct {
	img        *ebiten.Image
	lastUpdate int
}

func newHUD() *hud {
	return &hud{img: ebiten.NewImage(220, 96)}
}

func (h *hud) update(w *arena.World, over bool) {
	h.lastUpdate++
	if h.lastUpdate < ebiten.TPS()/2 {
		return
	}
	h.lastUpdate = 0

	h.img.Clear()
	h.img.Fill(color.RGBA{0, 0, 0, 128})

	text := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nEnemies queued: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), w.PendingEnemies())
	for id := 1; id <= 2; id++ {
		if n, ok := w.Avatar(id); ok {
			a := n.Avatar
			text += fmt.Sprintf("\nP%d hp %d ball %t missiles %d",
				id, n.Entity.Hitpoints(), a.HasBall(), a.MissileAmmo())
		}
	}
	if over {
		text += "\nGAME OVER"
	}
	ebitenutil.DebugPrint(h.img, text)
}

func (h *hud) draw(screen *ebiten.Image, w *arena.World) {
	screen.DrawImage(h.img, nil)
	h.drawLabels(screen, w)
}

// drawLabels tags each live player avatar with its identifier, just above
// the avatar on screen.
func (h *hud) drawLabels(screen *ebiten.Image, w *arena.World) {
	cam := w.Camera()
	for id := 1; id <= 2; id++ {
		n, ok := w.Avatar(id)
		if !ok || n.IsDestroyed() {
			continue
		}
		pos := n.WorldPosition()
		top := n.BoundingRect().Y
		sx, sy := cam.WorldToScreen(pos.X, top)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("P%d", id), int(sx)-6, int(sy)-16)
	}
}
