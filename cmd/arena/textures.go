package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/arena"
)

// textures generates flat-colored placeholder images for every texture id.
// Each source rect named in the data tables is filled with a color keyed to
// its entity kind, so a table edit that moves a rect shows up on reload.
type textures struct {
	images map[arena.TextureID]*ebiten.Image
}

var (
	colorTeamA      = color.RGBA{0x3a, 0x6e, 0xe8, 0xff}
	colorTeamB      = color.RGBA{0xe8, 0x3a, 0x3a, 0xff}
	colorEnemy      = color.RGBA{0xf0, 0x9a, 0x28, 0xff}
	colorProjectile = color.RGBA{0xff, 0xf0, 0x60, 0xff}
	colorPickup     = color.RGBA{0xf5, 0xf5, 0xf5, 0xff}
	colorCourt      = color.RGBA{0x2f, 0x7d, 0x3a, 0xff}
	colorCourtLine  = color.RGBA{0xe6, 0xe6, 0xe6, 0xff}
	colorSplatter   = color.RGBA{0x80, 0x10, 0x10, 0xff}
)

func newTextures(t *arena.Tables, wc arena.WorldConfig) *textures {
	tx := &textures{}
	tx.rebuild(t, wc)
	return tx
}

// Texture implements arena.TextureProvider.
func (tx *textures) Texture(id arena.TextureID) *ebiten.Image {
	return tx.images[id]
}

type coloredRect struct {
	rect arena.Rect
	clr  color.Color
}

func (tx *textures) rebuild(t *arena.Tables, wc arena.WorldConfig) {
	for _, img := range tx.images {
		img.Deallocate()
	}
	tx.images = make(map[arena.TextureID]*ebiten.Image)

	rects := make(map[arena.TextureID][]coloredRect)
	splatter := arena.Vec2{X: 1, Y: 1}
	for i, a := range t.Avatars {
		clr := color.Color(colorEnemy)
		switch arena.AvatarType(i) {
		case arena.AvatarTeamA:
			clr = colorTeamA
		case arena.AvatarTeamB:
			clr = colorTeamB
		}
		rects[a.Texture] = append(rects[a.Texture], coloredRect{a.Source, clr})
		splatter.X = max(splatter.X, a.Size.X)
		splatter.Y = max(splatter.Y, a.Size.Y)
	}
	for _, p := range t.Projectiles {
		rects[p.Texture] = append(rects[p.Texture], coloredRect{p.Source, colorProjectile})
	}
	for _, p := range t.Pickups {
		rects[p.Texture] = append(rects[p.Texture], coloredRect{p.Source, colorPickup})
	}
	for id, rs := range rects {
		if id == arena.TextureNone {
			continue
		}
		tx.images[id] = atlasImage(rs)
	}

	tx.images[arena.TextureSplatter] = solidImage(int(splatter.X), int(splatter.Y), colorSplatter)
	tx.images[arena.TextureParticle] = solidImage(8, 8, color.White)
	tx.images[arena.TextureCourt] = courtImage(int(wc.Width), int(wc.Height+wc.ViewHeight))
	tx.images[arena.TextureFinishLine] = finishImage(int(wc.Width), 76)
}

// atlasImage sizes an image to the union of rs and fills each rect.
func atlasImage(rs []coloredRect) *ebiten.Image {
	w, h := 1, 1
	for _, r := range rs {
		w = max(w, int(r.rect.X+r.rect.Width))
		h = max(h, int(r.rect.Y+r.rect.Height))
	}
	img := ebiten.NewImage(w, h)
	for _, r := range rs {
		fillRect(img, image.Rect(int(r.rect.X), int(r.rect.Y), int(r.rect.X+r.rect.Width), int(r.rect.Y+r.rect.Height)), r.clr)
	}
	return img
}

func solidImage(w, h int, clr color.Color) *ebiten.Image {
	img := ebiten.NewImage(max(w, 1), max(h, 1))
	img.Fill(clr)
	return img
}

func courtImage(w, h int) *ebiten.Image {
	img := solidImage(w, h, colorCourt)
	const line = 4
	fillRect(img, image.Rect(w/2-line/2, 0, w/2+line/2, h), colorCourtLine)
	for y := 0; y < h; y += 272 {
		fillRect(img, image.Rect(0, y, w, y+line), colorCourtLine)
	}
	return img
}

func finishImage(w, h int) *ebiten.Image {
	img := solidImage(w, h, color.Black)
	const cell = 38
	for y := 0; y < h; y += cell {
		for x := (y / cell % 2) * cell; x < w; x += 2 * cell {
			fillRect(img, image.Rect(x, y, x+cell, y+cell), color.White)
		}
	}
	return img
}

func fillRect(img *ebiten.Image, r image.Rectangle, clr color.Color) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	img.SubImage(r).(*ebiten.Image).Fill(clr)
}
