package arena

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextureProvider resolves texture ids to images. It returns nil for ids it
// does not know.
type TextureProvider interface {
	Texture(id TextureID) *ebiten.Image
}

// EbitenSink draws render commands onto an ebiten image.
type EbitenSink struct {
	Target   *ebiten.Image
	Textures TextureProvider

	op ebiten.DrawImageOptions
}

// NewEbitenSink creates a sink drawing onto target.
func NewEbitenSink(target *ebiten.Image, textures TextureProvider) *EbitenSink {
	return &EbitenSink{Target: target, Textures: textures}
}

// Draw draws a single command using DrawImage. Commands whose texture is
// unknown are skipped.
func (s *EbitenSink) Draw(cmd RenderCommand) {
	if s.Target == nil || s.Textures == nil {
		return
	}
	tex := s.Textures.Texture(cmd.Texture)
	if tex == nil {
		return
	}

	r := cmd.Source
	img := tex
	if r.Width > 0 && r.Height > 0 {
		subRect := image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height))
		img = tex.SubImage(subRect).(*ebiten.Image)
	}

	op := &s.op
	op.GeoM.Reset()
	op.GeoM.Concat(commandGeoM(&cmd))
	op.ColorScale.Reset()
	a := float32(cmd.Color.A)
	op.ColorScale.Scale(float32(cmd.Color.R)*a, float32(cmd.Color.G)*a, float32(cmd.Color.B)*a, a)
	s.Target.DrawImage(img, op)
}

// commandGeoM converts a command's affine transform to an ebiten.GeoM.
func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, cmd.Transform[0])
	m.SetElement(1, 0, cmd.Transform[1])
	m.SetElement(0, 1, cmd.Transform[2])
	m.SetElement(1, 1, cmd.Transform[3])
	m.SetElement(0, 2, cmd.Transform[4])
	m.SetElement(1, 2, cmd.Transform[5])
	return m
}
