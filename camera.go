package arena

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds the active scroll-to tweens for the camera center.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is the world view: a center point and a visible size in world units.
// The view fills the screen, so one world unit is one screen pixel.
type Camera struct {
	X, Y          float64
	Width, Height float64

	scroll *scrollAnim
}

// NewCamera creates a camera showing width x height world units centered on
// the middle of that area.
func NewCamera(width, height float64) *Camera {
	return &Camera{X: width / 2, Y: height / 2, Width: width, Height: height}
}

// SetCenter moves the camera to (x, y), cancelling any scroll in progress.
func (c *Camera) SetCenter(x, y float64) {
	c.X, c.Y = x, y
	c.scroll = nil
}

// Center returns the camera center.
func (c *Camera) Center() Vec2 {
	return Vec2{c.X, c.Y}
}

// Move offsets the camera center.
func (c *Camera) Move(dx, dy float64) {
	c.X += dx
	c.Y += dy
}

// ScrollTo animates the camera to the given world position over duration
// seconds. A non-positive duration jumps there.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		c.SetCenter(x, y)
		return
	}
	c.scroll = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// IsScrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) IsScrolling() bool {
	return c.scroll != nil
}

// update advances the scroll animation.
func (c *Camera) update(dt float32) {
	s := c.scroll
	if s == nil {
		return
	}
	if !s.doneX {
		v, done := s.tweenX.Update(dt)
		c.X, s.doneX = float64(v), done
	}
	if !s.doneY {
		v, done := s.tweenY.Update(dt)
		c.Y, s.doneY = float64(v), done
	}
	if s.doneX && s.doneY {
		c.scroll = nil
	}
}

// ViewBounds returns the world-space rectangle the camera shows.
func (c *Camera) ViewBounds() Rect {
	return Rect{X: c.X - c.Width/2, Y: c.Y - c.Height/2, Width: c.Width, Height: c.Height}
}

// viewMatrix maps world space to screen space.
func (c *Camera) viewMatrix() [6]float64 {
	vb := c.ViewBounds()
	return [6]float64{1, 0, 0, 1, -vb.X, -vb.Y}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return transformPoint(c.viewMatrix(), wx, wy)
}
