package arena

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestCameraDefaults(t *testing.T) {
	c := NewCamera(800, 600)
	if c.Center() != (Vec2{400, 300}) {
		t.Errorf("Center = %v, want (400, 300)", c.Center())
	}
	want := Rect{0, 0, 800, 600}
	if c.ViewBounds() != want {
		t.Errorf("ViewBounds = %v, want %v", c.ViewBounds(), want)
	}
}

func TestCameraWorldToScreen(t *testing.T) {
	c := NewCamera(800, 600)
	c.SetCenter(1000, 1000)
	sx, sy := c.WorldToScreen(1000, 1000)
	assertNear(t, "sx", sx, 400)
	assertNear(t, "sy", sy, 300)

	sx, sy = c.WorldToScreen(600, 700)
	assertNear(t, "corner sx", sx, 0)
	assertNear(t, "corner sy", sy, 0)
}

func TestCameraMove(t *testing.T) {
	c := NewCamera(800, 600)
	c.Move(10, -20)
	if c.Center() != (Vec2{410, 280}) {
		t.Errorf("Center = %v, want (410, 280)", c.Center())
	}
	sx, _ := c.WorldToScreen(410, 280)
	assertNear(t, "sx after move", sx, 400)
}

func TestCameraScrollTo(t *testing.T) {
	c := NewCamera(800, 600)
	c.ScrollTo(400, 100, 1, ease.Linear)
	if !c.IsScrolling() {
		t.Fatal("camera should be scrolling")
	}
	c.update(0.5)
	if c.Y >= 300 || c.Y <= 100 {
		t.Errorf("Y mid-scroll = %v, want between 100 and 300", c.Y)
	}
	c.update(0.6)
	if c.IsScrolling() {
		t.Error("scroll should be finished")
	}
	assertNear(t, "Y", c.Y, 100)
}

func TestCameraScrollToZeroDurationSnaps(t *testing.T) {
	c := NewCamera(800, 600)
	c.ScrollTo(10, 20, 0, ease.Linear)
	if c.IsScrolling() || c.Center() != (Vec2{10, 20}) {
		t.Errorf("Center = %v, scrolling = %v", c.Center(), c.IsScrolling())
	}
}

func TestCameraSetCenterCancelsScroll(t *testing.T) {
	c := NewCamera(800, 600)
	c.ScrollTo(0, 0, 5, ease.Linear)
	c.SetCenter(50, 50)
	if c.IsScrolling() {
		t.Error("SetCenter should cancel the scroll")
	}
}
