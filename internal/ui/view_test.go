package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testView() *View {
	return &View{CenterX: 0, CenterY: 0, Zoom: 3, MinZoom: 0, MaxZoom: 7, Width: 800, Height: 600}
}

func TestPlaneScreenRoundTrip(t *testing.T) {
	v := testView()

	sx, sy := v.PlaneToScreen(10, -20)
	x, y := v.ScreenToPlane(sx, sy)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, -20, y, 1e-9)

	// Plane y grows upward, screen y downward.
	_, syUp := v.PlaneToScreen(0, 5)
	_, syDown := v.PlaneToScreen(0, -5)
	assert.Less(t, syUp, syDown)
}

func TestPanMovesCenter(t *testing.T) {
	v := testView()
	px, py := v.ScreenToPlane(100, 100)

	// Dragging the map right by 40px keeps the grabbed point under the
	// cursor's new position.
	v.Pan(40, 0)
	nx, ny := v.ScreenToPlane(140, 100)
	assert.InDelta(t, px, nx, 1e-9)
	assert.InDelta(t, py, ny, 1e-9)
}

func TestZoomByKeepsCursorAnchored(t *testing.T) {
	v := testView()
	px, py := v.ScreenToPlane(200, 150)

	v.ZoomBy(1, 200, 150)
	assert.Equal(t, 4.0, v.Zoom)
	nx, ny := v.ScreenToPlane(200, 150)
	assert.InDelta(t, px, nx, 1e-9)
	assert.InDelta(t, py, ny, 1e-9)
}

func TestSetZoomClamps(t *testing.T) {
	v := testView()

	v.SetZoom(12)
	assert.Equal(t, 7.0, v.Zoom)
	v.SetZoom(-3)
	assert.Equal(t, 0.0, v.Zoom)
}

func TestCenter(t *testing.T) {
	v := testView()
	v.Center(42, -7, 5)

	sx, sy := v.PlaneToScreen(42, -7)
	assert.InDelta(t, 400, sx, 1e-9)
	assert.InDelta(t, 300, sy, 1e-9)
	assert.Equal(t, 5.0, v.Zoom)
}
