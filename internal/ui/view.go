package ui

import "math"

// View is the camera over the tile plane: a center in plane coordinates and
// a fractional zoom level. At zoom z one plane unit is 2^z screen pixels.
// Screen y grows downward while plane y grows upward, matching how the tile
// atlas was exported.
type View struct {
	CenterX, CenterY float64
	Zoom             float64
	MinZoom, MaxZoom float64
	Width, Height    int
}

func (v *View) Scale() float64 {
	return math.Exp2(v.Zoom)
}

func (v *View) PlaneToScreen(x, y float64) (float64, float64) {
	s := v.Scale()
	sx := float64(v.Width)/2 + (x-v.CenterX)*s
	sy := float64(v.Height)/2 - (y-v.CenterY)*s
	return sx, sy
}

func (v *View) ScreenToPlane(sx, sy float64) (float64, float64) {
	s := v.Scale()
	x := v.CenterX + (sx-float64(v.Width)/2)/s
	y := v.CenterY - (sy-float64(v.Height)/2)/s
	return x, y
}

// Origin returns the screen position of plane (0,0), which is what the tile
// atlas draws from.
func (v *View) Origin() (float64, float64) {
	return v.PlaneToScreen(0, 0)
}

// Pan shifts the view by a screen-space delta.
func (v *View) Pan(dx, dy float64) {
	s := v.Scale()
	v.CenterX -= dx / s
	v.CenterY += dy / s
}

// ZoomBy changes zoom by delta steps keeping the plane point under the
// given screen position fixed.
func (v *View) ZoomBy(delta float64, sx, sy float64) {
	px, py := v.ScreenToPlane(sx, sy)
	v.SetZoom(v.Zoom + delta)
	// Re-anchor so the cursor still hovers the same plane point.
	nx, ny := v.ScreenToPlane(sx, sy)
	v.CenterX += px - nx
	v.CenterY += py - ny
}

func (v *View) SetZoom(z float64) {
	if z < v.MinZoom {
		z = v.MinZoom
	}
	if z > v.MaxZoom {
		z = v.MaxZoom
	}
	v.Zoom = z
}

// Center moves the view to a plane point at the given zoom. Used by the
// list's locate action, which never zooms out below the current level.
func (v *View) Center(x, y, zoom float64) {
	v.CenterX = x
	v.CenterY = y
	v.SetZoom(zoom)
}
