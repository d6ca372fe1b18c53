package easel

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Common stroke and fill colors used by the mask engine.
var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}

	maskFillDefault   = Color{R: 0.2, G: 0.2, B: 0.2, A: 1}
	strokeNeutral     = Color{R: 0.6, G: 0.6, B: 0.6, A: 1}
	strokeHighlight   = Color{R: 0.13, G: 0.47, B: 0.9, A: 1}
	strokeHover       = Color{R: 0.3, G: 0.65, B: 1, A: 1}
	labelBackground   = Color{R: 0.1, G: 0.1, B: 0.1, A: 0.85}
	canvasBackDefault = Color{R: 0.93, G: 0.93, B: 0.93, A: 1}
)

// NRGBA converts the color to 8-bit straight-alpha RGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp(c.R, 0, 1)*255 + 0.5),
		G: uint8(clamp(c.G, 0, 1)*255 + 0.5),
		B: uint8(clamp(c.B, 0, 1)*255 + 0.5),
		A: uint8(clamp(c.A, 0, 1)*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions, offsets, and polygon points.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Union returns the smallest rectangle covering both r and other.
func (r Rect) Union(other Rect) Rect {
	x0 := min(r.X, other.X)
	y0 := min(r.Y, other.Y)
	x1 := max(r.X+r.Width, other.X+other.Width)
	y1 := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// ObjectKind distinguishes rendering and hit-testing behavior for an Object.
type ObjectKind uint8

const (
	KindImage   ObjectKind = iota // the base raster image
	KindRect                      // rectangular mask
	KindCircle                    // circular mask
	KindEllipse                   // elliptical mask
	KindPolygon                   // polygonal mask
	KindLabel                     // text label attached to a selected mask
)

// MaskShape selects the shape created by Editor.AddMask.
type MaskShape uint8

const (
	ShapeRect    MaskShape = iota // axis-aligned rectangle (default)
	ShapeCircle                   // circle with a radius
	ShapeEllipse                  // ellipse with independent radii
	ShapePolygon                  // closed polygon from a point list
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
