package easel

import "image"

// Object is the fundamental scene element. A single flat struct is used for
// all object kinds (image, mask shapes, labels) to avoid interface dispatch
// in the render and hit-test paths.
type Object struct {
	Kind ObjectKind
	Name string

	// Transform. Left/Top position the local origin; scaling anchors at the
	// local top-left corner, rotation pivots around the scaled center.
	// Angle is in degrees and is never normalized into [0, 360).
	Left, Top      float64
	ScaleX, ScaleY float64
	Angle          float64

	// Geometry. Width/Height describe the local bounding box for rects,
	// images, polygons, and labels. Circles use Radius, ellipses RX/RY;
	// their Width/Height are kept in sync by the constructors.
	Width, Height float64
	Radius        float64
	RX, RY        float64
	Points        []Vec2 // polygon outline, normalized so min corner is (0,0)

	// Style
	Fill        Color
	Stroke      Color
	StrokeWidth float64
	Opacity     float64

	// Interaction
	Selectable bool
	Rotatable  bool
	Visible    bool

	// Mask identity. Zero MaskID means the object is not a mask.
	MaskID   int
	MaskName string

	// OriginalAlpha is the opacity to restore after a temporary full-opacity
	// override during export.
	OriginalAlpha float64

	// Image payload (KindImage). SourceURL is the originating data URL and is
	// the form persisted in snapshots; Source holds the decoded pixels.
	SourceURL string
	Source    image.Image

	// Label payload (KindLabel).
	Text string

	disposed bool
}

// objectDefaults sets the common default field values shared by all constructors.
func objectDefaults(o *Object) {
	o.ScaleX = 1
	o.ScaleY = 1
	o.Opacity = 1
	o.OriginalAlpha = 1
	o.Visible = true
	o.Fill = maskFillDefault
	o.Stroke = strokeNeutral
	o.StrokeWidth = 1
}

// NewImageObject creates the base image object from decoded pixels and the
// data URL they came from. Image objects are never selectable.
func NewImageObject(src image.Image, sourceURL string) *Object {
	b := src.Bounds()
	o := &Object{
		Kind:      KindImage,
		Name:      "image",
		Width:     float64(b.Dx()),
		Height:    float64(b.Dy()),
		Source:    src,
		SourceURL: sourceURL,
	}
	objectDefaults(o)
	o.StrokeWidth = 0
	return o
}

// NewRect creates a rectangular mask shape.
func NewRect(width, height float64) *Object {
	o := &Object{Kind: KindRect, Width: width, Height: height}
	objectDefaults(o)
	o.Selectable = true
	return o
}

// NewCircle creates a circular mask shape.
func NewCircle(radius float64) *Object {
	o := &Object{Kind: KindCircle, Radius: radius, Width: radius * 2, Height: radius * 2}
	objectDefaults(o)
	o.Selectable = true
	return o
}

// NewEllipse creates an elliptical mask shape with independent radii.
func NewEllipse(rx, ry float64) *Object {
	o := &Object{Kind: KindEllipse, RX: rx, RY: ry, Width: rx * 2, Height: ry * 2}
	objectDefaults(o)
	o.Selectable = true
	return o
}

// NewPolygon creates a closed polygon mask from the given points. The points
// are normalized so the minimum corner sits at the local origin; Width and
// Height are set to the point cloud's bounding box.
func NewPolygon(points []Vec2) *Object {
	o := &Object{Kind: KindPolygon}
	objectDefaults(o)
	o.Selectable = true
	if len(points) == 0 {
		return o
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	o.Points = make([]Vec2, len(points))
	for i, p := range points {
		o.Points[i] = Vec2{X: p.X - minX, Y: p.Y - minY}
	}
	o.Width = maxX - minX
	o.Height = maxY - minY
	return o
}

// labelPadding is the pixel inset between a label's text and its background.
const labelPadding = 4

// NewLabel creates a text label object. Labels are never selectable and are
// excluded from snapshots and exports.
func NewLabel(text string) *Object {
	w, h := measureLabel(text)
	o := &Object{
		Kind:   KindLabel,
		Text:   text,
		Width:  w + 2*labelPadding,
		Height: h + 2*labelPadding,
	}
	objectDefaults(o)
	o.Fill = labelBackground
	o.Stroke = ColorWhite // labels draw their text in the stroke color
	o.StrokeWidth = 0
	return o
}

// Transform returns the object's local-to-world affine matrix:
// scale about the top-left corner, then rotate around the scaled center,
// then translate to (Left, Top).
func (o *Object) Transform() [6]float64 {
	cx := o.Width * o.ScaleX / 2
	cy := o.Height * o.ScaleY / 2
	m := multiplyAffine(rotationAbout(o.Angle, cx, cy), scaling(o.ScaleX, o.ScaleY))
	return multiplyAffine(translation(o.Left, o.Top), m)
}

// Bounds returns the object's axis-aligned bounding box in scene coordinates,
// accounting for scale and rotation.
func (o *Object) Bounds() Rect {
	return boundsOfQuad(o.Transform(), o.Width, o.Height)
}

// Center returns the object's visual center in scene coordinates. The center
// is the rotation pivot, so it is stable while the object rotates.
func (o *Object) Center() Vec2 {
	x, y := transformPoint(o.Transform(), o.Width/2, o.Height/2)
	return Vec2{X: x, Y: y}
}

// ContainsPoint reports whether the scene-space point (x, y) falls inside the
// object's shape (not merely its bounding box).
func (o *Object) ContainsPoint(x, y float64) bool {
	lx, ly := transformPoint(invertAffine(o.Transform()), x, y)
	switch o.Kind {
	case KindCircle:
		dx := lx - o.Radius
		dy := ly - o.Radius
		return dx*dx+dy*dy <= o.Radius*o.Radius
	case KindEllipse:
		if o.RX == 0 || o.RY == 0 {
			return false
		}
		dx := (lx - o.RX) / o.RX
		dy := (ly - o.RY) / o.RY
		return dx*dx+dy*dy <= 1
	case KindPolygon:
		return pointInPolygon(o.Points, lx, ly)
	default:
		return lx >= 0 && lx <= o.Width && ly >= 0 && ly <= o.Height
	}
}

// pointInPolygon reports whether (x, y) is inside the polygon using the
// even-odd ray casting rule.
func pointInPolygon(pts []Vec2, x, y float64) bool {
	inside := false
	n := len(pts)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := pts[i], pts[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// Dispose marks the object as disposed and releases its payloads.
// Disposed objects are skipped by rendering and hit testing.
func (o *Object) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true
	o.Source = nil
	o.SourceURL = ""
	o.Points = nil
	o.Visible = false
	o.Selectable = false
}

// IsDisposed returns true if this object has been disposed.
func (o *Object) IsDisposed() bool {
	return o.disposed
}
