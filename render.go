package easel

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// labelFace is the single face used for mask labels and the placeholder.
var labelFace = basicfont.Face7x13

// measureLabel returns the pixel size of a label's text.
func measureLabel(text string) (w, h float64) {
	return float64(font.MeasureString(labelFace, text).Ceil()),
		float64(labelFace.Metrics().Height.Ceil())
}

// RenderOptions controls a software rasterization pass.
type RenderOptions struct {
	// Multiplier scales the output resolution. Zero means 1.
	Multiplier float64
	// IncludeLabels draws mask labels and the placeholder. Export paths leave
	// this false so labels never appear in output pixels.
	IncludeLabels bool
}

// Render composites the scene into a straight-alpha raster in painter's
// order: background, base image, masks, then labels.
func Render(s *Scene, opts RenderOptions) *image.NRGBA {
	mult := opts.Multiplier
	if mult <= 0 {
		mult = 1
	}
	w := max(int(math.Ceil(float64(s.Width)*mult)), 1)
	h := max(int(math.Ceil(float64(s.Height)*mult)), 1)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	fillRect(dst, dst.Bounds(), s.Background)

	for _, o := range s.Objects() {
		if o.IsDisposed() || !o.Visible || o.Opacity <= 0 {
			continue
		}
		switch o.Kind {
		case KindImage:
			drawImageObject(dst, o, mult)
		case KindLabel:
			if opts.IncludeLabels {
				drawLabel(dst, o, mult)
			}
		default:
			drawShape(dst, o, mult)
		}
	}
	return dst
}

// fillRect fills r with a solid color, alpha-composited over dst.
func fillRect(dst *image.NRGBA, r image.Rectangle, c Color) {
	xdraw.Draw(dst, r, image.NewUniform(c.NRGBA()), image.Point{}, xdraw.Over)
}

// aff3 converts the engine's column-style matrix to x/image's row-major Aff3.
func aff3(m [6]float64) f64.Aff3 {
	return f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
}

// drawImageObject draws the base image through its affine transform with
// Catmull-Rom resampling.
func drawImageObject(dst *image.NRGBA, o *Object, mult float64) {
	if o.Source == nil {
		return
	}
	sr := o.Source.Bounds()
	m := o.Transform()
	// Map the source's own origin onto the object's local (0, 0).
	m = multiplyAffine(m, translation(float64(-sr.Min.X), float64(-sr.Min.Y)))
	m = multiplyAffine(scaling(mult, mult), m)
	xdraw.CatmullRom.Transform(dst, aff3(m), o.Source, sr, xdraw.Over, nil)
}

// outlinePoints returns the shape's outline in local coordinates. Circles
// and ellipses are flattened to a 64-gon, which is visually smooth at the
// sizes masks are used at and keeps fill and stroke on one code path.
func outlinePoints(o *Object) []Vec2 {
	const segments = 64
	switch o.Kind {
	case KindCircle:
		pts := make([]Vec2, segments)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / segments
			pts[i] = Vec2{X: o.Radius + o.Radius*math.Cos(a), Y: o.Radius + o.Radius*math.Sin(a)}
		}
		return pts
	case KindEllipse:
		pts := make([]Vec2, segments)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / segments
			pts[i] = Vec2{X: o.RX + o.RX*math.Cos(a), Y: o.RY + o.RY*math.Sin(a)}
		}
		return pts
	case KindPolygon:
		return o.Points
	default:
		return []Vec2{{0, 0}, {o.Width, 0}, {o.Width, o.Height}, {0, o.Height}}
	}
}

// drawShape fills and strokes a mask shape through its transform.
func drawShape(dst *image.NRGBA, o *Object, mult float64) {
	local := outlinePoints(o)
	if len(local) < 3 {
		return
	}
	m := multiplyAffine(scaling(mult, mult), o.Transform())
	world := make([]Vec2, len(local))
	for i, p := range local {
		x, y := transformPoint(m, p.X, p.Y)
		world[i] = Vec2{X: x, Y: y}
	}

	fill := o.Fill
	fill.A *= o.Opacity
	fillPolygon(dst, world, fill)

	if o.StrokeWidth > 0 {
		stroke := o.Stroke
		stroke.A *= o.Opacity
		strokePolygon(dst, world, o.StrokeWidth*mult, stroke)
	}
}

// fillPolygon rasterizes a closed polygon with anti-aliased coverage.
func fillPolygon(dst *image.NRGBA, pts []Vec2, c Color) {
	if c.A <= 0 {
		return
	}
	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = xdraw.Over
	r.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		r.LineTo(float32(p.X), float32(p.Y))
	}
	r.ClosePath()
	r.Draw(dst, b, image.NewUniform(c.NRGBA()), image.Point{})
}

// strokePolygon draws the polygon outline as one quad per edge, centered on
// the edge. Joins are left square; at mask stroke widths the corner gaps are
// subpixel.
func strokePolygon(dst *image.NRGBA, pts []Vec2, width float64, c Color) {
	if c.A <= 0 || width <= 0 {
		return
	}
	half := width / 2
	n := len(pts)
	for i := 0; i < n; i++ {
		p0 := pts[i]
		p1 := pts[(i+1)%n]
		dx := p1.X - p0.X
		dy := p1.Y - p0.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		// Unit normal of the edge.
		nx := -dy / length * half
		ny := dx / length * half
		quad := []Vec2{
			{p0.X + nx, p0.Y + ny},
			{p1.X + nx, p1.Y + ny},
			{p1.X - nx, p1.Y - ny},
			{p0.X - nx, p0.Y - ny},
		}
		fillPolygon(dst, quad, c)
	}
}

// drawLabel renders the label's background and text upright into a temporary
// raster, then places it through the label's transform so the text follows
// its mask's rotation.
func drawLabel(dst *image.NRGBA, o *Object, mult float64) {
	w := max(int(math.Ceil(o.Width)), 1)
	h := max(int(math.Ceil(o.Height)), 1)
	tmp := image.NewNRGBA(image.Rect(0, 0, w, h))
	if o.Fill.A > 0 {
		fillRect(tmp, tmp.Bounds(), o.Fill)
	}
	d := font.Drawer{
		Dst:  tmp,
		Src:  image.NewUniform(o.Stroke.NRGBA()),
		Face: labelFace,
		Dot: fixed.P(
			labelPadding,
			labelPadding+labelFace.Metrics().Ascent.Ceil(),
		),
	}
	d.DrawString(o.Text)

	m := multiplyAffine(scaling(mult, mult), o.Transform())
	xdraw.ApproxBiLinear.Transform(dst, aff3(m), tmp, tmp.Bounds(), xdraw.Over, nil)
}
