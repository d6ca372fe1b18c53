package easel

import (
	"math"
	"testing"
)

func TestNewRectDefaults(t *testing.T) {
	o := NewRect(40, 30)
	if o.Kind != KindRect {
		t.Fatalf("Kind = %v, want KindRect", o.Kind)
	}
	if o.Width != 40 || o.Height != 30 {
		t.Errorf("size = %fx%f, want 40x30", o.Width, o.Height)
	}
	if o.ScaleX != 1 || o.ScaleY != 1 || o.Opacity != 1 {
		t.Error("expected identity scale and full opacity")
	}
	if !o.Selectable {
		t.Error("mask shapes should default to selectable")
	}
}

func TestNewCircleSizesBoundingBox(t *testing.T) {
	o := NewCircle(25)
	if o.Width != 50 || o.Height != 50 {
		t.Errorf("bounding box = %fx%f, want 50x50", o.Width, o.Height)
	}
}

func TestNewPolygonNormalizesPoints(t *testing.T) {
	o := NewPolygon([]Vec2{{X: 10, Y: 30}, {X: 50, Y: 10}, {X: 30, Y: 60}})
	if o.Width != 40 || o.Height != 50 {
		t.Errorf("bounding box = %fx%f, want 40x50", o.Width, o.Height)
	}
	for _, p := range o.Points {
		if p.X < 0 || p.Y < 0 {
			t.Errorf("point %+v not normalized to the local origin", p)
		}
	}
	if o.Points[1] != (Vec2{X: 40, Y: 0}) {
		t.Errorf("second point = %+v, want {40 0}", o.Points[1])
	}
}

func TestBoundsFollowsScaleAndPosition(t *testing.T) {
	o := NewRect(10, 20)
	o.Left = 5
	o.Top = 7
	o.ScaleX = 2
	o.ScaleY = 3
	b := o.Bounds()
	want := Rect{X: 5, Y: 7, Width: 20, Height: 60}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
}

func TestCenterStableUnderRotation(t *testing.T) {
	o := NewRect(40, 20)
	o.Left = 10
	o.Top = 10
	c0 := o.Center()
	o.Angle = 73
	c1 := o.Center()
	if !approxEq(c0.X, c1.X) || !approxEq(c0.Y, c1.Y) {
		t.Errorf("center moved from %+v to %+v during rotation", c0, c1)
	}
}

func TestContainsPointRotatedRect(t *testing.T) {
	o := NewRect(20, 20)
	o.Left = 40
	o.Top = 40
	o.Angle = 45
	c := o.Center()
	if !o.ContainsPoint(c.X, c.Y) {
		t.Error("center must be inside")
	}
	// The unrotated corner region is outside the rotated square.
	if o.ContainsPoint(41, 41) {
		t.Error("old corner should fall outside after rotation")
	}
}

func TestContainsPointCircle(t *testing.T) {
	o := NewCircle(10)
	o.Left = 100
	o.Top = 100
	if !o.ContainsPoint(110, 110) {
		t.Error("circle center must be inside")
	}
	if o.ContainsPoint(100+1, 100+1) {
		t.Error("bounding-box corner must be outside the circle")
	}
	edge := 110 + 10/math.Sqrt2
	if !o.ContainsPoint(edge-0.5, edge-0.5) {
		t.Error("point just inside the rim must be inside")
	}
}

func TestContainsPointEllipse(t *testing.T) {
	o := NewEllipse(20, 10)
	if !o.ContainsPoint(20, 10) {
		t.Error("ellipse center must be inside")
	}
	if !o.ContainsPoint(39, 10) || o.ContainsPoint(41, 10) {
		t.Error("major axis containment wrong")
	}
	if o.ContainsPoint(20, 21) {
		t.Error("point beyond the minor radius must be outside")
	}
}

func TestContainsPointPolygon(t *testing.T) {
	// Right triangle with the hypotenuse from (40, 0) to (0, 40).
	o := NewPolygon([]Vec2{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 0, Y: 40}})
	if !o.ContainsPoint(5, 5) {
		t.Error("interior point must be inside")
	}
	if o.ContainsPoint(30, 30) {
		t.Error("point across the hypotenuse must be outside")
	}
}

func TestDisposeReleasesObject(t *testing.T) {
	o := NewRect(10, 10)
	o.Dispose()
	if !o.IsDisposed() {
		t.Fatal("expected disposed")
	}
	if o.Selectable || o.Visible {
		t.Error("disposed objects must be invisible and unselectable")
	}
	// Dispose is idempotent.
	o.Dispose()
}
