package easel

import (
	"math"
	"testing"
)

func approxEq(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6
}

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 0, 0, 3, 5, 7}
	if got := multiplyAffine(identityTransform, m); got != m {
		t.Errorf("identity * m = %v, want %v", got, m)
	}
	if got := multiplyAffine(m, identityTransform); got != m {
		t.Errorf("m * identity = %v, want %v", got, m)
	}
}

func TestInvertAffineRoundTrip(t *testing.T) {
	m := multiplyAffine(translation(12, -4), multiplyAffine(rotationAbout(30, 0, 0), scaling(2, 0.5)))
	inv := invertAffine(m)

	x, y := transformPoint(m, 7, 13)
	rx, ry := transformPoint(inv, x, y)
	if !approxEq(rx, 7) || !approxEq(ry, 13) {
		t.Errorf("round trip = (%f, %f), want (7, 13)", rx, ry)
	}
}

func TestInvertAffineSingular(t *testing.T) {
	if got := invertAffine(scaling(0, 0)); got != identityTransform {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}

func TestRotationAboutPivotIsFixed(t *testing.T) {
	m := rotationAbout(137, 40, 25)
	x, y := transformPoint(m, 40, 25)
	if !approxEq(x, 40) || !approxEq(y, 25) {
		t.Errorf("pivot moved to (%f, %f)", x, y)
	}
}

func TestRotationAboutQuarterTurn(t *testing.T) {
	// Rotating (1, 0) by 90 degrees around the origin lands on (0, 1)
	// (Y grows downward, positive angles turn clockwise on screen).
	m := rotationAbout(90, 0, 0)
	x, y := transformPoint(m, 1, 0)
	if !approxEq(x, 0) || !approxEq(y, 1) {
		t.Errorf("quarter turn = (%f, %f), want (0, 1)", x, y)
	}
}

func TestBoundsOfQuadAxisAligned(t *testing.T) {
	b := boundsOfQuad(translation(10, 20), 30, 40)
	want := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
}

func TestBoundsOfQuadRotated(t *testing.T) {
	// A 10x10 square rotated 45 degrees spans 10*sqrt(2) on both axes.
	m := rotationAbout(45, 5, 5)
	b := boundsOfQuad(m, 10, 10)
	diag := 10 * math.Sqrt2
	if !approxEq(b.Width, diag) || !approxEq(b.Height, diag) {
		t.Errorf("rotated bounds = %fx%f, want %fx%f", b.Width, b.Height, diag, diag)
	}
	// The center stays fixed.
	if !approxEq(b.X+b.Width/2, 5) || !approxEq(b.Y+b.Height/2, 5) {
		t.Errorf("rotated bounds center moved: %+v", b)
	}
}
