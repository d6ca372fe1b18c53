package easel

import "testing"

func TestAddMaskDefaults(t *testing.T) {
	ed := newTestEditor(t, nil)
	mask := ed.AddMask(MaskConfig{})
	if mask == nil {
		t.Fatal("AddMask returned nil")
	}
	if mask.Kind != KindRect {
		t.Errorf("default shape = %v, want rect", mask.Kind)
	}
	if mask.Left != maskInset || mask.Top != maskInset {
		t.Errorf("placement = (%f, %f), want the default inset", mask.Left, mask.Top)
	}
	if mask.Width != 100 || mask.Height != 100 {
		t.Errorf("size = %fx%f, want the configured default", mask.Width, mask.Height)
	}
	if mask.Opacity != maskOpacityDefault {
		t.Errorf("opacity = %f, want %f", mask.Opacity, maskOpacityDefault)
	}
	if mask.MaskID != 1 || mask.MaskName != "mask-1" {
		t.Errorf("identity = %d %q, want 1 %q", mask.MaskID, mask.MaskName, "mask-1")
	}
	if !mask.Selectable || !mask.Rotatable {
		t.Error("default mask must be selectable and rotatable")
	}
	if ed.Scene().Active() != mask {
		t.Error("new mask must become the active selection")
	}
	if mask.Stroke != strokeHighlight {
		t.Error("active mask must carry the highlight stroke")
	}
}

func TestAddMaskGrowsCanvas(t *testing.T) {
	ed := newTestEditor(t, nil) // canvas 100x80 after load
	ed.AddMask(MaskConfig{})    // 100x100 at (20, 20)
	s := ed.Scene()
	if s.Width < 130 || s.Height < 130 {
		t.Errorf("canvas = %dx%d, want at least 130x130", s.Width, s.Height)
	}
}

func TestAddMaskCascadesFromPrevious(t *testing.T) {
	ed := newTestEditor(t, nil)
	m1 := ed.AddMask(MaskConfig{})
	m2 := ed.AddMask(MaskConfig{})

	wantLeft := m1.Bounds().X + m1.Bounds().Width + maskGap
	if m2.Left != wantLeft || m2.Top != m1.Bounds().Y {
		t.Errorf("cascade placement = (%f, %f), want (%f, %f)",
			m2.Left, m2.Top, wantLeft, m1.Bounds().Y)
	}
	if m2.MaskID != 2 || m2.MaskName != "mask-2" {
		t.Errorf("second mask identity = %d %q", m2.MaskID, m2.MaskName)
	}
}

func TestAddMaskExplicitPlacement(t *testing.T) {
	ed := newTestEditor(t, nil)
	ed.AddMask(MaskConfig{}) // establish cascade memory
	m := ed.AddMask(MaskConfig{Left: 5.0, Top: 7.0})
	if m.Left != 5 || m.Top != 7 {
		t.Errorf("placement = (%f, %f), want (5, 7)", m.Left, m.Top)
	}

	// A partial placement fills the missing axis with the inset, not the cascade.
	m2 := ed.AddMask(MaskConfig{Left: 40.0})
	if m2.Left != 40 || m2.Top != maskInset {
		t.Errorf("placement = (%f, %f), want (40, %f)", m2.Left, m2.Top, maskInset)
	}
}

func TestAddMaskShapes(t *testing.T) {
	ed := newTestEditor(t, nil)

	c := ed.AddMask(MaskConfig{Shape: ShapeCircle})
	if c.Kind != KindCircle || c.Radius != 50 {
		t.Errorf("circle = %v radius %f, want half the default width", c.Kind, c.Radius)
	}

	e := ed.AddMask(MaskConfig{Shape: ShapeEllipse, RX: 30.0, RY: 20.0})
	if e.Kind != KindEllipse || e.RX != 30 || e.RY != 20 {
		t.Errorf("ellipse = %v %fx%f", e.Kind, e.RX, e.RY)
	}

	p := ed.AddMask(MaskConfig{
		Shape:  ShapePolygon,
		Points: []Vec2{{X: 0, Y: 40}, {X: 25, Y: 0}, {X: 50, Y: 40}},
	})
	if p.Kind != KindPolygon || len(p.Points) != 3 {
		t.Errorf("polygon = %v with %d points", p.Kind, len(p.Points))
	}
}

func TestAddMaskPolygonNeedsThreePoints(t *testing.T) {
	ed := newTestEditor(t, nil)
	if m := ed.AddMask(MaskConfig{Shape: ShapePolygon, Points: []Vec2{{}, {X: 1}}}); m != nil {
		t.Error("degenerate polygon must be rejected")
	}
	if len(ed.Scene().Masks()) != 0 {
		t.Error("rejected mask must not reach the scene")
	}
}

func TestAddMaskValueForms(t *testing.T) {
	ed := newTestEditor(t, nil) // canvas width 100 after load

	m := ed.AddMask(MaskConfig{Width: "50%", Height: 30})
	if m.Width != 50 {
		t.Errorf("percentage width = %f, want half the canvas width", m.Width)
	}
	if m.Height != 30 {
		t.Errorf("int height = %f, want 30", m.Height)
	}

	fn := ValueFunc(func(s *Scene, _ MaskConfig) float64 { return float64(s.Height) / 2 })
	wantLeft := float64(ed.Scene().Height) / 2 // resolved before the canvas grows
	m2 := ed.AddMask(MaskConfig{Left: fn, Top: 0.0})
	if m2.Left != wantLeft {
		t.Errorf("func left = %f, want %f", m2.Left, wantLeft)
	}

	// Unparseable strings fall back to the default size.
	m3 := ed.AddMask(MaskConfig{Width: "wide"})
	if m3.Width != 100 {
		t.Errorf("bad value width = %f, want the default", m3.Width)
	}
}

func TestAddMaskLockedAndStyle(t *testing.T) {
	ed := newTestEditor(t, nil)
	fill := Color{R: 1, G: 0, B: 0, A: 1}
	m := ed.AddMask(MaskConfig{Locked: true, LockRotation: true, Fill: &fill, Opacity: 0.3})
	if m.Selectable {
		t.Error("locked mask must not be selectable")
	}
	if m.Rotatable {
		t.Error("rotation-locked mask must not be rotatable")
	}
	if m.Fill != fill {
		t.Errorf("fill = %+v, want the override", m.Fill)
	}
	if m.Opacity != 0.3 || m.OriginalAlpha != 0.3 {
		t.Errorf("opacity = %f/%f, want 0.3", m.Opacity, m.OriginalAlpha)
	}
}

func TestAddMaskRotationPolicy(t *testing.T) {
	ed := newTestEditor(t, func(o *Options) { o.MaskRotatable = false })
	if m := ed.AddMask(MaskConfig{}); m.Rotatable {
		t.Error("editor-wide policy must pin mask rotation")
	}
}

func TestAddMaskGenerator(t *testing.T) {
	ed := newTestEditor(t, nil)
	m := ed.AddMask(MaskConfig{
		Generate: func(*Scene, MaskConfig) *Object { return NewCircle(7) },
	})
	if m == nil || m.Kind != KindCircle || m.Radius != 7 {
		t.Fatalf("generated mask = %+v, want a radius-7 circle", m)
	}
	if m.MaskID != 1 {
		t.Error("generated masks still get engine-assigned ids")
	}

	nilGen := ed.AddMask(MaskConfig{Generate: func(*Scene, MaskConfig) *Object { return nil }})
	if nilGen != nil {
		t.Error("a generator returning nil must not create a mask")
	}
}

func TestMaskLabelFollowsSelection(t *testing.T) {
	ed := newTestEditor(t, nil)
	mask := ed.AddMask(MaskConfig{})

	label := ed.masks.labels[mask.MaskID]
	if label == nil || label.Text != "mask-1" {
		t.Fatal("active mask must have a label with its name")
	}

	// Dragging the mask keeps the label tracking it.
	before := Vec2{X: label.Left, Y: label.Top}
	ed.Scene().MoveObject(mask, mask.Left+40, mask.Top+25)
	if label.Left != before.X+40 || label.Top != before.Y+25 {
		t.Errorf("label did not follow the drag: was %+v, now (%f, %f)", before, label.Left, label.Top)
	}
	if label.Angle != mask.Angle {
		t.Error("label angle must mirror the mask angle")
	}

	// Deselecting destroys the label.
	ed.Scene().SetActive(nil)
	if len(ed.masks.labels) != 0 {
		t.Error("label must not outlive the selection")
	}
	if !label.IsDisposed() {
		t.Error("destroyed label must be disposed")
	}
}

func TestMaskLabelPolicyOff(t *testing.T) {
	ed := newTestEditor(t, func(o *Options) { o.ShowLabelOnSelect = false })
	ed.AddMask(MaskConfig{})
	if len(ed.masks.labels) != 0 {
		t.Error("labels must not be created when the policy is off")
	}
}

func TestRemoveSelectedMask(t *testing.T) {
	ed := newTestEditor(t, nil)
	if ed.RemoveSelectedMask() {
		t.Error("nothing selected, removal must report false")
	}

	mask := ed.AddMask(MaskConfig{})
	if !ed.RemoveSelectedMask() {
		t.Fatal("expected removal of the active mask")
	}
	if !mask.IsDisposed() || len(ed.Scene().Masks()) != 0 {
		t.Error("mask must be gone from the scene")
	}
	if len(ed.masks.labels) != 0 {
		t.Error("the mask's label must be removed with it")
	}
}

func TestRemoveAllMasksResetsCascade(t *testing.T) {
	ed := newTestEditor(t, nil)
	if ed.RemoveAllMasks() {
		t.Error("no masks, removal must report false")
	}

	ed.AddMask(MaskConfig{})
	ed.AddMask(MaskConfig{})
	if !ed.RemoveAllMasks() {
		t.Fatal("expected removal")
	}
	if len(ed.Scene().Masks()) != 0 || len(ed.masks.labels) != 0 {
		t.Error("all masks and labels must be gone")
	}

	// Cascade memory is cleared, so the next mask returns to the inset;
	// ids keep counting for the lifetime of the image.
	m := ed.AddMask(MaskConfig{})
	if m.Left != maskInset || m.Top != maskInset {
		t.Errorf("placement after removeAll = (%f, %f), want the inset", m.Left, m.Top)
	}
	if m.MaskID != 3 {
		t.Errorf("id after removeAll = %d, want 3 (ids reset only on image load)", m.MaskID)
	}
}

func TestMaskIDsResetOnLoad(t *testing.T) {
	ed := newTestEditor(t, nil)
	ed.AddMask(MaskConfig{})
	ed.AddMask(MaskConfig{})

	if err := ed.LoadImage(testDataURL(t, 60, 40, testRed)); err != nil {
		t.Fatal(err)
	}
	if len(ed.Scene().Masks()) != 0 {
		t.Fatal("loading an image must discard all masks")
	}
	m := ed.AddMask(MaskConfig{})
	if m.MaskID != 1 || m.MaskName != "mask-1" {
		t.Errorf("first mask on the new image = %d %q, want 1 %q", m.MaskID, m.MaskName, "mask-1")
	}
}

func TestMaskHoverStyling(t *testing.T) {
	ed := newTestEditor(t, nil)
	mask := ed.AddMask(MaskConfig{})
	s := ed.Scene()

	s.PointerEnter(mask)
	if mask.Stroke != strokeHover {
		t.Error("hovered mask must carry the hover stroke")
	}
	if mask.Opacity != maskOpacityDefault+0.2 {
		t.Errorf("hover opacity = %f, want boosted", mask.Opacity)
	}
	// Entering twice must not overwrite the saved style.
	s.PointerEnter(mask)

	s.PointerLeave(mask)
	if mask.Opacity != maskOpacityDefault {
		t.Errorf("opacity after leave = %f, want restored", mask.Opacity)
	}
	// The mask is still the active selection, so the highlight wins.
	if mask.Stroke != strokeHighlight {
		t.Error("active mask must return to the highlight stroke")
	}

	s.SetActive(nil)
	s.PointerEnter(mask)
	s.PointerLeave(mask)
	if mask.Stroke != strokeNeutral {
		t.Error("deselected mask must return to the neutral stroke")
	}
}

func TestMaskSelectionStrokes(t *testing.T) {
	ed := newTestEditor(t, nil)
	m1 := ed.AddMask(MaskConfig{})
	m2 := ed.AddMask(MaskConfig{})

	if m2.Stroke != strokeHighlight || m1.Stroke != strokeNeutral {
		t.Error("only the active mask carries the highlight stroke")
	}
	ed.Scene().SetActive(m1)
	if m1.Stroke != strokeHighlight || m2.Stroke != strokeNeutral {
		t.Error("selection change must swap the highlight")
	}
}

func TestMaskEngineRebindAfterRestore(t *testing.T) {
	ed := newTestEditor(t, nil)
	ed.AddMask(MaskConfig{})
	ed.AddMask(MaskConfig{})

	data := ed.snapshotJSON()
	if err := ed.restoreSnapshot(data); err != nil {
		t.Fatal(err)
	}
	// The restored mask set drives the counter, so new ids never collide.
	m := ed.AddMask(MaskConfig{})
	if m.MaskID != 3 {
		t.Errorf("id after restore = %d, want 3", m.MaskID)
	}
}
