package easel

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	// maskInset is the default placement offset from the canvas origin.
	maskInset = 20.0
	// maskGap separates cascading masks placed right of the previous one.
	maskGap = 10.0
	// maskOpacityDefault is the overlay opacity masks are created with.
	maskOpacityDefault = 0.6
)

// Value is a numeric mask option: a literal number (float64 or int), a
// percentage string such as "25%" resolved against the current canvas width,
// or a ValueFunc receiving the scene and the mask options.
type Value any

// ValueFunc resolves a numeric mask option dynamically.
type ValueFunc func(*Scene, MaskConfig) float64

// MaskConfig describes a mask to create. The zero value produces a
// default-sized rectangle placed by the cascading layout.
type MaskConfig struct {
	Shape MaskShape

	// Placement and size. See Value for the accepted forms. When Left and
	// Top are both nil, the mask cascades to the right of the previously
	// created mask, or falls back to a fixed inset from the canvas origin.
	Left, Top     Value
	Width, Height Value
	Radius        Value
	RX, RY        Value
	Points        []Vec2 // polygon outline (ShapePolygon)

	Fill    *Color  // nil → default mask fill
	Opacity float64 // 0 → default mask opacity

	// Locked makes the mask non-selectable. LockRotation pins its angle even
	// when the editor-wide mask rotation policy allows rotating.
	Locked       bool
	LockRotation bool

	// Generate, when set, builds the shape object itself; the engine still
	// assigns placement, id, name, styling, and selection.
	Generate func(*Scene, MaskConfig) *Object
}

// maskEngine owns mask creation, placement, styling, and label lifecycle.
// Labels are tracked in a side table keyed by mask id rather than as object
// back-references; a label entry lives exactly as long as its mask stays the
// active selection.
type maskEngine struct {
	ed      *Editor
	counter int
	last    *Object // previous mask, for the cascading layout
	labels  map[int]*Object
	hover   map[int]hoverStyle
}

// hoverStyle remembers the stroke and opacity to restore on pointer leave.
type hoverStyle struct {
	stroke  Color
	opacity float64
}

func newMaskEngine(ed *Editor) *maskEngine {
	return &maskEngine{
		ed:     ed,
		labels: make(map[int]*Object),
		hover:  make(map[int]hoverStyle),
	}
}

// bind registers the engine's handlers on the scene: label tracking during
// drag/resize/rotate, selection-driven styling, and hover styling.
func (m *maskEngine) bind(s *Scene) {
	track := func(obj *Object) {
		if obj != nil && obj.MaskID != 0 {
			m.syncLabel(obj)
		}
	}
	s.OnObjectMoving(track)
	s.OnObjectScaling(track)
	s.OnObjectRotating(track)
	s.OnObjectModified(track)
	s.OnSelectionChanged(m.onSelectionChanged)
	s.OnPointerEnter(m.onPointerEnter)
	s.OnPointerLeave(m.onPointerLeave)
}

// addMask creates a mask per cfg, places it, assigns the next id and derived
// name, makes it the active selection, and records a history snapshot.
// Returns nil when no scene is attached or a generator produced nothing.
func (m *maskEngine) addMask(cfg MaskConfig) *Object {
	s := m.ed.scene
	if s == nil || m.ed.disposed {
		return nil
	}

	obj := m.buildShape(s, cfg)
	if obj == nil {
		return nil
	}

	left, hasLeft := resolveOptional(cfg.Left, s, cfg)
	top, hasTop := resolveOptional(cfg.Top, s, cfg)
	if !hasLeft && !hasTop && m.last != nil && !m.last.IsDisposed() {
		// Cascade: immediately right of the previous mask's bounding box.
		pb := m.last.Bounds()
		left = pb.X + pb.Width + maskGap
		top = pb.Y
	} else {
		if !hasLeft {
			left = maskInset
		}
		if !hasTop {
			top = maskInset
		}
	}
	obj.Left = left
	obj.Top = top

	if cfg.Fill != nil {
		obj.Fill = *cfg.Fill
	}
	if cfg.Opacity > 0 {
		obj.Opacity = clamp(cfg.Opacity, 0, 1)
	} else {
		obj.Opacity = maskOpacityDefault
	}
	obj.OriginalAlpha = obj.Opacity
	obj.Selectable = !cfg.Locked
	obj.Rotatable = m.ed.opts.MaskRotatable && !cfg.LockRotation

	m.counter++
	obj.MaskID = m.counter
	obj.MaskName = m.ed.opts.MaskPrefix + strconv.Itoa(m.counter)
	obj.Name = obj.MaskName

	s.Add(obj)
	if m.ed.opts.ExpandCanvasToImage {
		m.ed.ensureCanvasCovers(obj.Bounds())
	}
	m.last = obj
	s.SetActive(obj) // selection handler applies highlight and creates the label
	m.syncAllLabels()
	m.ed.saveState()
	return obj
}

// buildShape resolves the shape type and sizes from cfg.
func (m *maskEngine) buildShape(s *Scene, cfg MaskConfig) *Object {
	if cfg.Generate != nil {
		return cfg.Generate(s, cfg)
	}
	opts := m.ed.opts
	switch cfg.Shape {
	case ShapeCircle:
		return NewCircle(resolveValue(cfg.Radius, s, cfg, opts.MaskWidth/2))
	case ShapeEllipse:
		return NewEllipse(
			resolveValue(cfg.RX, s, cfg, opts.MaskWidth/2),
			resolveValue(cfg.RY, s, cfg, opts.MaskHeight/2),
		)
	case ShapePolygon:
		if len(cfg.Points) < 3 {
			fmt.Fprintf(os.Stderr, "[easel] addMask: polygon needs at least 3 points\n")
			return nil
		}
		return NewPolygon(cfg.Points)
	default:
		return NewRect(
			resolveValue(cfg.Width, s, cfg, opts.MaskWidth),
			resolveValue(cfg.Height, s, cfg, opts.MaskHeight),
		)
	}
}

// removeSelected removes the active mask and its label. Returns false when
// nothing (or a non-mask) is selected.
func (m *maskEngine) removeSelected() bool {
	s := m.ed.scene
	active := s.Active()
	if active == nil || active.MaskID == 0 {
		return false
	}
	id := active.MaskID
	s.Remove(active) // clears the selection first, which destroys the label
	delete(m.hover, id)
	if m.last == active {
		m.last = m.highestMask()
	}
	m.ed.saveState()
	return true
}

// removeAll removes every mask and label and clears the cascade memory, so
// the next mask lands at the default inset. Returns false when there are no
// masks.
func (m *maskEngine) removeAll() bool {
	s := m.ed.scene
	masks := s.Masks()
	if len(masks) == 0 {
		return false
	}
	s.SetActive(nil)
	for _, mk := range masks {
		s.Remove(mk)
	}
	for id, label := range m.labels {
		s.Remove(label)
		delete(m.labels, id)
	}
	m.hover = make(map[int]hoverStyle)
	m.last = nil
	m.ed.saveState()
	return true
}

// reset clears all per-image mask state. Called when a new image is loaded:
// ids restart from 1 for the lifetime of the new image.
func (m *maskEngine) reset() {
	m.counter = 0
	m.last = nil
	m.labels = make(map[int]*Object)
	m.hover = make(map[int]hoverStyle)
}

// rebind reconciles engine state with the scene after a snapshot restore:
// the restored mask set defines the id counter and cascade memory, and all
// label/hover entries are dropped (the restore cleared the selection).
func (m *maskEngine) rebind() {
	m.reset()
	for _, mk := range m.ed.scene.Masks() {
		if mk.MaskID > m.counter {
			m.counter = mk.MaskID
			m.last = mk
		}
	}
}

func (m *maskEngine) highestMask() *Object {
	var best *Object
	for _, mk := range m.ed.scene.Masks() {
		if best == nil || mk.MaskID > best.MaskID {
			best = mk
		}
	}
	return best
}

// --- Selection-driven styling and label lifecycle ---

func (m *maskEngine) onSelectionChanged(active *Object) {
	for _, mk := range m.ed.scene.Masks() {
		if mk == active {
			mk.Stroke = strokeHighlight
		} else {
			mk.Stroke = strokeNeutral
		}
	}

	// Destroy labels whose mask is no longer the active selection. A label
	// belongs exclusively to its mask and never outlives the selection.
	for id, label := range m.labels {
		if active == nil || active.MaskID != id {
			m.ed.scene.Remove(label)
			delete(m.labels, id)
		}
	}

	if active != nil && active.MaskID != 0 && m.ed.opts.ShowLabelOnSelect {
		if _, ok := m.labels[active.MaskID]; !ok {
			label := NewLabel(active.MaskName)
			m.ed.scene.Add(label)
			m.labels[active.MaskID] = label
		}
		m.syncLabel(active)
	}
}

// syncLabel positions a mask's label along the vector from the mask's
// top-left corner away from its center, offset by the configured distance,
// at the mask's current angle — so the label tracks the mask continuously
// through drags, resizes, and rotations.
func (m *maskEngine) syncLabel(mask *Object) {
	label := m.labels[mask.MaskID]
	if label == nil || label.IsDisposed() {
		return
	}
	t := mask.Transform()
	tlx, tly := transformPoint(t, 0, 0)
	c := mask.Center()
	dx := tlx - c.X
	dy := tly - c.Y
	if dist := math.Hypot(dx, dy); dist > 0 {
		dx /= dist
		dy /= dist
	}
	offset := m.ed.opts.LabelOffset
	label.Left = tlx + dx*offset - label.Width
	label.Top = tly + dy*offset - label.Height
	label.Angle = mask.Angle
}

// syncAllLabels repositions every live label.
func (m *maskEngine) syncAllLabels() {
	for id := range m.labels {
		if mk := m.ed.scene.FindMask(id); mk != nil {
			m.syncLabel(mk)
		}
	}
	m.ed.scene.Invalidate()
}

// --- Hover styling ---

func (m *maskEngine) onPointerEnter(obj *Object) {
	if obj == nil || obj.MaskID == 0 || obj.IsDisposed() {
		return
	}
	if _, ok := m.hover[obj.MaskID]; ok {
		return
	}
	m.hover[obj.MaskID] = hoverStyle{stroke: obj.Stroke, opacity: obj.Opacity}
	obj.Stroke = strokeHover
	obj.Opacity = clamp(obj.Opacity+0.2, 0, 1)
	m.ed.scene.Invalidate()
}

func (m *maskEngine) onPointerLeave(obj *Object) {
	if obj == nil || obj.MaskID == 0 {
		return
	}
	saved, ok := m.hover[obj.MaskID]
	if !ok {
		return
	}
	delete(m.hover, obj.MaskID)
	if obj.IsDisposed() {
		return
	}
	obj.Stroke = saved.stroke
	obj.Opacity = saved.opacity
	// Selection styling wins over the remembered stroke.
	if m.ed.scene.Active() == obj {
		obj.Stroke = strokeHighlight
	}
	m.ed.scene.Invalidate()
}

// --- Value resolution ---

// resolveValue resolves a Value to a concrete number, falling back to def
// for nil or unparseable inputs.
func resolveValue(v Value, s *Scene, cfg MaskConfig, def float64) float64 {
	r, ok := resolveOptional(v, s, cfg)
	if !ok {
		return def
	}
	return r
}

// resolveOptional resolves a Value and reports whether it was present.
func resolveOptional(v Value, s *Scene, cfg MaskConfig) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		pct, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(t), "%"), 64)
		if err != nil || !strings.HasSuffix(strings.TrimSpace(t), "%") {
			fmt.Fprintf(os.Stderr, "[easel] addMask: bad percentage value %q\n", t)
			return 0, false
		}
		return pct / 100 * float64(s.Width), true
	case ValueFunc:
		return t(s, cfg), true
	case func(*Scene, MaskConfig) float64:
		return t(s, cfg), true
	default:
		fmt.Fprintf(os.Stderr, "[easel] addMask: unsupported value type %T\n", v)
		return 0, false
	}
}
