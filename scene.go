package easel

// Scene owns the flat, z-ordered object list and the canvas geometry. Objects
// are kept in painter's order: the base image lowest, mask shapes above it,
// labels on top. Frontends mutate the scene through the notification methods
// below so that the mask engine can track moves, selection, and hover.
type Scene struct {
	// Canvas dimensions in scene units and the background fill.
	Width, Height int
	Background    Color

	objects []*Object
	active  *Object

	onMoving   []func(*Object)
	onScaling  []func(*Object)
	onRotating []func(*Object)
	onModified []func(*Object)
	onSelect   []func(*Object) // called with nil when the selection clears
	onEnter    []func(*Object)
	onLeave    []func(*Object)
	onRender   []func()
}

// NewScene creates an empty scene with the given canvas size.
func NewScene(width, height int, background Color) *Scene {
	return &Scene{Width: width, Height: height, Background: background}
}

// Add appends obj to the scene in painter's order: images below everything,
// labels above everything, shapes in between in insertion order.
func (s *Scene) Add(obj *Object) {
	switch obj.Kind {
	case KindImage:
		s.objects = append([]*Object{obj}, s.objects...)
	case KindLabel:
		s.objects = append(s.objects, obj)
	default:
		// Insert below the first label so labels stay on top.
		at := len(s.objects)
		for i, o := range s.objects {
			if o.Kind == KindLabel {
				at = i
				break
			}
		}
		s.objects = append(s.objects, nil)
		copy(s.objects[at+1:], s.objects[at:])
		s.objects[at] = obj
	}
	s.Invalidate()
}

// Remove detaches obj from the scene and disposes it. If obj was the active
// selection, the selection is cleared first. No-op if obj is not on the scene.
func (s *Scene) Remove(obj *Object) {
	// Clear the selection before splicing: selection handlers may remove
	// other objects (labels) and shift indices.
	if s.active == obj {
		s.SetActive(nil)
	}
	for i, o := range s.objects {
		if o == obj {
			copy(s.objects[i:], s.objects[i+1:])
			s.objects[len(s.objects)-1] = nil
			s.objects = s.objects[:len(s.objects)-1]
			obj.Dispose()
			s.Invalidate()
			return
		}
	}
}

// Clear removes and disposes every object and resets the selection.
func (s *Scene) Clear() {
	s.SetActive(nil)
	for len(s.objects) > 0 {
		s.Remove(s.objects[len(s.objects)-1])
	}
	s.Invalidate()
}

// Objects returns the object list in painter's order.
// The returned slice MUST NOT be mutated by the caller.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// ImageObject returns the scene's base image object, or nil if none is loaded.
func (s *Scene) ImageObject() *Object {
	for _, o := range s.objects {
		if o.Kind == KindImage && !o.disposed {
			return o
		}
	}
	return nil
}

// Masks returns all live mask objects in painter's order.
func (s *Scene) Masks() []*Object {
	var masks []*Object
	for _, o := range s.objects {
		if o.MaskID != 0 && !o.disposed {
			masks = append(masks, o)
		}
	}
	return masks
}

// FindMask returns the mask with the given id, or nil.
func (s *Scene) FindMask(id int) *Object {
	for _, o := range s.objects {
		if o.MaskID == id && !o.disposed {
			return o
		}
	}
	return nil
}

// --- Selection ---

// Active returns the currently selected object, or nil.
func (s *Scene) Active() *Object {
	return s.active
}

// SetActive changes the selection and fires the selection handlers.
// Passing nil clears the selection.
func (s *Scene) SetActive(obj *Object) {
	if s.active == obj {
		return
	}
	s.active = obj
	for _, fn := range s.onSelect {
		fn(obj)
	}
	s.Invalidate()
}

// --- Hit testing ---

// HitTest returns the topmost selectable object containing the scene-space
// point (x, y), or nil.
func (s *Scene) HitTest(x, y float64) *Object {
	for i := len(s.objects) - 1; i >= 0; i-- {
		o := s.objects[i]
		if o.disposed || !o.Visible || !o.Selectable {
			continue
		}
		if o.ContainsPoint(x, y) {
			return o
		}
	}
	return nil
}

// --- Mutation notifications ---
//
// Frontends (and the transform controller) call these after changing object
// geometry so handlers can keep labels and styling in sync.

// MoveObject repositions obj and fires the moving handlers.
func (s *Scene) MoveObject(obj *Object, left, top float64) {
	obj.Left = left
	obj.Top = top
	for _, fn := range s.onMoving {
		fn(obj)
	}
	s.Invalidate()
}

// ScaleObject rescales obj and fires the scaling handlers.
func (s *Scene) ScaleObject(obj *Object, sx, sy float64) {
	obj.ScaleX = sx
	obj.ScaleY = sy
	for _, fn := range s.onScaling {
		fn(obj)
	}
	s.Invalidate()
}

// RotateObject sets obj's angle (degrees, not normalized) and fires the
// rotating handlers. No-op on objects whose rotation is locked.
func (s *Scene) RotateObject(obj *Object, deg float64) {
	if !obj.Rotatable && obj.Kind != KindImage {
		return
	}
	obj.Angle = deg
	for _, fn := range s.onRotating {
		fn(obj)
	}
	s.Invalidate()
}

// NotifyModified signals that an interactive edit of obj finished
// (drag released, resize handle dropped).
func (s *Scene) NotifyModified(obj *Object) {
	for _, fn := range s.onModified {
		fn(obj)
	}
	s.Invalidate()
}

// PointerEnter signals that the pointer started hovering obj.
func (s *Scene) PointerEnter(obj *Object) {
	for _, fn := range s.onEnter {
		fn(obj)
	}
}

// PointerLeave signals that the pointer stopped hovering obj.
func (s *Scene) PointerLeave(obj *Object) {
	for _, fn := range s.onLeave {
		fn(obj)
	}
}

// Invalidate fires the render handlers. Frontends that redraw on demand
// subscribe via OnRender; per-frame frontends may ignore it.
func (s *Scene) Invalidate() {
	for _, fn := range s.onRender {
		fn()
	}
}

// --- Handler registration ---

// OnObjectMoving registers a callback fired whenever an object is moved.
func (s *Scene) OnObjectMoving(fn func(*Object)) { s.onMoving = append(s.onMoving, fn) }

// OnObjectScaling registers a callback fired whenever an object is rescaled.
func (s *Scene) OnObjectScaling(fn func(*Object)) { s.onScaling = append(s.onScaling, fn) }

// OnObjectRotating registers a callback fired whenever an object is rotated.
func (s *Scene) OnObjectRotating(fn func(*Object)) { s.onRotating = append(s.onRotating, fn) }

// OnObjectModified registers a callback fired when an interactive edit ends.
func (s *Scene) OnObjectModified(fn func(*Object)) { s.onModified = append(s.onModified, fn) }

// OnSelectionChanged registers a callback fired when the active object
// changes. The callback receives nil when the selection clears.
func (s *Scene) OnSelectionChanged(fn func(*Object)) { s.onSelect = append(s.onSelect, fn) }

// OnPointerEnter registers a callback fired when the pointer enters an object.
func (s *Scene) OnPointerEnter(fn func(*Object)) { s.onEnter = append(s.onEnter, fn) }

// OnPointerLeave registers a callback fired when the pointer leaves an object.
func (s *Scene) OnPointerLeave(fn func(*Object)) { s.onLeave = append(s.onLeave, fn) }

// OnRender registers a callback fired whenever the scene needs redrawing.
func (s *Scene) OnRender(fn func()) { s.onRender = append(s.onRender, fn) }
