package easel

import (
	"fmt"
	"math"
	"os"
)

// ScaleImage animates the base image to the given uniform scale factor,
// clamped to [MinScale, MaxScale]. The operation is funneled through the
// animation queue, so overlapping calls run one at a time in submission
// order. Scaling anchors at the image's top-left corner.
//
// The returned channel receives the operation's result exactly once.
func (e *Editor) ScaleImage(factor float64) <-chan error {
	target := clamp(factor, e.opts.MinScale, e.opts.MaxScale)
	return e.queue.Enqueue(func() error {
		img := e.scene.ImageObject()
		if img == nil || e.disposed {
			return nil
		}
		e.runAnimation(func() {
			e.animate(img.ScaleX, target, func(v float64) {
				img.ScaleX = v
				img.ScaleY = v
			})
		})
		e.afterTransform(img)
		e.saveState()
		return nil
	})
}

// RotateImage animates the base image to the given absolute angle in
// degrees, pivoting around the image's visual center. The angle is applied
// as given: it is neither clamped nor normalized into [0, 360), so repeated
// relative rotations accumulate — frontends may rely on the signed,
// unbounded value for animation direction.
func (e *Editor) RotateImage(deg float64) <-chan error {
	return e.queue.Enqueue(func() error {
		img := e.scene.ImageObject()
		if img == nil || e.disposed {
			return nil
		}
		e.runAnimation(func() {
			e.animate(img.Angle, deg, func(v float64) {
				img.Angle = v
			})
		})
		e.afterTransform(img)
		e.saveState()
		return nil
	})
}

// ScaleUp scales the image up by the configured scale step.
func (e *Editor) ScaleUp() <-chan error {
	return e.ScaleImage(e.Scale() + e.opts.ScaleStep)
}

// ScaleDown scales the image down by the configured scale step.
func (e *Editor) ScaleDown() <-chan error {
	return e.ScaleImage(e.Scale() - e.opts.ScaleStep)
}

// RotateCW rotates the image clockwise by the configured rotation step.
func (e *Editor) RotateCW() <-chan error {
	return e.RotateImage(e.Rotation() + e.opts.RotateStep)
}

// RotateCCW rotates the image counter-clockwise by the configured rotation step.
func (e *Editor) RotateCCW() <-chan error {
	return e.RotateImage(e.Rotation() - e.opts.RotateStep)
}

// Reset animates the image back to scale 1 and angle 0 as two sequential
// animations inside one queued operation, then records a single history
// snapshot. Failures are logged, never propagated, and the animating flag is
// always cleared.
func (e *Editor) Reset() <-chan error {
	return e.queue.Enqueue(func() error {
		img := e.scene.ImageObject()
		if img == nil || e.disposed {
			return nil
		}
		e.runAnimation(func() {
			e.animate(img.ScaleX, 1, func(v float64) {
				img.ScaleX = v
				img.ScaleY = v
			})
			e.realign(img)
			e.animate(img.Angle, 0, func(v float64) {
				img.Angle = v
			})
		})
		e.afterTransform(img)
		e.saveState()
		return nil
	})
}

// runAnimation runs fn with the animating flag held. Panics out of the tween
// path are logged rather than propagated so a transform failure can never
// leave the editor stuck in a perpetual animating state.
func (e *Editor) runAnimation(fn func()) {
	e.animating.Store(true)
	defer func() {
		e.animating.Store(false)
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "[easel] transform animation failed: %v\n", r)
		}
	}()
	fn()
}

// IsAnimating reports whether an animated transform is currently in flight.
// Frontends use this to disable transform controls mid-animation.
func (e *Editor) IsAnimating() bool {
	return e.animating.Load()
}

// Scale returns the base image's current uniform scale factor, or 1 when no
// image is loaded.
func (e *Editor) Scale() float64 {
	if img := e.scene.ImageObject(); img != nil {
		return img.ScaleX
	}
	return 1
}

// Rotation returns the base image's accumulated rotation angle in degrees,
// or 0 when no image is loaded. The value is not wrapped into [0, 360).
func (e *Editor) Rotation() float64 {
	if img := e.scene.ImageObject(); img != nil {
		return img.Angle
	}
	return 0
}

// afterTransform runs the post-animation bookkeeping shared by every
// transform: realign the image to the canvas origin, refit the canvas, and
// resynchronize mask labels. Only the auto-expanding canvas policy moves the
// image; a fixed canvas keeps whatever placement the load chose.
func (e *Editor) afterTransform(img *Object) {
	if e.opts.ExpandCanvasToImage {
		e.realign(img)
		e.fitCanvasToContent()
	}
	e.masks.syncAllLabels()
}

// realign shifts the image so its bounding box starts at the canvas origin,
// ensuring growth or rotation never leaves negative-offset content.
func (e *Editor) realign(img *Object) {
	b := img.Bounds()
	img.Left -= b.X
	img.Top -= b.Y
}

// fitCanvasToContent resizes the canvas to cover the image and every mask.
func (e *Editor) fitCanvasToContent() {
	img := e.scene.ImageObject()
	if img == nil {
		return
	}
	r := img.Bounds()
	for _, mk := range e.scene.Masks() {
		r = r.Union(mk.Bounds())
	}
	e.scene.Width = int(math.Ceil(r.X + r.Width))
	e.scene.Height = int(math.Ceil(r.Y + r.Height))
	e.scene.Invalidate()
}

// ensureCanvasCovers grows the canvas (never shrinks it) so the given
// rectangle plus a margin is visible.
func (e *Editor) ensureCanvasCovers(r Rect) {
	const margin = 10
	w := int(math.Ceil(r.X + r.Width + margin))
	h := int(math.Ceil(r.Y + r.Height + margin))
	if w > e.scene.Width {
		e.scene.Width = w
	}
	if h > e.scene.Height {
		e.scene.Height = h
	}
}
