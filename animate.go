package easel

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// animate tweens a value from `from` to `to` over the configured animation
// duration, calling apply on every tick and invalidating the scene so
// frontends can redraw. On completion the value is snapped to the exact
// target — easing accumulates float32 drift that must not leak into the
// stored transform.
//
// With a non-positive duration the value is applied immediately.
func (e *Editor) animate(from, to float64, apply func(float64)) {
	d := e.opts.AnimationDuration
	if d > 0 && from != to {
		tw := gween.New(float32(from), float32(to), float32(d.Seconds()), ease.OutQuad)
		dt := float32(e.opts.TickInterval.Seconds())
		ticker := time.NewTicker(e.opts.TickInterval)
		defer ticker.Stop()
		for {
			<-ticker.C
			v, finished := tw.Update(dt)
			apply(float64(v))
			e.scene.Invalidate()
			if finished {
				break
			}
		}
	}
	apply(to)
	e.scene.Invalidate()
}
