package easel

import (
	"fmt"
	"os"
	"sync/atomic"
)

// Editor is the composition root: it owns the one scene, the base image, the
// animation queue, the undo history, and the mask engine, and exposes the
// whole editing surface.
//
// An Editor is not safe for concurrent use. Animated operations return a
// channel; receive from it before asserting on scene state.
type Editor struct {
	opts    Options
	scene   *Scene
	queue   *AnimationQueue
	history *History
	masks   *maskEngine

	// lastSnapshot is the serialized scene state as of the previous mutation;
	// each new history command closes over it as the undo target.
	lastSnapshot []byte

	animating   atomic.Bool
	placeholder *Object
	disposed    bool
}

// New creates an editor with the given options. When InitialImage is set it
// is loaded immediately; a failing initial load is logged and leaves the
// editor empty rather than failing construction.
func New(opts Options) *Editor {
	opts = opts.withDefaults()
	e := &Editor{
		opts:    opts,
		scene:   NewScene(opts.CanvasWidth, opts.CanvasHeight, opts.Background),
		queue:   NewAnimationQueue(),
		history: NewHistory(opts.HistoryLimit),
	}
	e.masks = newMaskEngine(e)
	e.masks.bind(e.scene)

	if opts.ShowPlaceholder {
		e.addPlaceholder()
	}
	e.lastSnapshot = e.snapshotJSON()

	if opts.InitialImage != "" {
		if err := e.LoadImage(opts.InitialImage); err != nil {
			fmt.Fprintf(os.Stderr, "[easel] initial image: %v\n", err)
		}
	}
	return e
}

// Scene returns the editor's scene for frontends to hit-test, drive, and
// render.
func (e *Editor) Scene() *Scene {
	return e.scene
}

// Options returns the editor's effective configuration.
func (e *Editor) Options() Options {
	return e.opts
}

// --- Masks ---

// AddMask creates a mask per cfg and returns it, or nil when the editor has
// no scene (disposed) or the config could not produce a shape.
func (e *Editor) AddMask(cfg MaskConfig) *Object {
	return e.masks.addMask(cfg)
}

// RemoveSelectedMask removes the active mask and its label.
// Returns false when no mask is selected.
func (e *Editor) RemoveSelectedMask() bool {
	return e.masks.removeSelected()
}

// RemoveAllMasks removes every mask and label. Returns false when there are
// no masks.
func (e *Editor) RemoveAllMasks() bool {
	return e.masks.removeAll()
}

// --- History ---

// snapshotJSON serializes the scene, logging (and swallowing) errors:
// serialization of an in-memory scene only fails on programming errors.
func (e *Editor) snapshotJSON() []byte {
	data, err := e.scene.Serialize()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[easel] snapshot: %v\n", err)
		return nil
	}
	return data
}

// restoreSnapshot rebuilds the scene from a snapshot and reconciles the mask
// engine with the restored object set.
func (e *Editor) restoreSnapshot(data []byte) error {
	if err := e.scene.Restore(data); err != nil {
		return err
	}
	e.masks.rebind()
	e.lastSnapshot = data
	return nil
}

// saveState records one history entry for the mutation that just happened:
// a command over the previous and current snapshots. The recording call
// finds the scene already in the target state, so the first Execute is a
// no-op; Redo re-applies the after snapshot.
func (e *Editor) saveState() {
	after := e.snapshotJSON()
	before := e.lastSnapshot
	e.lastSnapshot = after

	recorded := false
	cmd := &Command{
		Execute: func() error {
			if !recorded {
				recorded = true
				return nil
			}
			return e.restoreSnapshot(after)
		},
		Undo: func() error {
			return e.restoreSnapshot(before)
		},
	}
	if err := e.history.Execute(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "[easel] history: %v\n", err)
	}
}

// Undo reverts the most recent mutation by restoring its before-snapshot.
// No-op when there is nothing to undo. A failing scene restore propagates to
// the caller; there is no fallback snapshot.
func (e *Editor) Undo() error {
	return e.history.Undo()
}

// Redo re-applies the most recently undone mutation.
func (e *Editor) Redo() error {
	return e.history.Redo()
}

// CanUndo reports whether an Undo would do anything.
func (e *Editor) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo reports whether a Redo would do anything.
func (e *Editor) CanRedo() bool {
	return e.history.CanRedo()
}

// --- Lifecycle ---

// Dispose waits for in-flight animations, releases every scene object, and
// drops the history. The editor is inert afterwards: operations no-op.
func (e *Editor) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.queue.Wait()
	e.scene.Clear()
	e.history.Clear()
	e.masks.reset()
	e.lastSnapshot = nil
	e.placeholder = nil
}

// IsDisposed reports whether Dispose has been called.
func (e *Editor) IsDisposed() bool {
	return e.disposed
}
