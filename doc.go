// Package easel is a headless raster image editing engine.
//
// Easel loads a single base image onto a scene, animates scale and rotation
// transforms, overlays draggable mask shapes with text labels, merges masks
// into the pixels, and exports the composited result — without requiring a
// display. Rendering is pure software (golang.org/x/image), so the full
// pipeline runs in tests, servers, and CLI tools as well as behind an
// interactive frontend.
//
// # Quick start
//
//	ed := easel.New(easel.DefaultOptions())
//	if err := ed.LoadImage(dataURL); err != nil {
//		log.Fatal(err)
//	}
//	<-ed.ScaleImage(2)
//	ed.AddMask(easel.MaskConfig{Width: "25%", Height: 120.0})
//	b64, err := ed.ImageBase64(easel.ExportOptions{})
//
// # Scene and objects
//
// Every renderable element is an [Object]: the base image, each mask shape
// (rectangle, circle, ellipse, polygon, or custom), and the ephemeral text
// labels that follow selected masks. Objects live on a [Scene] in painter's
// order — the image below all masks, labels on top. Frontends drive the scene
// through its notification methods ([Scene.MoveObject], [Scene.SetActive],
// [Scene.PointerEnter], ...) and redraw from [Render].
//
// # Animation and history
//
// Scale and rotate operations are tweened (via [gween]) and serialized
// through an internal FIFO queue: at most one animated transform runs at a
// time, and operations always complete in submission order. Every mutating
// operation records a full-scene snapshot; [Editor.Undo] and [Editor.Redo]
// walk a capped linear history of those snapshots.
//
// The Editor is not safe for concurrent use. Call it from one goroutine and
// wait on the channels returned by animated operations before asserting on
// scene state.
//
// [gween]: https://github.com/tanema/gween
package easel
