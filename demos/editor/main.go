// Editor is an interactive frontend for the easel engine. It renders the
// engine's software raster through Ebitengine and feeds mouse input back into
// the scene: click to select a mask, drag to move it, hover to preview.
//
// Keys:
//
//	A / C / P   add a rect / circle / polygon mask
//	X / Delete  remove the selected mask, Shift+X removes all
//	W / Q       scale the image up / down
//	E / R       rotate the image clockwise / counter-clockwise
//	Z / Y       undo / redo
//	M           merge masks into the image
//	S           save the composited image to disk
//	Home        reset scale and rotation
package main

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/easel"
)

const (
	windowTitle = "Easel — Editor Demo"
	imageW      = 640
	imageH      = 400
)

type game struct {
	ed    *easel.Editor
	hover *easel.Object

	dragging       *easel.Object
	dragDX, dragDY float64
}

func main() {
	opts := easel.DefaultOptions()
	opts.InitialImage = sampleImage()
	ed := easel.New(opts)
	if !ed.HasImage() {
		log.Fatal("demo: sample image failed to load")
	}

	scene := ed.Scene()
	ebiten.SetWindowSize(scene.Width, scene.Height)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(&game{ed: ed}); err != nil {
		log.Fatal(err)
	}
}

func (g *game) Update() error {
	g.handleMouse()
	g.handleKeys()
	return nil
}

func (g *game) handleMouse() {
	scene := g.ed.Scene()
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	// Hover tracking drives the engine's enter/leave styling.
	hit := scene.HitTest(x, y)
	if hit != g.hover {
		if g.hover != nil {
			scene.PointerLeave(g.hover)
		}
		if hit != nil {
			scene.PointerEnter(hit)
		}
		g.hover = hit
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if hit != nil {
			scene.SetActive(hit)
			g.dragging = hit
			g.dragDX = x - hit.Left
			g.dragDY = y - hit.Top
		} else {
			scene.SetActive(nil)
		}
	}
	if g.dragging != nil {
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			scene.MoveObject(g.dragging, x-g.dragDX, y-g.dragDY)
		} else {
			scene.NotifyModified(g.dragging)
			g.dragging = nil
		}
	}
}

func (g *game) handleKeys() {
	if g.ed.IsAnimating() {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.ed.AddMask(easel.MaskConfig{})
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.ed.AddMask(easel.MaskConfig{Shape: easel.ShapeCircle})
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.ed.AddMask(easel.MaskConfig{
			Shape:  easel.ShapePolygon,
			Points: []easel.Vec2{{X: 0, Y: 80}, {X: 50, Y: 0}, {X: 100, Y: 80}},
		})
	case inpututil.IsKeyJustPressed(ebiten.KeyX), inpututil.IsKeyJustPressed(ebiten.KeyDelete):
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			g.ed.RemoveAllMasks()
		} else {
			g.ed.RemoveSelectedMask()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		g.ed.ScaleUp()
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		g.ed.ScaleDown()
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.ed.RotateCW()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.ed.RotateCCW()
	case inpututil.IsKeyJustPressed(ebiten.KeyZ):
		if err := g.ed.Undo(); err != nil {
			log.Printf("undo: %v", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyY):
		if err := g.ed.Redo(); err != nil {
			log.Printf("redo: %v", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		if err := g.ed.Merge(); err != nil {
			log.Printf("merge: %v", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.ed.DownloadImage("")
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.ed.Reset()
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	raster := easel.Render(g.ed.Scene(), easel.RenderOptions{IncludeLabels: true})
	frame := ebiten.NewImageFromImage(raster)
	screen.DrawImage(frame, nil)
	frame.Deallocate()
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scene := g.ed.Scene()
	return scene.Width, scene.Height
}

// sampleImage builds a gradient test card so the demo needs no asset files.
func sampleImage() string {
	img := image.NewNRGBA(image.Rect(0, 0, imageW, imageH))
	for y := 0; y < imageH; y++ {
		for x := 0; x < imageW; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / imageW),
				G: uint8(y * 255 / imageH),
				B: uint8((x + y) * 255 / (imageW + imageH)),
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
