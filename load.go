package easel

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const dataURLPrefix = "data:image/"

// ErrNotDataURL is returned when an input string is not an embedded image
// payload. There is no external URL fetch path.
var ErrNotDataURL = fmt.Errorf("easel: input is not a data:image URL")

// decodeDataURL decodes an embedded base64 image payload into pixels.
func decodeDataURL(src string) (image.Image, error) {
	if !strings.HasPrefix(src, dataURLPrefix) {
		return nil, ErrNotDataURL
	}
	i := strings.Index(src, ";base64,")
	if i < 0 {
		return nil, ErrNotDataURL
	}
	raw, err := base64.StdEncoding.DecodeString(src[i+len(";base64,"):])
	if err != nil {
		return nil, fmt.Errorf("easel: decode base64 payload: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("easel: decode image payload: %w", err)
	}
	return img, nil
}

// LoadImage replaces the editor's base image with the raster embedded in the
// given data URL. All masks, labels, and the undo history are discarded; mask
// ids restart from 1 for the new image's lifetime.
//
// Oversized inputs are downsampled at load time when the downsampling policy
// is enabled. Decode failures are logged and returned.
func (e *Editor) LoadImage(src string) error {
	if e.disposed {
		return nil
	}
	img, err := decodeDataURL(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[easel] load image: %v\n", err)
		return err
	}

	if e.opts.DownsampleOnLoad {
		b := img.Bounds()
		if b.Dx() > e.opts.DownsampleMaxWidth || b.Dy() > e.opts.DownsampleMaxHeight {
			img = imaging.Fit(img, e.opts.DownsampleMaxWidth, e.opts.DownsampleMaxHeight, imaging.Lanczos)
			// Re-embed so snapshots restore the downsampled pixels, not the
			// original oversized payload.
			src, err = encodeDataURL(img, imaging.PNG, 1)
			if err != nil {
				fmt.Fprintf(os.Stderr, "[easel] load image: %v\n", err)
				return err
			}
		}
	}

	e.scene.Clear()
	e.placeholder = nil
	e.masks.reset()
	e.placeImage(NewImageObject(img, src))

	e.history.Clear()
	e.lastSnapshot = e.snapshotJSON()
	e.scene.Invalidate()
	return nil
}

// placeImage adds the image object to the scene under the configured canvas
// policy: either the canvas expands to the image's size, or the image is
// scaled down to fit (and centered on) the fixed canvas.
func (e *Editor) placeImage(obj *Object) {
	if e.opts.ExpandCanvasToImage {
		e.scene.Width = int(obj.Width)
		e.scene.Height = int(obj.Height)
	} else {
		cw := float64(e.scene.Width)
		ch := float64(e.scene.Height)
		s := min(cw/obj.Width, ch/obj.Height, 1)
		obj.ScaleX = s
		obj.ScaleY = s
		obj.Left = (cw - obj.Width*s) / 2
		obj.Top = (ch - obj.Height*s) / 2
	}
	e.scene.Add(obj)
}

// HasImage reports whether a base image is currently loaded.
func (e *Editor) HasImage() bool {
	return e.scene.ImageObject() != nil
}

// addPlaceholder shows the empty-canvas hint label.
func (e *Editor) addPlaceholder() {
	label := NewLabel("Drop an image here")
	label.Fill = Color{}
	label.Stroke = strokeNeutral
	label.Left = float64(e.scene.Width)/2 - label.Width/2
	label.Top = float64(e.scene.Height)/2 - label.Height/2
	e.scene.Add(label)
	e.placeholder = label
}
