package easel

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ExportMode selects what ImageBase64 rasterizes.
type ExportMode uint8

const (
	// ModeDefault follows the editor's ExportNativeSize option.
	ModeDefault ExportMode = iota
	// ModeArea crops the rendered scene to the transformed image's bounding
	// box, with masks baked in as solid blocks.
	ModeArea
	// ModeNative returns the original image's untransformed pixels at native
	// resolution, independent of scale, rotation, and masks.
	ModeNative
)

// ExportOptions controls ImageBase64. Zero fields fall back to the editor's
// configured multiplier and quality.
type ExportOptions struct {
	Mode       ExportMode
	Multiplier float64
	Quality    float64
}

// ExportFileOptions controls ExportFile.
type ExportFileOptions struct {
	ExportOptions
	// Name of the produced file; empty derives one from the configured
	// download file name and the target format.
	Name string
	// Format is the target encoding: "jpg", "jpeg", "png", or "gif", with or
	// without an "image/" prefix. Unrecognized values fall back to jpeg.
	Format string
}

// File is a produced binary file: name, mime type, and encoded bytes.
type File struct {
	Name string
	MIME string
	Data []byte
}

// exportOverride remembers one mask's visual state across an export pass.
type exportOverride struct {
	obj        *Object
	stroke     float64
	selectable bool
}

// ImageBase64 produces the composited result as a base64 data URL, encoded
// as JPEG at the configured quality.
//
// In ModeNative the original image's pixels are returned at their native
// resolution. In ModeArea (the usual default) the scene is rendered at the
// resolution multiplier with every mask forced to full opacity and zero
// stroke — masked regions become flat blocks, labels never appear — and the
// output is cropped to the transformed image's integer bounding box. Mask
// visual state is restored on every exit path, including crop failures.
func (e *Editor) ImageBase64(opts ExportOptions) (string, error) {
	img := e.scene.ImageObject()
	if img == nil {
		return "", fmt.Errorf("easel: export: no image loaded")
	}
	quality := opts.Quality
	if quality <= 0 || quality > 1 {
		quality = e.opts.ExportQuality
	}
	mode := opts.Mode
	if mode == ModeDefault {
		if e.opts.ExportNativeSize {
			mode = ModeNative
		} else {
			mode = ModeArea
		}
	}

	if mode == ModeNative {
		return encodeDataURL(img.Source, imaging.JPEG, quality)
	}

	mult := opts.Multiplier
	if mult <= 0 {
		mult = e.opts.ExportMultiplier
	}

	b := img.Bounds()
	crop := image.Rect(
		int(math.Floor(b.X*mult)),
		int(math.Floor(b.Y*mult)),
		int(math.Ceil((b.X+b.Width)*mult)),
		int(math.Ceil((b.Y+b.Height)*mult)),
	)

	overrides := e.overrideMasksForExport()
	var out *image.NRGBA
	var cropErr error
	func() {
		// Restore mask opacity/stroke/selectability no matter how the render
		// or crop exits.
		defer e.restoreMasksAfterExport(overrides)
		full := Render(e.scene, RenderOptions{Multiplier: mult})
		out, cropErr = cropImage(full, crop)
	}()
	if cropErr != nil {
		return "", fmt.Errorf("easel: export: %w", cropErr)
	}
	return encodeDataURL(out, imaging.JPEG, quality)
}

// overrideMasksForExport forces every mask to a flat, borderless block:
// full opacity, zero stroke, not selectable.
func (e *Editor) overrideMasksForExport() []exportOverride {
	var overrides []exportOverride
	for _, mk := range e.scene.Masks() {
		overrides = append(overrides, exportOverride{
			obj:        mk,
			stroke:     mk.StrokeWidth,
			selectable: mk.Selectable,
		})
		mk.OriginalAlpha = mk.Opacity
		mk.Opacity = 1
		mk.StrokeWidth = 0
		mk.Selectable = false
	}
	return overrides
}

// restoreMasksAfterExport undoes overrideMasksForExport.
func (e *Editor) restoreMasksAfterExport(overrides []exportOverride) {
	for _, ov := range overrides {
		if ov.obj.IsDisposed() {
			continue
		}
		ov.obj.Opacity = ov.obj.OriginalAlpha
		ov.obj.StrokeWidth = ov.stroke
		ov.obj.Selectable = ov.selectable
	}
	e.scene.Invalidate()
}

// cropImage copies the given rectangle out of src. The rectangle is clamped
// to the source bounds; an empty intersection is an error.
func cropImage(src *image.NRGBA, r image.Rectangle) (*image.NRGBA, error) {
	r = r.Intersect(src.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("crop region %v is outside the rendered scene", r)
	}
	out := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		srcRow := src.Pix[src.PixOffset(r.Min.X, r.Min.Y+y):src.PixOffset(r.Max.X, r.Min.Y+y)]
		copy(out.Pix[y*out.Stride:], srcRow)
	}
	return out, nil
}

// ExportFile produces the composited result as a binary file in the
// requested format. ModeDefault exports the scene area with masks baked in;
// ModeNative skips transforms and masks. When the target encoding is not the
// JPEG the base64 pipeline already produced, the pixels are re-encoded.
func (e *Editor) ExportFile(opts ExportFileOptions) (*File, error) {
	b64, err := e.ImageBase64(opts.ExportOptions)
	if err != nil {
		return nil, err
	}
	format := normalizeFormat(opts.Format)

	payload := b64[strings.Index(b64, ";base64,")+len(";base64,"):]
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("easel: export file: %w", err)
	}
	if format != imaging.JPEG {
		img, decErr := decodeDataURL(b64)
		if decErr != nil {
			return nil, fmt.Errorf("easel: export file: %w", decErr)
		}
		var buf bytes.Buffer
		if encErr := imaging.Encode(&buf, img, format); encErr != nil {
			return nil, fmt.Errorf("easel: export file: %w", encErr)
		}
		data = buf.Bytes()
	}

	name := opts.Name
	if name == "" {
		base := strings.TrimSuffix(e.opts.FileName, filepath.Ext(e.opts.FileName))
		name = base + "." + formatName(format)
	}
	return &File{Name: name, MIME: "image/" + formatName(format), Data: data}, nil
}

// Merge bakes the currently visible masks into the base image: the scene is
// exported in area mode, every mask is discarded, and the result is reloaded
// as the new base image. Mask regions become permanent pixels. One history
// snapshot is recorded, so a single Undo restores the masks and the prior
// image. No-op when there is no image or no masks.
func (e *Editor) Merge() error {
	img := e.scene.ImageObject()
	if img == nil || len(e.scene.Masks()) == 0 {
		return nil
	}
	b64, err := e.ImageBase64(ExportOptions{Mode: ModeArea})
	if err != nil {
		fmt.Fprintf(os.Stderr, "[easel] merge: %v\n", err)
		e.scene.Invalidate()
		return err
	}
	merged, err := decodeDataURL(b64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[easel] merge: %v\n", err)
		e.scene.Invalidate()
		return err
	}

	e.scene.SetActive(nil)
	for _, mk := range e.scene.Masks() {
		e.scene.Remove(mk)
	}
	e.scene.Remove(img)
	e.masks.reset() // merged pixels are a new image; mask ids restart
	e.placeImage(NewImageObject(merged, b64))
	e.saveState()
	return nil
}

// DownloadImage exports per the default area policy and saves the result
// under the download directory, using the configured file name when fileName
// is empty. Errors are logged, not returned — a failed save never breaks the
// editor.
func (e *Editor) DownloadImage(fileName string) {
	f, err := e.ExportFile(ExportFileOptions{Name: fileName})
	if err != nil {
		fmt.Fprintf(os.Stderr, "[easel] download: %v\n", err)
		return
	}
	path := filepath.Join(e.opts.DownloadDir, f.Name)
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "[easel] download: write %s: %v\n", path, err)
	}
}

// encodeDataURL encodes pixels into a base64 data URL in the given format.
// Quality applies to lossy formats only.
func encodeDataURL(img image.Image, format imaging.Format, quality float64) (string, error) {
	if img == nil {
		return "", fmt.Errorf("easel: encode: no pixels")
	}
	var buf bytes.Buffer
	var opts []imaging.EncodeOption
	if format == imaging.JPEG {
		opts = append(opts, imaging.JPEGQuality(int(quality*100+0.5)))
	}
	if err := imaging.Encode(&buf, img, format, opts...); err != nil {
		return "", fmt.Errorf("easel: encode %s: %w", formatName(format), err)
	}
	return "data:image/" + formatName(format) + ";base64," +
		base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// normalizeFormat maps a format alias — short name, with or without an
// "image/" prefix — to an encoder. Unrecognized types fall back to the lossy
// default.
func normalizeFormat(t string) imaging.Format {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(t)), "image/") {
	case "png":
		return imaging.PNG
	case "gif":
		return imaging.GIF
	case "jpg", "jpeg", "":
		return imaging.JPEG
	default:
		fmt.Fprintf(os.Stderr, "[easel] export: unrecognized format %q, using jpeg\n", t)
		return imaging.JPEG
	}
}

func formatName(f imaging.Format) string {
	switch f {
	case imaging.PNG:
		return "png"
	case imaging.GIF:
		return "gif"
	default:
		return "jpeg"
	}
}
