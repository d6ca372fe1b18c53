package easel

import "time"

// Options configures an Editor instance. Use DefaultOptions as a base and
// override individual fields; New fills zero numeric fields with defaults but
// takes boolean fields as given.
type Options struct {
	// Canvas
	CanvasWidth  int
	CanvasHeight int
	Background   Color

	// ExpandCanvasToImage grows the canvas to contain the transformed image
	// and newly placed masks. When false the loaded image is scaled down to
	// fit the fixed canvas instead.
	ExpandCanvasToImage bool

	// Animation
	AnimationDuration time.Duration
	TickInterval      time.Duration

	// Transform limits and step sizes for the convenience operations.
	MinScale   float64
	MaxScale   float64
	ScaleStep  float64
	RotateStep float64

	// Load-time downsampling of oversized input images.
	DownsampleOnLoad    bool
	DownsampleMaxWidth  int
	DownsampleMaxHeight int

	// Export
	ExportMultiplier float64 // resolution multiplier for scene exports
	ExportQuality    float64 // lossy encode quality in (0, 1]
	ExportNativeSize bool    // default to native-pixel export instead of the scene area

	// Masks
	MaskWidth         float64
	MaskHeight        float64
	MaskRotatable     bool
	ShowLabelOnSelect bool
	LabelOffset       float64
	MaskPrefix        string

	// ShowPlaceholder displays a hint label on the empty canvas until an
	// image is loaded.
	ShowPlaceholder bool

	// InitialImage is an optional data URL loaded at construction time.
	InitialImage string

	// Download
	DownloadDir string
	FileName    string

	// HistoryLimit caps the undo stack; oldest entries are evicted first.
	HistoryLimit int
}

// DefaultOptions returns the standard editor configuration.
func DefaultOptions() Options {
	return Options{
		CanvasWidth:         800,
		CanvasHeight:        600,
		Background:          canvasBackDefault,
		ExpandCanvasToImage: true,
		AnimationDuration:   300 * time.Millisecond,
		TickInterval:        16 * time.Millisecond,
		MinScale:            0.1,
		MaxScale:            5,
		ScaleStep:           0.25,
		RotateStep:          15,
		DownsampleMaxWidth:  2000,
		DownsampleMaxHeight: 2000,
		ExportMultiplier:    1,
		ExportQuality:       0.9,
		MaskWidth:           100,
		MaskHeight:          100,
		MaskRotatable:       true,
		ShowLabelOnSelect:   true,
		LabelOffset:         10,
		MaskPrefix:          "mask-",
		DownloadDir:         ".",
		FileName:            "easel-export.jpg",
		HistoryLimit:        50,
	}
}

// withDefaults fills zero-valued numeric fields so a partially populated
// Options struct still yields a working editor.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.CanvasWidth <= 0 {
		o.CanvasWidth = def.CanvasWidth
	}
	if o.CanvasHeight <= 0 {
		o.CanvasHeight = def.CanvasHeight
	}
	if o.Background == (Color{}) {
		o.Background = def.Background
	}
	if o.TickInterval <= 0 {
		o.TickInterval = def.TickInterval
	}
	if o.MinScale <= 0 {
		o.MinScale = def.MinScale
	}
	if o.MaxScale <= 0 {
		o.MaxScale = def.MaxScale
	}
	if o.ScaleStep <= 0 {
		o.ScaleStep = def.ScaleStep
	}
	if o.RotateStep == 0 {
		o.RotateStep = def.RotateStep
	}
	if o.DownsampleMaxWidth <= 0 {
		o.DownsampleMaxWidth = def.DownsampleMaxWidth
	}
	if o.DownsampleMaxHeight <= 0 {
		o.DownsampleMaxHeight = def.DownsampleMaxHeight
	}
	if o.ExportMultiplier <= 0 {
		o.ExportMultiplier = def.ExportMultiplier
	}
	if o.ExportQuality <= 0 || o.ExportQuality > 1 {
		o.ExportQuality = def.ExportQuality
	}
	if o.MaskWidth <= 0 {
		o.MaskWidth = def.MaskWidth
	}
	if o.MaskHeight <= 0 {
		o.MaskHeight = def.MaskHeight
	}
	if o.LabelOffset == 0 {
		o.LabelOffset = def.LabelOffset
	}
	if o.MaskPrefix == "" {
		o.MaskPrefix = def.MaskPrefix
	}
	if o.DownloadDir == "" {
		o.DownloadDir = def.DownloadDir
	}
	if o.FileName == "" {
		o.FileName = def.FileName
	}
	if o.HistoryLimit == 0 {
		o.HistoryLimit = def.HistoryLimit
	}
	return o
}
