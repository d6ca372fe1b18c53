package easel

import (
	"encoding/json"
	"fmt"
)

// snapshotObject is the persisted form of one scene object. In addition to
// the standard geometry and style fields it carries the two custom mask
// fields, maskId and maskName, which survive every serialize/restore cycle.
type snapshotObject struct {
	Type        string  `json:"type"`
	Name        string  `json:"name,omitempty"`
	Left        float64 `json:"left"`
	Top         float64 `json:"top"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	ScaleX      float64 `json:"scaleX"`
	ScaleY      float64 `json:"scaleY"`
	Angle       float64 `json:"angle"`
	Radius      float64 `json:"radius,omitempty"`
	RX          float64 `json:"rx,omitempty"`
	RY          float64 `json:"ry,omitempty"`
	Points      []Vec2  `json:"points,omitempty"`
	Fill        Color   `json:"fill"`
	Stroke      Color   `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Opacity     float64 `json:"opacity"`
	Selectable  bool    `json:"selectable"`
	Rotatable   bool    `json:"rotatable"`
	MaskID      int     `json:"maskId,omitempty"`
	MaskName    string  `json:"maskName,omitempty"`
	Src         string  `json:"src,omitempty"`
}

// snapshot is the serialized form of a whole scene. It is the sole persisted
// state representation: restoring one fully reconstructs canvas size, the
// base image, scale/rotation, and the mask set with its ids.
type snapshot struct {
	Width      int              `json:"width"`
	Height     int              `json:"height"`
	Background Color            `json:"background"`
	Objects    []snapshotObject `json:"objects"`
}

var kindNames = map[ObjectKind]string{
	KindImage:   "image",
	KindRect:    "rect",
	KindCircle:  "circle",
	KindEllipse: "ellipse",
	KindPolygon: "polygon",
}

// Serialize encodes the scene to its JSON snapshot form. Ephemeral labels are
// excluded: they are recreated from selection state, never persisted.
func (s *Scene) Serialize() ([]byte, error) {
	snap := snapshot{Width: s.Width, Height: s.Height, Background: s.Background}
	for _, o := range s.objects {
		if o.disposed || o.Kind == KindLabel {
			continue
		}
		so := snapshotObject{
			Type:        kindNames[o.Kind],
			Name:        o.Name,
			Left:        o.Left,
			Top:         o.Top,
			Width:       o.Width,
			Height:      o.Height,
			ScaleX:      o.ScaleX,
			ScaleY:      o.ScaleY,
			Angle:       o.Angle,
			Radius:      o.Radius,
			RX:          o.RX,
			RY:          o.RY,
			Points:      o.Points,
			Fill:        o.Fill,
			Stroke:      o.Stroke,
			StrokeWidth: o.StrokeWidth,
			Opacity:     o.Opacity,
			Selectable:  o.Selectable,
			Rotatable:   o.Rotatable,
			MaskID:      o.MaskID,
			MaskName:    o.MaskName,
			Src:         o.SourceURL,
		}
		snap.Objects = append(snap.Objects, so)
	}
	return json.Marshal(snap)
}

// Restore replaces the scene contents with the objects described by data.
// The selection is cleared; labels are not restored (they follow selection).
// Errors from malformed JSON or undecodable image payloads are returned to
// the caller; the scene is only replaced after the whole snapshot decodes.
func (s *Scene) Restore(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}

	objects := make([]*Object, 0, len(snap.Objects))
	for _, so := range snap.Objects {
		o, err := objectFromSnapshot(so)
		if err != nil {
			return err
		}
		objects = append(objects, o)
	}

	s.SetActive(nil)
	for _, o := range s.objects {
		o.Dispose()
	}
	s.objects = s.objects[:0]
	s.Width = snap.Width
	s.Height = snap.Height
	s.Background = snap.Background
	for _, o := range objects {
		s.Add(o)
	}
	return nil
}

func objectFromSnapshot(so snapshotObject) (*Object, error) {
	var o *Object
	switch so.Type {
	case "image":
		src, err := decodeDataURL(so.Src)
		if err != nil {
			return nil, fmt.Errorf("restore snapshot: image: %w", err)
		}
		o = NewImageObject(src, so.Src)
	case "circle":
		o = NewCircle(so.Radius)
	case "ellipse":
		o = NewEllipse(so.RX, so.RY)
	case "polygon":
		o = NewPolygon(so.Points)
	case "rect":
		o = NewRect(so.Width, so.Height)
	default:
		return nil, fmt.Errorf("restore snapshot: unknown object type %q", so.Type)
	}
	o.Name = so.Name
	o.Left = so.Left
	o.Top = so.Top
	o.ScaleX = so.ScaleX
	o.ScaleY = so.ScaleY
	o.Angle = so.Angle
	o.Fill = so.Fill
	o.Stroke = so.Stroke
	o.StrokeWidth = so.StrokeWidth
	o.Opacity = so.Opacity
	o.OriginalAlpha = so.Opacity
	o.Selectable = so.Selectable
	o.Rotatable = so.Rotatable
	o.MaskID = so.MaskID
	o.MaskName = so.MaskName
	return o, nil
}
