package easel

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSerializeRestoreRoundTrip(t *testing.T) {
	src := testDataURL(t, 8, 6, testRed)
	img, err := decodeDataURL(src)
	if err != nil {
		t.Fatal(err)
	}

	s := NewScene(120, 90, canvasBackDefault)
	s.Add(NewImageObject(img, src))

	mask := NewRect(40, 30)
	mask.Left = 15
	mask.Top = 25
	mask.Angle = 390 // persisted as-is, never normalized
	mask.Opacity = 0.6
	mask.MaskID = 3
	mask.MaskName = "mask-3"
	mask.Name = "mask-3"
	s.Add(mask)
	s.Add(NewLabel("mask-3"))

	data, err := s.Serialize()
	if err != nil {
		t.Fatal(err)
	}

	restored := NewScene(1, 1, Color{})
	if err := restored.Restore(data); err != nil {
		t.Fatal(err)
	}

	if restored.Width != 120 || restored.Height != 90 {
		t.Errorf("canvas = %dx%d, want 120x90", restored.Width, restored.Height)
	}
	if len(restored.Objects()) != 2 {
		t.Fatalf("restored %d objects, want 2 (labels are not persisted)", len(restored.Objects()))
	}

	ri := restored.ImageObject()
	if ri == nil {
		t.Fatal("image not restored")
	}
	if ri.Width != 8 || ri.Height != 6 || ri.Source == nil {
		t.Errorf("restored image = %fx%f, source %v", ri.Width, ri.Height, ri.Source != nil)
	}

	rm := restored.FindMask(3)
	if rm == nil {
		t.Fatal("mask id not restored")
	}
	if rm.MaskName != "mask-3" {
		t.Errorf("mask name = %q, want %q", rm.MaskName, "mask-3")
	}
	if rm.Left != 15 || rm.Top != 25 || rm.Angle != 390 || rm.Opacity != 0.6 {
		t.Errorf("mask geometry lost: %+v", rm)
	}
	if rm.OriginalAlpha != 0.6 {
		t.Errorf("OriginalAlpha = %f, want the persisted opacity", rm.OriginalAlpha)
	}
}

func TestSerializeUsesCustomMaskFields(t *testing.T) {
	s := NewScene(100, 100, canvasBackDefault)
	mask := NewCircle(10)
	mask.MaskID = 7
	mask.MaskName = "mask-7"
	s.Add(mask)

	data, err := s.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	var raw struct {
		Objects []map[string]json.RawMessage `json:"objects"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if len(raw.Objects) != 1 {
		t.Fatalf("objects = %d, want 1", len(raw.Objects))
	}
	if _, ok := raw.Objects[0]["maskId"]; !ok {
		t.Error("snapshot must carry the maskId field")
	}
	if _, ok := raw.Objects[0]["maskName"]; !ok {
		t.Error("snapshot must carry the maskName field")
	}
}

func TestRestoreMalformedJSON(t *testing.T) {
	s := NewScene(100, 100, canvasBackDefault)
	s.Add(NewRect(10, 10))

	if err := s.Restore([]byte("{not json")); err == nil {
		t.Fatal("expected a decode error")
	}
	// A failed restore leaves the scene untouched.
	if len(s.Objects()) != 1 {
		t.Error("failed restore must not modify the scene")
	}
}

func TestRestoreUnknownObjectType(t *testing.T) {
	s := NewScene(100, 100, canvasBackDefault)
	data := []byte(`{"width":10,"height":10,"objects":[{"type":"star"}]}`)
	err := s.Restore(data)
	if err == nil || !strings.Contains(err.Error(), "star") {
		t.Fatalf("err = %v, want unknown type error naming the type", err)
	}
}

func TestRestoreUndecodableImage(t *testing.T) {
	s := NewScene(100, 100, canvasBackDefault)
	data := []byte(`{"width":10,"height":10,"objects":[{"type":"image","src":"data:image/png;base64,AAAA"}]}`)
	if err := s.Restore(data); err == nil {
		t.Fatal("expected an image decode error")
	}
}

func TestRestoreClearsSelection(t *testing.T) {
	s := NewScene(100, 100, canvasBackDefault)
	rect := NewRect(10, 10)
	s.Add(rect)
	s.SetActive(rect)

	data, err := s.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Restore(data); err != nil {
		t.Fatal(err)
	}
	if s.Active() != nil {
		t.Error("restore must clear the selection")
	}
}
