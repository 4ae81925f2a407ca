package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/avoid-balls/internal/engine/physics"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

func TestWireframeCoversBox(t *testing.T) {
	box := physics.AABB{Min: math.Vec3{X: -1, Y: -2, Z: -3}, Max: math.Vec3{X: 1, Y: 2, Z: 3}}
	v := Wireframe(box, 0)
	if len(v) != BBoxWireframeVertexCount*3 {
		t.Fatalf("len = %d, want %d", len(v), BBoxWireframeVertexCount*3)
	}
	for i := 0; i < len(v); i += 3 {
		if v[i] != -1 && v[i] != 1 || v[i+1] != -2 && v[i+1] != 2 || v[i+2] != -3 && v[i+2] != 3 {
			t.Errorf("vertex %d = %v is not a box corner", i/3, v[i:i+3])
		}
	}
}

func TestBodyWireframesSkipsHeightfields(t *testing.T) {
	bodies := []*physics.Body{
		physics.NewBody("tree", physics.Static, physics.MaskNature, physics.Sphere{Radius: 1}, math.Vec3{}),
		physics.NewBody("ground", physics.Static, physics.MaskTerrain, physics.Heightfield{}, math.Vec3{}),
	}
	if got := len(BodyWireframes(bodies, DefaultBBoxPadding)); got != BBoxWireframeVertexCount*3 {
		t.Errorf("len = %d, want one box", got)
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "shot")
	sc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	// Bottom row red, top row blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	name, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels failed: %v", err)
	}
	if want := filepath.Join(dir, "shot_2024-01-02_03-04-05_000.png"); name != want {
		t.Errorf("name = %s, want %s", name, want)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b == 0 {
		t.Error("image rows were not flipped")
	}

	if next := sc.GenerateFilename(); next == name {
		t.Error("second capture would overwrite the first")
	}
}

func TestCaptureSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "shot")
	if _, err := sc.CaptureFromPixels(make([]byte, 3), 1, 1); err == nil {
		t.Error("short pixel data should fail")
	}
}
