package world

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/avoid-balls/internal/engine/physics"
	"github.com/Faultbox/avoid-balls/pkg/heightfield"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

// buildTerrain builds a 2x2 terrain of the given grid size from a ramp.
func buildTerrain(t *testing.T, size int, rise float64) *heightfield.Result {
	t.Helper()
	var grids [2][2]*heightfield.Grid
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			g := heightfield.NewGrid(size)
			for y := 0; y < size; y++ {
				for x := 0; x < size; x++ {
					g.Set(x, y, rise*float64(col*size+x))
				}
			}
			grids[row][col] = g
		}
	}
	res, err := heightfield.NewBuilder(size).Build(grids)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return res
}

func newTestAssembly(t *testing.T) (*Assembly, *physics.Space) {
	t.Helper()
	space := physics.NewSpace()
	cfg := DefaultAssemblyConfig()
	cfg.LODLevels = 2
	a := NewAssembly(space, cfg, nil)
	if err := a.Replace("ramp", buildTerrain(t, 16, 1)); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	return a, space
}

func TestAssemblyTiles(t *testing.T) {
	a, space := newTestAssembly(t)
	if len(a.Tiles()) != 4 {
		t.Fatalf("got %d tiles", len(a.Tiles()))
	}
	if space.Count(physics.MaskTerrain) != 4 {
		t.Errorf("expected 4 terrain bodies, got %d", space.Count(physics.MaskTerrain))
	}
	lo, hi := a.Bounds()
	if lo != (math.Vec2{X: -16, Y: -16}) || hi != (math.Vec2{X: 16, Y: 16}) {
		t.Errorf("Bounds = %v..%v", lo, hi)
	}
}

func TestElevationSelectsTileBySign(t *testing.T) {
	a, _ := newTestAssembly(t)

	// The ramp rises west to east across the whole terrain.
	west := a.Elevation(-15, 3)
	middle := a.Elevation(0.5, -3)
	east := a.Elevation(15, 3)
	if !(west < middle && middle < east) {
		t.Errorf("elevations should rise eastward: %v %v %v", west, middle, east)
	}
	if west < -25.01 || east > 25.01 {
		t.Errorf("elevations out of range: %v..%v", west, east)
	}
	if a.Elevation(-1000, 0) != a.Elevation(-16, 0) {
		t.Error("points outside the terrain should clamp to the edge")
	}
}

func TestCheckPositionMatchesElevation(t *testing.T) {
	a, _ := newTestAssembly(t)
	for _, p := range []math.Vec2{{X: -10, Y: 7}, {X: 3.5, Y: 12}, {X: -2, Y: -9}, {X: 11, Y: -1}} {
		pos, ok := a.CheckPosition(p.X, p.Y, false)
		if !ok {
			t.Errorf("CheckPosition(%v) missed the terrain", p)
			continue
		}
		if want := a.Elevation(p.X, p.Y); gomath.Abs(float64(pos.Z-want)) > 0.01 {
			t.Errorf("CheckPosition(%v).Z = %v, Elevation = %v", p, pos.Z, want)
		}
	}
}

func TestCheckPositionSweepBlockedByNature(t *testing.T) {
	a, space := newTestAssembly(t)
	tree := physics.NewBody("tree", physics.Static, physics.MaskNature, physics.Capsule{Radius: 0.5, HalfHeight: 3}, math.Vec3{X: 5, Y: 5})
	space.Attach(tree)

	if _, ok := a.CheckPosition(6, 6, true); ok {
		t.Error("sweep next to a tree should be blocked")
	}
	if _, ok := a.CheckPosition(6, 6, false); !ok {
		t.Error("plain ray ignores nature")
	}
	if _, ok := a.CheckPosition(-8, -8, true); !ok {
		t.Error("open ground should be accepted")
	}
}

func TestReplaceSwapsBodies(t *testing.T) {
	a, space := newTestAssembly(t)
	old := a.Layout()

	if err := a.Replace("flat", buildTerrain(t, 16, 0)); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	for _, b := range old.Bodies {
		if space.Contains(b) {
			t.Errorf("old body %v still attached", b)
		}
	}
	if space.Count(physics.MaskTerrain) != 4 {
		t.Errorf("expected 4 terrain bodies, got %d", space.Count(physics.MaskTerrain))
	}
	if a.Layout().Name != "flat" {
		t.Errorf("layout name = %q", a.Layout().Name)
	}
	if z := a.Elevation(10, 10); z != -25 {
		t.Errorf("flat terrain elevation = %v, want -25", z)
	}
}

func TestReplaceRejectsIncompleteTiles(t *testing.T) {
	a, space := newTestAssembly(t)
	before := a.Layout()

	res := buildTerrain(t, 16, 1)
	res.Tiles.Set(heightfield.BottomLeft, nil)
	if err := a.Replace("broken", res); !errors.Is(err, ErrIncompleteTiles) {
		t.Errorf("expected ErrIncompleteTiles, got %v", err)
	}
	if a.Layout() != before {
		t.Error("failed Replace must keep the previous terrain")
	}
	for _, b := range before.Bodies {
		if !space.Contains(b) {
			t.Error("failed Replace must keep the previous bodies")
		}
	}
}

func TestReplaceRejectsTinyTiles(t *testing.T) {
	a, _ := newTestAssembly(t)
	before := a.Layout()

	var res heightfield.Result
	for _, q := range heightfield.Quadrants {
		res.Tiles.Set(q, heightfield.NewImage(1))
	}
	if err := a.Replace("tiny", &res); !errors.Is(err, heightfield.ErrInvalidTileSize) {
		t.Errorf("expected ErrInvalidTileSize, got %v", err)
	}
	if a.Layout() != before {
		t.Error("failed Replace must keep the previous terrain")
	}
	if _, ok := a.CheckPosition(4, 4, false); !ok {
		t.Error("previous terrain should still answer queries")
	}
}
