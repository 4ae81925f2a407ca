package heightfield

import (
	"errors"
	"slices"
	"testing"
)

// rampGrid returns a grid whose samples increase with x and y plus an offset.
func rampGrid(size int, offset float64) *Grid {
	g := NewGrid(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			g.Set(x, y, offset+float64(x+y))
		}
	}
	return g
}

func testGrids(size int) [2][2]*Grid {
	return [2][2]*Grid{
		{rampGrid(size, 0), rampGrid(size, 10)},
		{rampGrid(size, 20), rampGrid(size, 30)},
	}
}

func TestBuildProducesFourTiles(t *testing.T) {
	for _, size := range []int{4, 16, 256} {
		res, err := NewBuilder(size).Build(testGrids(size))
		if err != nil {
			t.Fatalf("size %d: Build failed: %v", size, err)
		}
		if res.Combined.Size != 2*size+1 {
			t.Errorf("size %d: combined size = %d, want %d", size, res.Combined.Size, 2*size+1)
		}
		for _, q := range Quadrants {
			tile := res.Tiles.Get(q)
			if tile == nil {
				t.Fatalf("size %d: missing %s tile", size, q)
			}
			if tile.Size != size+1 || len(tile.Pix) != (size+1)*(size+1) {
				t.Errorf("size %d: %s tile is %d, want %d", size, q, tile.Size, size+1)
			}
		}
	}
}

func TestBuildRejectsMalformedGrid(t *testing.T) {
	tests := []struct {
		name  string
		grids func() [2][2]*Grid
	}{
		{"wrong size", func() [2][2]*Grid {
			g := testGrids(8)
			g[1][0] = rampGrid(7, 0)
			return g
		}},
		{"nil grid", func() [2][2]*Grid {
			g := testGrids(8)
			g[0][1] = nil
			return g
		}},
		{"short values", func() [2][2]*Grid {
			g := testGrids(8)
			g[1][1].Values = g[1][1].Values[:10]
			return g
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewBuilder(8).Build(tt.grids())
			if !errors.Is(err, ErrInvalidTileSize) {
				t.Errorf("expected ErrInvalidTileSize, got %v", err)
			}
			if res != nil {
				t.Error("expected no result on error")
			}
		})
	}
}

func TestTilesShareBorders(t *testing.T) {
	const size = 16
	res, err := NewBuilder(size).Build(testGrids(size))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	tl := res.Tiles.Get(TopLeft)
	tr := res.Tiles.Get(TopRight)
	bl := res.Tiles.Get(BottomLeft)
	br := res.Tiles.Get(BottomRight)

	if !slices.Equal(tl.Column(size), tr.Column(0)) {
		t.Error("top-left last column should equal top-right first column")
	}
	if !slices.Equal(bl.Column(size), br.Column(0)) {
		t.Error("bottom-left last column should equal bottom-right first column")
	}
	if !slices.Equal(tl.Row(size), bl.Row(0)) {
		t.Error("top-left last row should equal bottom-left first row")
	}
	if !slices.Equal(tr.Row(size), br.Row(0)) {
		t.Error("top-right last row should equal bottom-right first row")
	}
}

func TestNormalizeRange(t *testing.T) {
	res, err := NewBuilder(256).Build(testGrids(256))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	lo, hi := slices.Min(res.Combined.Pix), slices.Max(res.Combined.Pix)
	if lo != 0 {
		t.Errorf("min = %d, want 0", lo)
	}
	if hi != 65535 {
		t.Errorf("max = %d, want 65535", hi)
	}
}

func TestNormalizePreservesOrder(t *testing.T) {
	const size = 8
	res, err := NewBuilder(size).Build(testGrids(size))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	tl := res.Tiles.Get(TopLeft)
	for x := 1; x < size; x++ {
		if tl.At(x, 0) <= tl.At(x-1, 0) {
			t.Fatalf("row 0 not increasing at %d: %d <= %d", x, tl.At(x, 0), tl.At(x-1, 0))
		}
	}
}

func TestFlatFieldIsZero(t *testing.T) {
	const size = 4
	flat := NewGrid(size)
	for i := range flat.Values {
		flat.Values[i] = 42
	}
	res, err := NewBuilder(size).Build([2][2]*Grid{{flat, flat}, {flat, flat}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if slices.Max(res.Combined.Pix) != 0 {
		t.Error("a flat field should normalize to zero")
	}
}

func TestEnlargeDuplicatesEdges(t *testing.T) {
	const size = 4
	res, err := NewBuilder(size).Build(testGrids(size))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	c := res.Combined
	w := 2 * size
	if !slices.Equal(c.Row(w), c.Row(w-1)) {
		t.Error("last row should duplicate the row above it")
	}
	if !slices.Equal(c.Column(w), c.Column(w-1)) {
		t.Error("last column should duplicate the column left of it")
	}
}

func TestMirror(t *testing.T) {
	g := rampGrid(4, 0)
	m := Mirror(g)
	if m[0][1].At(0, 0) != g.At(3, 0) {
		t.Error("top-right should mirror the original horizontally")
	}
	if m[1][0].At(0, 0) != g.At(0, 3) {
		t.Error("bottom-left should mirror the original vertically")
	}
	if m[1][1].At(0, 0) != g.At(3, 3) {
		t.Error("bottom-right should mirror both ways")
	}
	if _, err := NewBuilder(4).Build(m); err != nil {
		t.Errorf("mirrored grids should build: %v", err)
	}
}

func TestQuadrantAt(t *testing.T) {
	tests := []struct {
		x, y float32
		want Quadrant
	}{
		{10, 10, TopRight},
		{-10, 10, TopLeft},
		{-10, -10, BottomLeft},
		{10, -10, BottomRight},
		{0, 0, TopRight},
	}
	for _, tt := range tests {
		if got := QuadrantAt(tt.x, tt.y); got != tt.want {
			t.Errorf("QuadrantAt(%v, %v) = %s, want %s", tt.x, tt.y, got, tt.want)
		}
		sx, sy := tt.want.Sign()
		if (sx > 0) != (tt.x >= 0) || (sy > 0) != (tt.y >= 0) {
			t.Errorf("%s.Sign() = (%d, %d) inconsistent with (%v, %v)", tt.want, sx, sy, tt.x, tt.y)
		}
	}
}
