package heightfield

import (
	"fmt"
	"math"
)

// DefaultTileSize is the edge length of one source elevation grid.
const DefaultTileSize = 256

// Result is the output of one build: the enlarged combined heightfield and the
// four quadrant tiles cropped from it.
type Result struct {
	Combined *Image
	Tiles    Tiles
}

// Builder stitches four source grids into overlapping quadrant tiles.
type Builder struct {
	Size int
}

// NewBuilder creates a builder for source grids of size x size samples.
func NewBuilder(size int) *Builder {
	if size <= 0 {
		size = DefaultTileSize
	}
	return &Builder{Size: size}
}

// Build validates the grids and produces the tiles. grids is indexed
// [row][col] with row 0 on the north edge. Any invalid grid aborts the build
// and nothing is returned.
func (b *Builder) Build(grids [2][2]*Grid) (*Result, error) {
	for row := range grids {
		for col, g := range grids[row] {
			if err := g.Validate(b.Size); err != nil {
				return nil, fmt.Errorf("grid [%d][%d]: %w", row, col, err)
			}
		}
	}

	field := b.concat(grids)
	pix := b.normalize(field)
	combined := b.enlarge(pix)

	return &Result{Combined: combined, Tiles: b.crop(combined)}, nil
}

// concat joins the top row, the bottom row, then both rows vertically.
func (b *Builder) concat(grids [2][2]*Grid) []float64 {
	s := b.Size
	w := 2 * s
	out := make([]float64, w*w)
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			g := grids[row][col]
			for y := 0; y < s; y++ {
				dst := (row*s+y)*w + col*s
				copy(out[dst:dst+s], g.Values[y*s:(y+1)*s])
			}
		}
	}
	return out
}

// normalize rescales the field linearly from [min, max] into [0, S*S-1].
// A flat field maps to zero.
func (b *Builder) normalize(field []float64) []uint16 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range field {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	top := float64(b.Size*b.Size - 1)
	if top > math.MaxUint16 {
		top = math.MaxUint16
	}

	out := make([]uint16, len(field))
	if hi <= lo {
		return out
	}
	scale := top / (hi - lo)
	for i, v := range field {
		out[i] = uint16(math.Round((v - lo) * scale))
	}
	return out
}

// enlarge duplicates the last row and then the last column.
func (b *Builder) enlarge(pix []uint16) *Image {
	w := 2 * b.Size
	img := NewImage(w + 1)
	for y := 0; y <= w; y++ {
		src := min(y, w-1)
		row := pix[src*w : (src+1)*w]
		copy(img.Pix[y*img.Size:y*img.Size+w], row)
		img.Pix[y*img.Size+w] = row[w-1]
	}
	return img
}

// crop cuts four (S+1)x(S+1) tiles anchored at index S so that neighbours
// share one row or column.
func (b *Builder) crop(img *Image) Tiles {
	s := b.Size
	var t Tiles
	t.Set(TopLeft, img.Crop(0, 0, s+1))
	t.Set(TopRight, img.Crop(s, 0, s+1))
	t.Set(BottomLeft, img.Crop(0, s, s+1))
	t.Set(BottomRight, img.Crop(s, s, s+1))
	return t
}
