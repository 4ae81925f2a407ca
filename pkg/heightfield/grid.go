// Package heightfield turns raw elevation grids into the overlapping 16-bit
// heightfield tiles the terrain is built from.
//
// The pipeline is: validate four source grids, stitch them into one field,
// rescale linearly into [0, S*S-1], enlarge by one row and column, and crop
// four (S+1)x(S+1) quadrant tiles that share their border row/column.
package heightfield

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidTileSize is returned when an elevation grid does not have the
// expected dimensions.
var ErrInvalidTileSize = errors.New("invalid tile size")

// Grid is a square elevation grid stored row-major.
type Grid struct {
	Size   int
	Values []float64
}

// NewGrid returns a zeroed size x size grid.
func NewGrid(size int) *Grid {
	return &Grid{Size: size, Values: make([]float64, size*size)}
}

// At returns the sample at column x, row y.
func (g *Grid) At(x, y int) float64 {
	return g.Values[y*g.Size+x]
}

// Set stores a sample at column x, row y.
func (g *Grid) Set(x, y int, v float64) {
	g.Values[y*g.Size+x] = v
}

// Validate checks that the grid has the expected edge length.
func (g *Grid) Validate(size int) error {
	if g == nil {
		return fmt.Errorf("%w: missing grid", ErrInvalidTileSize)
	}
	if g.Size != size || len(g.Values) != size*size {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrInvalidTileSize, g.Size, len(g.Values)/max(g.Size, 1), size, size)
	}
	return nil
}

// FlipH returns a copy of the grid mirrored left to right.
func (g *Grid) FlipH() *Grid {
	out := NewGrid(g.Size)
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			out.Set(g.Size-1-x, y, g.At(x, y))
		}
	}
	return out
}

// FlipV returns a copy of the grid mirrored top to bottom.
func (g *Grid) FlipV() *Grid {
	out := NewGrid(g.Size)
	for y := 0; y < g.Size; y++ {
		copy(out.Values[(g.Size-1-y)*g.Size:(g.Size-y)*g.Size], g.Values[y*g.Size:(y+1)*g.Size])
	}
	return out
}

// ParseGrid reads a comma separated elevation grid. Cells that are not
// numbers (the "e" no-data marker of the elevation service, blanks) read as 0.
func ParseGrid(r io.Reader, size int) (*Grid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read grid: %w", err)
	}

	if len(records) != size {
		return nil, fmt.Errorf("%w: got %d rows, want %d", ErrInvalidTileSize, len(records), size)
	}

	g := NewGrid(size)
	for y, row := range records {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidTileSize, y, len(row), size)
		}
		for x, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				v = 0
			}
			g.Set(x, y, v)
		}
	}
	return g, nil
}

// LoadGrid opens and parses an elevation grid file.
func LoadGrid(path string, size int) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open grid: %w", err)
	}
	defer f.Close()

	g, err := ParseGrid(f, size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Mirror arranges one grid into a seamless 2x2 layout: the original top-left,
// its horizontal mirror top-right and the vertical mirrors of both below.
func Mirror(g *Grid) [2][2]*Grid {
	right := g.FlipH()
	return [2][2]*Grid{
		{g, right},
		{g.FlipV(), right.FlipV()},
	}
}
