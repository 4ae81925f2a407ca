package heightfield

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestSaveAndReadTiles(t *testing.T) {
	const size = 8
	res, err := NewBuilder(size).Build(testGrids(size))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	dir := t.TempDir()
	if err := res.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	for _, name := range []string{"top_left.png", "top_right.png", "bottom_left.png", "bottom_right.png", CombinedFileName, PreviewFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	tiles, err := ReadTiles(dir, size)
	if err != nil {
		t.Fatalf("ReadTiles failed: %v", err)
	}
	for _, q := range Quadrants {
		if !slices.Equal(tiles.Get(q).Pix, res.Tiles.Get(q).Pix) {
			t.Errorf("%s tile changed after PNG round trip", q)
		}
	}

	if _, err := ReadTiles(dir, size*2); !errors.Is(err, ErrInvalidTileSize) {
		t.Errorf("ReadTiles with the wrong size: expected ErrInvalidTileSize, got %v", err)
	}

	preview, err := ReadPNG(filepath.Join(dir, PreviewFileName))
	if err != nil {
		t.Fatalf("ReadPNG failed: %v", err)
	}
	if preview.Size != size+1 {
		t.Errorf("preview size = %d, want %d", preview.Size, size+1)
	}
}
