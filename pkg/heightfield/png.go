package heightfield

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// CombinedFileName and PreviewFileName are written next to the quadrant tiles.
const (
	CombinedFileName = "heightfield.png"
	PreviewFileName  = "preview.png"
)

// WritePNG writes the heightfield as a 16-bit grayscale PNG.
func WritePNG(path string, m *Image) error {
	return writeImage(path, m.Gray16())
}

func writeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

// ReadPNG loads a heightfield PNG.
func ReadPNG(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return FromImage(img)
}

// ReadTiles loads the four quadrant tiles written by Save for source grids of
// size x size samples. Every tile must be (size+1) x (size+1).
func ReadTiles(dir string, size int) (Tiles, error) {
	var t Tiles
	for _, q := range Quadrants {
		path := filepath.Join(dir, q.FileName())
		img, err := ReadPNG(path)
		if err != nil {
			return Tiles{}, err
		}
		if img.Size != size+1 {
			return Tiles{}, fmt.Errorf("%s: %w: got %dx%d, want %dx%d", path, ErrInvalidTileSize, img.Size, img.Size, size+1, size+1)
		}
		t.Set(q, img)
	}
	return t, nil
}

// Preview downscales the combined heightfield to the size of one tile.
func (r *Result) Preview() *image.Gray16 {
	size := r.Tiles.Get(TopLeft).Size
	dst := image.NewGray16(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), r.Combined.Gray16(), image.Rect(0, 0, r.Combined.Size, r.Combined.Size), draw.Src, nil)
	return dst
}

// Save writes the quadrant tiles, the combined heightfield and its preview
// into dir. Results read back from tiles alone have no combined image and
// only the tiles are written.
func (r *Result) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, q := range Quadrants {
		if err := WritePNG(filepath.Join(dir, q.FileName()), r.Tiles.Get(q)); err != nil {
			return err
		}
	}
	if r.Combined == nil {
		return nil
	}
	if err := WritePNG(filepath.Join(dir, CombinedFileName), r.Combined); err != nil {
		return err
	}
	return writeImage(filepath.Join(dir, PreviewFileName), r.Preview())
}
