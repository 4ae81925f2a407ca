package heightfield

import (
	"fmt"
	"image"
	"image/color"
)

// Image is a square 16-bit grayscale heightfield.
type Image struct {
	Size int
	Pix  []uint16
}

// NewImage returns a black size x size image.
func NewImage(size int) *Image {
	return &Image{Size: size, Pix: make([]uint16, size*size)}
}

// At returns the sample at pixel (px, py). Row 0 is the top (north) edge.
func (m *Image) At(px, py int) uint16 {
	return m.Pix[py*m.Size+px]
}

// Set stores a sample at pixel (px, py).
func (m *Image) Set(px, py int, v uint16) {
	m.Pix[py*m.Size+px] = v
}

// Intensity returns the 8-bit view of the sample, its high byte.
func (m *Image) Intensity(px, py int) uint8 {
	return uint8(m.At(px, py) >> 8)
}

// Row returns a copy of row py.
func (m *Image) Row(py int) []uint16 {
	out := make([]uint16, m.Size)
	copy(out, m.Pix[py*m.Size:(py+1)*m.Size])
	return out
}

// Column returns a copy of column px.
func (m *Image) Column(px int) []uint16 {
	out := make([]uint16, m.Size)
	for y := range out {
		out[y] = m.At(px, y)
	}
	return out
}

// Crop copies the size x size block whose top-left pixel is (x0, y0).
func (m *Image) Crop(x0, y0, size int) *Image {
	out := NewImage(size)
	for y := 0; y < size; y++ {
		copy(out.Pix[y*size:(y+1)*size], m.Pix[(y0+y)*m.Size+x0:(y0+y)*m.Size+x0+size])
	}
	return out
}

// Gray16 converts the heightfield to a standard library image.
func (m *Image) Gray16() *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, m.Size, m.Size))
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			img.SetGray16(x, y, color.Gray16{Y: m.At(x, y)})
		}
	}
	return img
}

// FromImage converts any square image to a heightfield using its 16-bit gray
// value.
func FromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	if b.Dx() != b.Dy() {
		return nil, fmt.Errorf("%w: image is %dx%d", ErrInvalidTileSize, b.Dx(), b.Dy())
	}
	m := NewImage(b.Dx())
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			g := color.Gray16Model.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			m.Set(x, y, g.Y)
		}
	}
	return m, nil
}

// Quadrant identifies one of the four terrain tiles.
type Quadrant int

// Quadrants in the order of the terrain layout (+x+y first, counter-clockwise).
const (
	TopRight    Quadrant = 1
	TopLeft     Quadrant = 2
	BottomLeft  Quadrant = 3
	BottomRight Quadrant = 4
)

// Quadrants lists every quadrant.
var Quadrants = [4]Quadrant{TopRight, TopLeft, BottomLeft, BottomRight}

// String returns the quadrant name.
func (q Quadrant) String() string {
	switch q {
	case TopRight:
		return "top_right"
	case TopLeft:
		return "top_left"
	case BottomLeft:
		return "bottom_left"
	case BottomRight:
		return "bottom_right"
	default:
		return fmt.Sprintf("Quadrant(%d)", int(q))
	}
}

// FileName returns the PNG file name of the quadrant tile.
func (q Quadrant) FileName() string {
	return q.String() + ".png"
}

// Sign returns the signs of the world x and y coordinates the quadrant covers.
func (q Quadrant) Sign() (sx, sy int) {
	switch q {
	case TopRight:
		return 1, 1
	case TopLeft:
		return -1, 1
	case BottomLeft:
		return -1, -1
	case BottomRight:
		return 1, -1
	default:
		return 0, 0
	}
}

// QuadrantAt returns the quadrant containing world (x, y). Points on an axis
// belong to the positive side.
func QuadrantAt(x, y float32) Quadrant {
	switch {
	case x >= 0 && y >= 0:
		return TopRight
	case x < 0 && y >= 0:
		return TopLeft
	case x < 0:
		return BottomLeft
	default:
		return BottomRight
	}
}

// Tiles holds one image per quadrant.
type Tiles [4]*Image

// Get returns the tile of quadrant q.
func (t Tiles) Get(q Quadrant) *Image {
	if q < TopRight || q > BottomRight {
		return nil
	}
	return t[q-1]
}

// Set stores the tile of quadrant q.
func (t *Tiles) Set(q Quadrant, img *Image) {
	t[q-1] = img
}
