package world

import (
	"math"

	"github.com/Faultbox/avoid-balls/pkg/heightfield"
	gmath "github.com/Faultbox/avoid-balls/pkg/math"
)

// Tile is one quadrant of the terrain.
type Tile struct {
	Quadrant heightfield.Quadrant
	Image    *heightfield.Image
	Center   gmath.Vec2
	Size     int // Source grid edge; the image is Size+1 pixels wide
}

// Marker is a pixel whose intensity sits exactly on a band threshold.
type Marker struct {
	Px, Py int
	Area   Area
}

// NewTile places a quadrant image. The tile center is (±S/2, ±S/2).
func NewTile(q heightfield.Quadrant, img *heightfield.Image) *Tile {
	size := img.Size - 1
	half := float32(size) / 2
	sx, sy := q.Sign()
	return &Tile{
		Quadrant: q,
		Image:    img,
		Center:   gmath.Vec2{X: float32(sx) * half, Y: float32(sy) * half},
		Size:     size,
	}
}

func (t *Tile) half() float32 {
	return float32(t.Size) / 2
}

// PixelToCartesian converts pixel (px, py) to world XY. Image rows grow
// downward while world Y grows north.
func (t *Tile) PixelToCartesian(px, py int) gmath.Vec2 {
	h := t.half()
	return gmath.Vec2{
		X: float32(px) - h + t.Center.X,
		Y: -(float32(py) - h) + t.Center.Y,
	}
}

// CartesianToPixel converts world XY to the nearest pixel.
func (t *Tile) CartesianToPixel(p gmath.Vec2) (px, py int) {
	h := t.half()
	px = int(math.Round(float64(p.X - t.Center.X + h)))
	py = int(math.Round(float64(h - (p.Y - t.Center.Y))))
	return px, py
}

// Intensity returns the 8-bit intensity of pixel (px, py).
func (t *Tile) Intensity(px, py int) uint8 {
	return t.Image.Intensity(px, py)
}

// Area returns the band of pixel (px, py).
func (t *Tile) Area(px, py int) Area {
	return AreaOf(t.Intensity(px, py))
}

// Markers lists the threshold pixels in row scan order.
func (t *Tile) Markers() []Marker {
	var out []Marker
	for py := 0; py < t.Image.Size; py++ {
		for px := 0; px < t.Image.Size; px++ {
			if a, ok := MarkerArea(t.Intensity(px, py)); ok {
				out = append(out, Marker{Px: px, Py: py, Area: a})
			}
		}
	}
	return out
}

// Histogram counts pixels per intensity.
func (t *Tile) Histogram() [256]int {
	return histogram(t.Image)
}

// CountPixels counts pixels whose intensity lies in [start, end]. The range
// is clamped to 0..255.
func (t *Tile) CountPixels(start, end int) int {
	start = max(start, 0)
	end = min(end, 255)
	hist := t.Histogram()
	n := 0
	for i := start; i <= end; i++ {
		n += hist[i]
	}
	return n
}

func histogram(img *heightfield.Image) [256]int {
	var hist [256]int
	for _, v := range img.Pix {
		hist[v>>8]++
	}
	return hist
}
