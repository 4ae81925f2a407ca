package terrain

import (
	"math"

	"github.com/Faultbox/avoid-balls/pkg/heightfield"
	gmath "github.com/Faultbox/avoid-balls/pkg/math"
)

// Field maps one heightfield tile into world units. Pixel (0, 0) sits at
// Origin, pixel x grows along +X and pixel y grows along -Y. Samples span
// [-Scale/2, Scale/2].
type Field struct {
	Image  *heightfield.Image
	Scale  float32
	Origin gmath.Vec2

	minZ, maxZ float32
}

// NewField places a tile so that its middle pixel lands on center.
func NewField(img *heightfield.Image, center gmath.Vec2, height float32) *Field {
	half := float32(img.Size-1) / 2
	f := &Field{
		Image:  img,
		Scale:  height,
		Origin: gmath.Vec2{X: center.X - half, Y: center.Y + half},
	}
	f.minZ, f.maxZ = float32(math.MaxFloat32), -float32(math.MaxFloat32)
	for _, v := range img.Pix {
		z := f.elevation(v)
		f.minZ = min(f.minZ, z)
		f.maxZ = max(f.maxZ, z)
	}
	return f
}

func (f *Field) elevation(v uint16) float32 {
	return float32(v)/math.MaxUint16*f.Scale - f.Scale/2
}

// PixelHeight returns the world elevation of pixel (px, py).
func (f *Field) PixelHeight(px, py int) float32 {
	return f.elevation(f.Image.At(px, py))
}

// Normalized returns the 0..1 elevation of pixel (px, py).
func (f *Field) Normalized(px, py int) float32 {
	return float32(f.Image.At(px, py)) / math.MaxUint16
}

// PixelPosition returns the world position of a pixel on the surface.
func (f *Field) PixelPosition(px, py int) gmath.Vec3 {
	return gmath.Vec3{X: f.Origin.X + float32(px), Y: f.Origin.Y - float32(py), Z: f.PixelHeight(px, py)}
}

// Height samples the surface bilinearly. ok is false outside the tile.
func (f *Field) Height(x, y float32) (float32, bool) {
	fx := x - f.Origin.X
	fy := f.Origin.Y - y
	last := float32(f.Image.Size - 1)
	if fx < 0 || fy < 0 || fx > last || fy > last {
		return 0, false
	}

	x0 := min(int(fx), f.Image.Size-2)
	y0 := min(int(fy), f.Image.Size-2)
	tx := clampf(fx-float32(x0), 0, 1)
	ty := clampf(fy-float32(y0), 0, 1)

	h00 := f.PixelHeight(x0, y0)
	h10 := f.PixelHeight(x0+1, y0)
	h01 := f.PixelHeight(x0, y0+1)
	h11 := f.PixelHeight(x0+1, y0+1)

	top := h00*(1-tx) + h10*tx
	bottom := h01*(1-tx) + h11*tx
	return top*(1-ty) + bottom*ty, true
}

// Extent returns the world bounding box of the surface.
func (f *Field) Extent() (lo, hi gmath.Vec3) {
	last := float32(f.Image.Size - 1)
	lo = gmath.Vec3{X: f.Origin.X, Y: f.Origin.Y - last, Z: f.minZ}
	hi = gmath.Vec3{X: f.Origin.X + last, Y: f.Origin.Y, Z: f.maxZ}
	return lo, hi
}

// MinHeight returns the lowest elevation of the tile.
func (f *Field) MinHeight() float32 {
	return f.minZ
}

// Center returns the world XY of the middle pixel.
func (f *Field) Center() gmath.Vec2 {
	half := float32(f.Image.Size-1) / 2
	return gmath.Vec2{X: f.Origin.X + half, Y: f.Origin.Y - half}
}

// Normal estimates the surface normal at pixel (px, py) from its neighbours.
func (f *Field) Normal(px, py, step int) [3]float32 {
	last := f.Image.Size - 1
	xl, xr := max(px-step, 0), min(px+step, last)
	yu, yd := max(py-step, 0), min(py+step, last)

	dzdx := (f.PixelHeight(xr, py) - f.PixelHeight(xl, py)) / float32(xr-xl)
	// Pixel y runs against world y.
	dzdy := (f.PixelHeight(px, yu) - f.PixelHeight(px, yd)) / float32(yd-yu)
	return normalize([3]float32{-dzdx, -dzdy, 1})
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
