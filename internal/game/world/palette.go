package world

import (
	"github.com/Faultbox/avoid-balls/internal/engine/terrain"
	"github.com/Faultbox/avoid-balls/pkg/heightfield"
)

// Ground layer colors: small stones, grass, red ground, dark green.
var (
	colorStones    = [3]float32{0.55, 0.53, 0.50}
	colorGrass     = [3]float32{0.36, 0.58, 0.25}
	colorRedGround = [3]float32{0.55, 0.33, 0.22}
	colorDarkGreen = [3]float32{0.13, 0.30, 0.16}
)

// Palettes are the terrain texturings chosen by how bright the heightfield is.
var Palettes = [3]terrain.Palette{
	{
		Name:   "lowland",
		Colors: [4][3]float32{colorStones, colorGrass, colorRedGround, colorDarkGreen},
		Bands:  [3]float32{0.15, 0.45, 0.75},
		Width:  0.08,
	},
	{
		Name:   "hills",
		Colors: [4][3]float32{colorGrass, colorDarkGreen, colorRedGround, colorStones},
		Bands:  [3]float32{0.25, 0.55, 0.8},
		Width:  0.08,
	},
	{
		Name:   "highland",
		Colors: [4][3]float32{colorDarkGreen, colorRedGround, colorStones, colorStones},
		Bands:  [3]float32{0.3, 0.6, 0.85},
		Width:  0.1,
	},
}

// Binarize splits the heightfield at its Otsu threshold and returns the share
// of white (above) and black pixels.
func Binarize(img *heightfield.Image) (white, black float64) {
	hist := histogram(img)
	total := len(img.Pix)
	if total == 0 {
		return 0, 0
	}

	threshold := otsu(hist, total)
	above := 0
	for i := threshold + 1; i < len(hist); i++ {
		above += hist[i]
	}
	white = float64(above) / float64(total)
	return white, 1 - white
}

// otsu returns the threshold maximizing the between-class variance.
func otsu(hist [256]int, total int) int {
	sum := 0.0
	for i, n := range hist {
		sum += float64(i * n)
	}

	var sumB, best float64
	wB := 0
	threshold := 0
	for i, n := range hist {
		wB += n
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(i * n)
		mB := sumB / float64(wB)
		mF := (sum - sumB) / float64(wF)
		between := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			threshold = i
		}
	}
	return threshold
}

// SelectPalette picks a palette from the white share of the binarized
// heightfield.
func SelectPalette(white float64) terrain.Palette {
	switch {
	case white < 0.35:
		return Palettes[0]
	case white < 0.65:
		return Palettes[1]
	default:
		return Palettes[2]
	}
}
