// Package world owns the four terrain tiles: their classification into
// elevation bands, their placement in world space and the terrain queries the
// rest of the game relies on.
package world

import "fmt"

// Area is an elevation band of the 8-bit heightfield intensity.
type Area int

// Areas from the lowest band to the highest.
const (
	Lowland Area = iota
	Plain
	Mountain
	Subalpine
	Alpine
)

// Areas lists every band in ascending order.
var Areas = [...]Area{Lowland, Plain, Mountain, Subalpine, Alpine}

var thresholds = [...]uint8{50, 90, 140, 160, 200}

// Threshold returns the lowest intensity of the band. Pixels of exactly this
// intensity are the band's placement markers.
func (a Area) Threshold() uint8 {
	return thresholds[a]
}

func (a Area) String() string {
	switch a {
	case Lowland:
		return "lowland"
	case Plain:
		return "plain"
	case Mountain:
		return "mountain"
	case Subalpine:
		return "subalpine"
	case Alpine:
		return "alpine"
	default:
		return fmt.Sprintf("Area(%d)", int(a))
	}
}

// AreaOf returns the band containing an intensity. Values under the lowland
// threshold are lowland too, so every intensity maps to one band.
func AreaOf(intensity uint8) Area {
	area := Lowland
	for _, a := range Areas {
		if intensity >= a.Threshold() {
			area = a
		}
	}
	return area
}

// MarkerArea reports the band whose threshold equals intensity.
func MarkerArea(intensity uint8) (Area, bool) {
	for _, a := range Areas {
		if intensity == a.Threshold() {
			return a, true
		}
	}
	return 0, false
}
