// Package nature places rocks, trees, flowers and grass over the terrain
// tiles and removes them again when the terrain changes.
package nature

import (
	"fmt"

	"github.com/Faultbox/avoid-balls/internal/engine/physics"
	"github.com/Faultbox/avoid-balls/internal/game/world"
	"github.com/Faultbox/avoid-balls/pkg/heightfield"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

// Kind is a category of placed nature.
type Kind int

const (
	Rock Kind = iota
	Flower
	Pine
	Fir
	Grass
)

func (k Kind) String() string {
	switch k {
	case Rock:
		return "rock"
	case Flower:
		return "flower"
	case Pine:
		return "pine"
	case Fir:
		return "fir"
	case Grass:
		return "grass"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Collides reports whether instances of the kind get a physics body.
func (k Kind) Collides() bool {
	switch k {
	case Rock, Pine, Fir:
		return true
	default:
		return false
	}
}

// KindOf returns the nature grown in an elevation band.
func KindOf(a world.Area) Kind {
	switch a {
	case world.Lowland:
		return Rock
	case world.Plain:
		return Flower
	case world.Mountain:
		return Pine
	case world.Subalpine:
		return Fir
	default:
		return Grass
	}
}

// Instance is one placed object. Tile links it to the quadrant that owns it.
type Instance struct {
	ID       int
	Kind     Kind
	Tile     heightfield.Quadrant
	Position math.Vec3
	Heading  float32 // Degrees about +Z
	Scale    math.Vec3
	Body     *physics.Body
}
