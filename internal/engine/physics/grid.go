package physics

import gomath "math"

const (
	gridCellSize = 16
	// Bodies spanning more cells than this per axis are kept in a flat list.
	gridMaxSpan = 8
)

type cellKey struct {
	X, Y int32
}

type cellRange struct {
	x0, y0, x1, y1 int32
}

// grid is a uniform XY hash over static body bounds. Z is ignored.
type grid struct {
	cells map[cellKey][]*Body
	large []*Body
	spans map[*Body]cellRange
}

func newGrid() *grid {
	return &grid{
		cells: make(map[cellKey][]*Body),
		spans: make(map[*Body]cellRange),
	}
}

func cellOf(v float32) int32 {
	return int32(gomath.Floor(float64(v) / gridCellSize))
}

func rangeOf(box AABB) cellRange {
	return cellRange{cellOf(box.Min.X), cellOf(box.Min.Y), cellOf(box.Max.X), cellOf(box.Max.Y)}
}

func (r cellRange) large() bool {
	return r.x1-r.x0 >= gridMaxSpan || r.y1-r.y0 >= gridMaxSpan
}

func (g *grid) insert(b *Body) {
	r := rangeOf(b.Bounds())
	g.spans[b] = r
	if r.large() {
		g.large = append(g.large, b)
		return
	}
	for y := r.y0; y <= r.y1; y++ {
		for x := r.x0; x <= r.x1; x++ {
			k := cellKey{x, y}
			g.cells[k] = append(g.cells[k], b)
		}
	}
}

func (g *grid) remove(b *Body) {
	r, ok := g.spans[b]
	if !ok {
		return
	}
	delete(g.spans, b)
	if r.large() {
		g.large = removeBody(g.large, b)
		return
	}
	for y := r.y0; y <= r.y1; y++ {
		for x := r.x0; x <= r.x1; x++ {
			k := cellKey{x, y}
			if rest := removeBody(g.cells[k], b); len(rest) > 0 {
				g.cells[k] = rest
			} else {
				delete(g.cells, k)
			}
		}
	}
}

// query calls fn once for every body whose cells touch box.
func (g *grid) query(box AABB, fn func(*Body)) {
	for _, b := range g.large {
		fn(b)
	}
	r := rangeOf(box)
	if r.large() {
		seen := make(map[*Body]struct{})
		for b, span := range g.spans {
			if span.large() || span.x1 < r.x0 || span.x0 > r.x1 || span.y1 < r.y0 || span.y0 > r.y1 {
				continue
			}
			if _, ok := seen[b]; !ok {
				seen[b] = struct{}{}
				fn(b)
			}
		}
		return
	}
	var seen map[*Body]struct{}
	for y := r.y0; y <= r.y1; y++ {
		for x := r.x0; x <= r.x1; x++ {
			for _, b := range g.cells[cellKey{x, y}] {
				if span := g.spans[b]; span.x1 > span.x0 || span.y1 > span.y0 {
					if seen == nil {
						seen = make(map[*Body]struct{})
					}
					if _, ok := seen[b]; ok {
						continue
					}
					seen[b] = struct{}{}
				}
				fn(b)
			}
		}
	}
}

func removeBody(list []*Body, b *Body) []*Body {
	for i, other := range list {
		if other == b {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
