package terrain

import "github.com/Faultbox/tilebleed/pkg/math"

// Borders partitions a tile's border vertices by side. Each index appears in
// at most one group; indices are ascending.
type Borders struct {
	Left, Right, Forward, Backward []int
}

// Get returns the group for direction d.
func (b Borders) Get(d Direction) []int {
	switch d {
	case Left:
		return b.Left
	case Right:
		return b.Right
	case Forward:
		return b.Forward
	default:
		return b.Backward
	}
}

// Len returns the total number of border vertices.
func (b Borders) Len() int {
	return len(b.Left) + len(b.Right) + len(b.Forward) + len(b.Backward)
}

// classify returns the first side (left, right, forward, backward) whose
// bounding-box extreme lies within BorderEpsilon of p.
func classify(e Extremes, p math.Vec3) (Direction, bool) {
	switch {
	case math.Near(p.X, e.Side(Left), BorderEpsilon):
		return Left, true
	case math.Near(p.X, e.Side(Right), BorderEpsilon):
		return Right, true
	case math.Near(p.Y, e.Side(Forward), BorderEpsilon):
		return Forward, true
	case math.Near(p.Y, e.Side(Backward), BorderEpsilon):
		return Backward, true
	}
	return 0, false
}

// BorderGroups returns the tile's border vertices separated by side. A corner
// vertex goes to the first matching side in left, right, forward, backward order.
func BorderGroups(t *Tile) (Borders, error) {
	var b Borders
	e, err := BoundsOf(t)
	if err != nil {
		return b, err
	}
	for i, p := range t.Positions {
		d, ok := classify(e, p)
		if !ok {
			continue
		}
		switch d {
		case Left:
			b.Left = append(b.Left, i)
		case Right:
			b.Right = append(b.Right, i)
		case Forward:
			b.Forward = append(b.Forward, i)
		case Backward:
			b.Backward = append(b.Backward, i)
		}
	}
	return b, nil
}

// AllBorders returns every border vertex of the tile in ascending order.
func AllBorders(t *Tile) ([]int, error) {
	e, err := BoundsOf(t)
	if err != nil {
		return nil, err
	}
	var out []int
	for i, p := range t.Positions {
		if _, ok := classify(e, p); ok {
			out = append(out, i)
		}
	}
	return out, nil
}
