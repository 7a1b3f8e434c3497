package terrain

import (
	gomath "math"

	"github.com/Faultbox/tilebleed/pkg/math"
)

// Extremes holds the world-space bounding-box corners that are extreme along
// each axis direction. Only exact for unrotated tiles: the local box is
// transformed, not recomputed.
type Extremes struct {
	Left, Right math.Vec3 // min X, max X
	Up, Down    math.Vec3 // max Z, min Z
	Forward     math.Vec3 // min Y
	Backward    math.Vec3 // max Y
}

// Side returns the extreme coordinate of the box on the given side:
// X for left/right, Y for forward/backward.
func (e Extremes) Side(d Direction) float64 {
	switch d {
	case Left:
		return e.Left.X
	case Right:
		return e.Right.X
	case Forward:
		return e.Forward.Y
	default:
		return e.Backward.Y
	}
}

// BoundsOf returns the tile's bounding-box extremes.
func BoundsOf(t *Tile) (Extremes, error) {
	if t.bounds != nil {
		return *t.bounds, nil
	}
	corners, err := boxCorners(t)
	if err != nil {
		return Extremes{}, err
	}

	first := corners[0]
	e := Extremes{first, first, first, first, first, first}
	for _, c := range corners {
		if c.X < e.Left.X {
			e.Left = c
		}
		if c.X > e.Right.X {
			e.Right = c
		}
		if c.Y < e.Forward.Y {
			e.Forward = c
		}
		if c.Y > e.Backward.Y {
			e.Backward = c
		}
		if c.Z < e.Down.Z {
			e.Down = c
		}
		if c.Z > e.Up.Z {
			e.Up = c
		}
	}
	t.bounds = &e
	return e, nil
}

// boxCorners returns the eight world-space corners of the local bounding box.
func boxCorners(t *Tile) ([8]math.Vec3, error) {
	var out [8]math.Vec3
	if len(t.Local) == 0 {
		return out, ErrMalformedGeometry
	}

	lo, hi := t.Local[0], t.Local[0]
	for _, l := range t.Local[1:] {
		lo = math.Vec3{X: min(lo.X, l.X), Y: min(lo.Y, l.Y), Z: min(lo.Z, l.Z)}
		hi = math.Vec3{X: max(hi.X, l.X), Y: max(hi.Y, l.Y), Z: max(hi.Z, l.Z)}
	}

	local := [8]math.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
	}
	for i, c := range local {
		out[i] = t.World.TransformVec3(c)
	}
	return out, nil
}

// Center returns the per-axis midpoint of the tile's extremes.
func Center(t *Tile) (math.Vec3, error) {
	e, err := BoundsOf(t)
	if err != nil {
		return math.Vec3{}, err
	}
	return math.Vec3{
		X: (e.Right.X + e.Left.X) * 0.5,
		Y: (e.Backward.Y + e.Forward.Y) * 0.5,
		Z: (e.Down.Z + e.Up.Z) * 0.5,
	}, nil
}

// Dimensions returns the tile's extent along each axis.
func Dimensions(t *Tile) (math.Vec3, error) {
	e, err := BoundsOf(t)
	if err != nil {
		return math.Vec3{}, err
	}
	return math.Vec3{
		X: e.Right.X - e.Left.X,
		Y: e.Backward.Y - e.Forward.Y,
		Z: e.Up.Z - e.Down.Z,
	}, nil
}

// NearestVertex returns the vertex closest to q in the horizontal plane.
// Each candidate is compared as (V.x, V.y, q.z); the first minimum wins.
func NearestVertex(t *Tile, q math.Vec3) (int, error) {
	if len(t.Positions) == 0 {
		return -1, ErrMalformedGeometry
	}
	best, bestDist := -1, gomath.Inf(1)
	for i, p := range t.Positions {
		d := p.WithZ(q.Z).Sub(q).LengthSquared()
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return -1, ErrMalformedGeometry
	}
	return best, nil
}

// NearestVertexIn is NearestVertex restricted to the given candidates.
func NearestVertexIn(t *Tile, q math.Vec3, candidates []int) (int, error) {
	if len(candidates) == 0 {
		return -1, ErrEmptyBorderGroup
	}
	best, bestDist := -1, gomath.Inf(1)
	for _, i := range candidates {
		d := t.Positions[i].WithZ(q.Z).Sub(q).LengthSquared()
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return -1, ErrMalformedGeometry
	}
	return best, nil
}
