package terrain

import (
	"fmt"

	"github.com/Faultbox/tilebleed/pkg/math"
)

// Relations holds the neighbor of a tile in each direction, nil when none.
type Relations struct {
	Left, Right, Forward, Backward *Tile
}

// Get returns the neighbor in direction d.
func (r Relations) Get(d Direction) *Tile {
	switch d {
	case Left:
		return r.Left
	case Right:
		return r.Right
	case Forward:
		return r.Forward
	default:
		return r.Backward
	}
}

// ResolveRelations finds the closest neighbor of focal in each direction.
//
// A tile is a left/right candidate when its center is offset along X by more
// than OffsetEpsilon and aligned on Y within AlignEpsilon; forward/backward
// candidates are offset along Y and aligned on X. The candidate closest along
// the offset axis wins, and the first tile in slice order wins exact ties.
// Tiles without bounds are never candidates.
func ResolveRelations(tiles []*Tile, focal *Tile) (Relations, error) {
	var rel Relations
	if len(tiles) < 2 {
		return rel, nil
	}

	main, err := Center(focal)
	if err != nil {
		return rel, fmt.Errorf("tile %s: %w", focal.Name, err)
	}

	var leftX, rightX, forwardY, backwardY float64
	for _, t := range tiles {
		if t == focal {
			continue
		}
		c, err := Center(t)
		if err != nil {
			continue
		}

		alignedY := math.Near(c.Y, main.Y, AlignEpsilon)
		alignedX := math.Near(c.X, main.X, AlignEpsilon)

		switch {
		case alignedY && Left.beyond(main.X, main.Y, c.X, c.Y, OffsetEpsilon):
			if rel.Left == nil || c.X > leftX {
				rel.Left, leftX = t, c.X
			}
		case alignedY && Right.beyond(main.X, main.Y, c.X, c.Y, OffsetEpsilon):
			if rel.Right == nil || c.X < rightX {
				rel.Right, rightX = t, c.X
			}
		}

		switch {
		case alignedX && Forward.beyond(main.X, main.Y, c.X, c.Y, OffsetEpsilon):
			if rel.Forward == nil || c.Y > forwardY {
				rel.Forward, forwardY = t, c.Y
			}
		case alignedX && Backward.beyond(main.X, main.Y, c.X, c.Y, OffsetEpsilon):
			if rel.Backward == nil || c.Y < backwardY {
				rel.Backward, backwardY = t, c.Y
			}
		}
	}
	return rel, nil
}
