package terrain

import "fmt"

// Direction is a lateral direction on the terrain plane.
// Left/right run along X, forward/backward along Y (forward is -Y).
type Direction int

// Directions in border-classification precedence order.
const (
	Left Direction = iota
	Right
	Forward
	Backward
)

// Directions lists all lateral directions.
var Directions = [...]Direction{Left, Right, Forward, Backward}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Forward:
		return Backward
	default:
		return Forward
	}
}

// beyond reports whether b lies past a in direction d by more than eps.
func (d Direction) beyond(ax, ay, bx, by, eps float64) bool {
	switch d {
	case Left:
		return bx+eps < ax
	case Right:
		return bx-eps > ax
	case Forward:
		return by+eps < ay
	case Backward:
		return by-eps > ay
	}
	return false
}
