package terrain

import "fmt"

// CheckEdges reports an edge whose endpoints are not vertices of the tile.
func (t *Tile) CheckEdges() error {
	n := len(t.Positions)
	for i, e := range t.Edges {
		if e[0] < 0 || e[0] >= n || e[1] < 0 || e[1] >= n {
			return fmt.Errorf("tile %s edge %d %v out of range [0,%d): %w", t.Name, i, e, n, ErrMalformedGeometry)
		}
	}
	return nil
}

// neighbors returns, per vertex, the other endpoints of its edges in edge-list
// order. Edges rejected by CheckEdges are ignored.
func (t *Tile) neighbors() [][]int {
	if t.adjacency != nil {
		return t.adjacency
	}
	n := len(t.Positions)
	adj := make([][]int, n)
	for _, e := range t.Edges {
		a, b := e[0], e[1]
		if a == b || a < 0 || a >= n || b < 0 || b >= n {
			continue
		}
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	t.adjacency = adj
	return adj
}

// Neighbor returns the first vertex connected to v by an edge that lies beyond
// v in direction d by more than OffsetEpsilon. Edges are scanned in list order,
// so the result is the first match, not necessarily the closest.
func Neighbor(t *Tile, v int, d Direction) (int, bool) {
	adj := t.neighbors()
	if v < 0 || v >= len(adj) {
		return -1, false
	}
	p := t.Positions[v]
	for _, o := range adj[v] {
		q := t.Positions[o]
		if d.beyond(p.X, p.Y, q.X, q.Y, OffsetEpsilon) {
			return o, true
		}
	}
	return -1, false
}

// Walk follows Neighbor from v in direction d for at most maxSteps steps and
// returns the visited vertices, excluding v. maxSteps <= 0 means unbounded;
// the walk always ends because every step moves strictly along d.
func Walk(t *Tile, v int, d Direction, maxSteps int) []int {
	var path []int
	for maxSteps <= 0 || len(path) < maxSteps {
		next, ok := Neighbor(t, v, d)
		if !ok {
			break
		}
		path = append(path, next)
		v = next
	}
	return path
}
