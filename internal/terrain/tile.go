// Package terrain implements tile adjacency, border extraction and cross-tile
// weight bleeding for terrain tiles.
package terrain

import (
	"errors"
	"sort"

	"github.com/Faultbox/tilebleed/pkg/math"
	"github.com/Faultbox/tilebleed/pkg/tileset"
)

// Tile processing errors. All of them are local to one tile.
var (
	ErrMalformedGeometry = errors.New("malformed geometry")
	ErrMissingNeighbor   = errors.New("no neighbor tile")
	ErrEmptyBorderGroup  = errors.New("empty border group")
)

// Tolerances used when comparing positions.
const (
	// OffsetEpsilon separates tile centers and walker steps along an axis.
	OffsetEpsilon = 0.005
	// AlignEpsilon is the orthogonal-axis tolerance for tile alignment.
	AlignEpsilon = 0.01
	// BorderEpsilon is the distance to a bounding-box side that counts as border.
	BorderEpsilon = 0.01
)

// Tile is a geometry snapshot of one terrain tile. Bounds and adjacency are
// cached on first use, so a Tile must not be shared across goroutines.
// Vertex indices match the source mesh.
type Tile struct {
	Name  string
	Mesh  string
	World math.Mat4

	// Local and Positions hold vertex positions in tile and world space.
	Local     []math.Vec3
	Positions []math.Vec3
	Edges     [][2]int

	bounds    *Extremes
	adjacency [][]int
}

// NewTile snapshots a tile set entry.
func NewTile(src *tileset.Tile) *Tile {
	world := src.WorldMatrix()
	local := make([]math.Vec3, len(src.Vertices))
	pos := make([]math.Vec3, len(src.Vertices))
	for i, v := range src.Vertices {
		local[i] = math.V3(v)
		pos[i] = world.TransformVec3(local[i])
	}
	edges := make([][2]int, len(src.Edges))
	copy(edges, src.Edges)

	return &Tile{
		Name:      src.Name,
		Mesh:      src.Mesh,
		World:     world,
		Local:     local,
		Positions: pos,
		Edges:     edges,
	}
}

// TilesFromDocument snapshots every tile of doc, in document order.
func TilesFromDocument(doc *tileset.Document) []*Tile {
	tiles := make([]*Tile, len(doc.Tiles))
	for i, t := range doc.Tiles {
		tiles[i] = NewTile(t)
	}
	return tiles
}

// VertexCount returns the number of vertices.
func (t *Tile) VertexCount() int {
	return len(t.Positions)
}

// SortLeftToRight returns a copy of tiles ordered by bounding-box center,
// forward rows first and left to right within a row. Tiles without bounds
// keep their relative order at the end.
func SortLeftToRight(tiles []*Tile) []*Tile {
	type keyed struct {
		tile   *Tile
		center math.Vec3
		ok     bool
	}
	ks := make([]keyed, len(tiles))
	for i, t := range tiles {
		c, err := Center(t)
		ks[i] = keyed{tile: t, center: c, ok: err == nil}
	}

	sort.SliceStable(ks, func(i, j int) bool {
		a, b := ks[i], ks[j]
		if a.ok != b.ok {
			return a.ok
		}
		if !a.ok {
			return false
		}
		if !math.Near(a.center.Y, b.center.Y, AlignEpsilon) {
			return a.center.Y < b.center.Y
		}
		return a.center.X < b.center.X
	})

	out := make([]*Tile, len(ks))
	for i, k := range ks {
		out[i] = k.tile
	}
	return out
}
