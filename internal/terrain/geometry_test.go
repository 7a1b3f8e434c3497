package terrain

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/tilebleed/pkg/math"
	"github.com/Faultbox/tilebleed/pkg/tileset"
)

// gridTiles snapshots a generated cols x rows grid of unit-sized lattice tiles.
func gridTiles(cols, rows int, size float64, segments int) []*Tile {
	return TilesFromDocument(tileset.Grid(cols, rows, size, segments))
}

// newTile builds a tile from raw vertices and edges at the given position.
func newTile(name string, pos [3]float64, verts [][3]float64, edges [][2]int) *Tile {
	return NewTile(&tileset.Tile{
		Name: name,
		Transform: tileset.Transform{
			Position: pos,
			Scale:    [3]float64{1, 1, 1},
		},
		Vertices: verts,
		Edges:    edges,
	})
}

func nearVec(a, b math.Vec3, eps float64) bool {
	return math.Near(a.X, b.X, eps) && math.Near(a.Y, b.Y, eps) && math.Near(a.Z, b.Z, eps)
}

func TestBoundsOf(t *testing.T) {
	tile := newTile("a", [3]float64{1, 0, 0}, [][3]float64{
		{-0.5, -0.5, 0},
		{0.5, -0.5, 2},
		{-0.5, 0.5, -1},
		{0.5, 0.5, 0},
	}, nil)

	e, err := BoundsOf(tile)
	if err != nil {
		t.Fatalf("BoundsOf failed: %v", err)
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"left.x", e.Left.X, 0.5},
		{"right.x", e.Right.X, 1.5},
		{"forward.y", e.Forward.Y, -0.5},
		{"backward.y", e.Backward.Y, 0.5},
		{"up.z", e.Up.Z, 2},
		{"down.z", e.Down.Z, -1},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	// first corner in box order wins ties: (min x, min y, min z)
	if want := (math.Vec3{X: 0.5, Y: -0.5, Z: -1}); e.Left != want {
		t.Errorf("Left corner = %v, want %v", e.Left, want)
	}
}

func TestCenterAndDimensions(t *testing.T) {
	tile := gridTiles(2, 1, 1, 2)[1]

	c, err := Center(tile)
	if err != nil {
		t.Fatalf("Center failed: %v", err)
	}
	if want := (math.Vec3{X: 1}); !nearVec(c, want, 1e-12) {
		t.Errorf("Center = %v, want %v", c, want)
	}

	d, err := Dimensions(tile)
	if err != nil {
		t.Fatalf("Dimensions failed: %v", err)
	}
	if want := (math.Vec3{X: 1, Y: 1}); !nearVec(d, want, 1e-12) {
		t.Errorf("Dimensions = %v, want %v", d, want)
	}
}

func TestBoundsRotated(t *testing.T) {
	src := &tileset.Tile{
		Name: "rot",
		Transform: tileset.Transform{
			Rotation: [3]float64{0, 0, gomath.Pi / 2},
			Scale:    [3]float64{1, 1, 1},
		},
		Vertices: [][3]float64{{-1, -0.5, 0}, {1, 0.5, 0}},
	}
	d, err := Dimensions(NewTile(src))
	if err != nil {
		t.Fatalf("Dimensions failed: %v", err)
	}
	if want := (math.Vec3{X: 1, Y: 2}); !nearVec(d, want, 1e-9) {
		t.Errorf("rotated Dimensions = %v, want %v", d, want)
	}
}

func TestBoundsEmptyMesh(t *testing.T) {
	tile := newTile("empty", [3]float64{}, nil, nil)

	if _, err := BoundsOf(tile); !errors.Is(err, ErrMalformedGeometry) {
		t.Errorf("BoundsOf error = %v, want ErrMalformedGeometry", err)
	}
	if _, err := Center(tile); !errors.Is(err, ErrMalformedGeometry) {
		t.Errorf("Center error = %v, want ErrMalformedGeometry", err)
	}
	if _, err := NearestVertex(tile, math.Vec3{}); !errors.Is(err, ErrMalformedGeometry) {
		t.Errorf("NearestVertex error = %v, want ErrMalformedGeometry", err)
	}
}

func TestNearestVertexIgnoresElevation(t *testing.T) {
	tile := newTile("a", [3]float64{}, [][3]float64{
		{0, 0, 100},
		{1, 0, 0},
	}, nil)

	got, err := NearestVertex(tile, math.Vec3{X: 0.1, Y: 0, Z: 0})
	if err != nil {
		t.Fatalf("NearestVertex failed: %v", err)
	}
	if got != 0 {
		t.Errorf("NearestVertex = %d, want 0 (horizontal match despite elevation)", got)
	}
}

func TestNearestVertexFirstWins(t *testing.T) {
	tile := newTile("a", [3]float64{}, [][3]float64{
		{5, 5, 0},
		{1, 1, 0},
		{1, 1, 3},
	}, nil)

	got, err := NearestVertex(tile, math.Vec3{X: 1, Y: 1, Z: 7})
	if err != nil {
		t.Fatalf("NearestVertex failed: %v", err)
	}
	if got != 1 {
		t.Errorf("NearestVertex = %d, want 1 (first of equal candidates)", got)
	}
}

func TestNearestVertexIn(t *testing.T) {
	tile := newTile("a", [3]float64{}, [][3]float64{
		{0, 0, 0},
		{2, 0, 0},
		{3, 0, 0},
	}, nil)

	got, err := NearestVertexIn(tile, math.Vec3{}, []int{1, 2})
	if err != nil {
		t.Fatalf("NearestVertexIn failed: %v", err)
	}
	if got != 1 {
		t.Errorf("NearestVertexIn = %d, want 1", got)
	}

	if _, err := NearestVertexIn(tile, math.Vec3{}, nil); !errors.Is(err, ErrEmptyBorderGroup) {
		t.Errorf("NearestVertexIn(nil) error = %v, want ErrEmptyBorderGroup", err)
	}
}

func TestSortLeftToRight(t *testing.T) {
	tiles := gridTiles(2, 2, 1, 1)
	shuffled := []*Tile{tiles[3], tiles[1], tiles[2], tiles[0]}
	empty := newTile("empty", [3]float64{}, nil, nil)
	shuffled = append([]*Tile{empty}, shuffled...)

	sorted := SortLeftToRight(shuffled)
	want := []string{"Terrain", "Terrain.001", "Terrain.002", "Terrain.003", "empty"}
	for i, tile := range sorted {
		if tile.Name != want[i] {
			t.Errorf("sorted[%d] = %s, want %s", i, tile.Name, want[i])
		}
	}
}
