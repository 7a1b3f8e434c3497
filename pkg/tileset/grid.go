package tileset

import "fmt"

// GridTileName returns the name of the i-th generated tile: "Terrain",
// then "Terrain.001", "Terrain.002" and so on.
func GridTileName(i int) string {
	if i == 0 {
		return "Terrain"
	}
	return fmt.Sprintf("Terrain.%03d", i)
}

// Grid builds cols x rows square tiles of the given size laid out on the XY plane.
// Each tile is a (segments+1)^2 vertex lattice centered on its position, with edges
// along X and Y only. Row 0 is the forward-most row.
func Grid(cols, rows int, size float64, segments int) *Document {
	if segments < 1 {
		segments = 1
	}
	doc := &Document{}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			t := &Tile{
				Name: GridTileName(len(doc.Tiles)),
				Transform: Transform{
					Position: [3]float64{float64(c) * size, float64(r) * size, 0},
					Scale:    [3]float64{1, 1, 1},
				},
			}
			t.Mesh = t.Name
			t.Vertices, t.Edges = lattice(size, segments)
			doc.Tiles = append(doc.Tiles, t)
		}
	}
	return doc
}

// LatticeIndex returns the vertex index of lattice point (col, row).
func LatticeIndex(segments, col, row int) int {
	return row*(segments+1) + col
}

func lattice(size float64, segments int) ([][3]float64, [][2]int) {
	n := segments + 1
	step := size / float64(segments)
	half := size / 2

	verts := make([][3]float64, 0, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			verts = append(verts, [3]float64{
				-half + float64(col)*step,
				-half + float64(row)*step,
				0,
			})
		}
	}

	var edges [][2]int
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			i := LatticeIndex(segments, col, row)
			if col+1 < n {
				edges = append(edges, [2]int{i, LatticeIndex(segments, col+1, row)})
			}
			if row+1 < n {
				edges = append(edges, [2]int{i, LatticeIndex(segments, col, row+1)})
			}
		}
	}
	return verts, edges
}
