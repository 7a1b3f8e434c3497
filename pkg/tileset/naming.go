package tileset

import "strings"

// chessSuffixes maps duplicate-name suffixes of a 2x2 tile block to board cells.
var chessSuffixes = []struct {
	suffix string
	cell   string
}{
	{".001", "A1"},
	{".002", "B1"},
	{".003", "A2"},
	{".004", "B2"},
}

// ChessName replaces a numeric duplicate suffix with its chess cell,
// e.g. "Terrain.003" becomes "TerrainA2". Other names are returned unchanged.
func ChessName(name string) string {
	for _, s := range chessSuffixes {
		name = strings.ReplaceAll(name, s.suffix, s.cell)
	}
	return name
}

// SyncMeshName sets the mesh name to the tile name and returns it.
func SyncMeshName(t *Tile) string {
	t.Mesh = t.Name
	return t.Mesh
}

// RenameChess applies ChessName and SyncMeshName to every tile.
// Returns an error if the new names collide.
func (d *Document) RenameChess() error {
	for _, t := range d.Tiles {
		t.Name = ChessName(t.Name)
		SyncMeshName(t)
	}
	return d.Validate()
}
