package weights

import (
	"slices"
	"sync"

	"github.com/Faultbox/tilebleed/pkg/tileset"
)

// Store holds the weight fields of every tile in a working set.
// Writers own one tile at a time; readers of other tiles always see whole
// committed fields.
type Store struct {
	mu    sync.RWMutex
	tiles map[string]map[string]Field
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{tiles: make(map[string]map[string]Field)}
}

// FromDocument snapshots the weight fields of every tile in doc.
func FromDocument(doc *tileset.Document) *Store {
	s := NewStore()
	for _, t := range doc.Tiles {
		fields := make(map[string]Field, len(t.Weights))
		for name, w := range t.Weights {
			fields[name] = Field(w).Clone()
		}
		s.tiles[t.Name] = fields
	}
	return s
}

// CommitTo writes the store contents back into doc. Tiles the store does not
// know keep their weights.
func (s *Store) CommitTo(doc *tileset.Document) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range doc.Tiles {
		fields, ok := s.tiles[t.Name]
		if !ok {
			continue
		}
		t.Weights = make(map[string]map[int]float64, len(fields))
		for name, f := range fields {
			t.Weights[name] = f.Clone()
		}
		if len(t.Weights) == 0 {
			t.Weights = nil
		}
	}
}

// Get returns the weight of vertex i in the tile's field, or 0 if unset.
func (s *Store) Get(tile, field string, i int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tiles[tile][field].Get(i)
}

// Set assigns the weight of vertex i in the tile's field, creating the field.
func (s *Store) Set(tile, field string, i int, w float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fieldLocked(tile, field).Set(i, w)
}

// RemoveIndices drops the given vertex entries from the tile's field.
func (s *Store) RemoveIndices(tile, field string, indices []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.tiles[tile][field]; ok {
		f.Remove(indices)
	}
}

// Field returns a copy of the tile's field. Unknown fields yield an empty copy.
func (s *Store) Field(tile, field string) Field {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tiles[tile][field].Clone()
}

// Fields returns the tile's field names in sorted order.
func (s *Store) Fields(tile string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	for k := range s.tiles[tile] {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// DeleteField removes a whole field from a tile. Reports whether it existed.
func (s *Store) DeleteField(tile, field string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tiles[tile][field]; !ok {
		return false
	}
	delete(s.tiles[tile], field)
	return true
}

// Edit hands fn a working copy of the tile's field. The copy replaces the
// stored field only if fn returns nil; otherwise it is discarded.
func (s *Store) Edit(tile, field string, fn func(Field) error) error {
	work := s.Field(tile, field)
	if err := fn(work); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fields := s.tiles[tile]
	if fields == nil {
		fields = make(map[string]Field)
		s.tiles[tile] = fields
	}
	fields[field] = work
	return nil
}

func (s *Store) fieldLocked(tile, field string) Field {
	fields := s.tiles[tile]
	if fields == nil {
		fields = make(map[string]Field)
		s.tiles[tile] = fields
	}
	f := fields[field]
	if f == nil {
		f = make(Field)
		fields[field] = f
	}
	return f
}
