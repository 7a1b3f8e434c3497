// Package tileset reads and writes tile set documents: terrain tiles with their
// transforms, mesh geometry and named per-vertex weight fields.
package tileset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/tilebleed/pkg/math"
)

// Tile set errors.
var (
	ErrEmptyName        = errors.New("tile has no name")
	ErrDuplicateTile    = errors.New("duplicate tile name")
	ErrEdgeOutOfRange   = errors.New("edge references missing vertex")
	ErrWeightOutOfRange = errors.New("weight references missing vertex")
	ErrNonFinite        = errors.New("non-finite value")
)

// Transform is a position/rotation/scale triple.
type Transform struct {
	Position [3]float64 `yaml:"position,flow"`
	// Rotation holds XYZ euler angles in radians.
	Rotation [3]float64 `yaml:"rotation,flow"`
	// RotationQuat overrides Rotation when set (x, y, z, w).
	RotationQuat *[4]float64 `yaml:"rotation_quat,omitempty,flow"`
	Scale        [3]float64  `yaml:"scale,flow"`
}

// Matrix returns translate * rotate * scale.
func (t Transform) Matrix() math.Mat4 {
	rot := math.RotateEuler(math.V3(t.Rotation))
	if q := t.RotationQuat; q != nil {
		rot = math.Quat{X: q[0], Y: q[1], Z: q[2], W: q[3]}.ToMat4()
	}
	return math.Compose(math.V3(t.Position), rot, math.V3(t.Scale))
}

// Tile is one terrain chunk.
type Tile struct {
	Name      string `yaml:"name"`
	Mesh      string `yaml:"mesh,omitempty"`
	Transform `yaml:",inline"`
	Parent    *Transform `yaml:"parent,omitempty"`

	Vertices [][3]float64 `yaml:"vertices,flow"`
	Edges    [][2]int     `yaml:"edges,flow"`

	// Weights maps field name to vertex index to value.
	Weights map[string]map[int]float64 `yaml:"weights,omitempty"`
}

// WorldMatrix returns the tile's local-to-world transform.
func (t *Tile) WorldMatrix() math.Mat4 {
	m := t.Transform.Matrix()
	if t.Parent != nil {
		m = t.Parent.Matrix().Mul(m)
	}
	return m
}

// Document is a parsed tile set.
type Document struct {
	Tiles []*Tile `yaml:"tiles"`
}

// Find returns the tile with the given name, or nil.
func (d *Document) Find(name string) *Tile {
	for _, t := range d.Tiles {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Parse parses a tile set document from YAML bytes.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding tile set: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses a tile set file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Marshal encodes the document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// Save writes the document to path.
func (d *Document) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// applyDefaults fills unset scales with 1.
func (d *Document) applyDefaults() {
	for _, t := range d.Tiles {
		if t == nil {
			continue
		}
		defaultScale(&t.Transform)
		if t.Parent != nil {
			defaultScale(t.Parent)
		}
	}
}

func defaultScale(t *Transform) {
	if t.Scale == [3]float64{} {
		t.Scale = [3]float64{1, 1, 1}
	}
}

// Validate checks names, index ranges and finiteness.
func (d *Document) Validate() error {
	seen := make(map[string]bool, len(d.Tiles))
	for i, t := range d.Tiles {
		if t == nil || t.Name == "" {
			return fmt.Errorf("tile %d: %w", i, ErrEmptyName)
		}
		if seen[t.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateTile, t.Name)
		}
		seen[t.Name] = true

		if err := t.validate(); err != nil {
			return fmt.Errorf("tile %s: %w", t.Name, err)
		}
	}
	return nil
}

func (t *Tile) validate() error {
	n := len(t.Vertices)
	for i, v := range t.Vertices {
		if !math.V3(v).IsFinite() {
			return fmt.Errorf("vertex %d: %w", i, ErrNonFinite)
		}
	}
	for i, e := range t.Edges {
		if e[0] < 0 || e[0] >= n || e[1] < 0 || e[1] >= n {
			return fmt.Errorf("edge %d (%d, %d): %w", i, e[0], e[1], ErrEdgeOutOfRange)
		}
	}
	for name, field := range t.Weights {
		for idx, w := range field {
			if idx < 0 || idx >= n {
				return fmt.Errorf("field %s index %d: %w", name, idx, ErrWeightOutOfRange)
			}
			if !math.IsFinite(w) {
				return fmt.Errorf("field %s index %d: %w", name, idx, ErrNonFinite)
			}
		}
	}
	return nil
}
