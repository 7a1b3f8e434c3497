package terrain

import (
	"errors"
	"fmt"
	gomath "math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/Faultbox/tilebleed/internal/weights"
	"github.com/Faultbox/tilebleed/pkg/math"
)

// Order selects the sequence in which tiles are bled.
type Order string

// Tile orders.
const (
	// OrderInput processes tiles in the order given.
	OrderInput Order = "input"
	// OrderLeftToRight processes rows forward to backward, each row left to
	// right. Neighbor reads always see a committed field, never one mid-edit;
	// in this order that field is the neighbor's weights before its own pass.
	OrderLeftToRight Order = "left-to-right"
)

// BleedOptions tunes the bleed pass.
type BleedOptions struct {
	Order Order
	// RestrictToBorder matches seam vertices against the neighbor's left border
	// only instead of its whole mesh.
	RestrictToBorder bool
	// Decay is the per-step trail loss before length and similarity scaling.
	Decay float64
	// Trail length is Lerp(rand, TrailTarget, TrailBlend).
	TrailTarget float64
	TrailBlend  float64
}

// DefaultBleedOptions returns the standard bleed tuning.
func DefaultBleedOptions() BleedOptions {
	return BleedOptions{
		Order:       OrderInput,
		Decay:       0.015,
		TrailTarget: 0.5,
		TrailBlend:  0.8,
	}
}

// WeightStore is the weight storage the bleed pass reads and edits.
type WeightStore interface {
	Get(tile, field string, i int) float64
	Edit(tile, field string, fn func(weights.Field) error) error
}

// Skip records a tile left unmodified by a pass.
type Skip struct {
	Tile string
	Err  error
}

// Reason returns a short label for the skip cause.
func (s Skip) Reason() string {
	switch {
	case errors.Is(s.Err, ErrMissingNeighbor):
		return "missing-neighbor"
	case errors.Is(s.Err, ErrEmptyBorderGroup):
		return "empty-border"
	case errors.Is(s.Err, ErrMalformedGeometry):
		return "malformed-geometry"
	default:
		return "error"
	}
}

// Report summarizes a pass over a tile set.
type Report struct {
	Field string
	// Tiles lists the tiles that were modified, in processing order.
	Tiles []string
	// SeamVertices counts seam vertices overwritten from a neighbor.
	SeamVertices int
	// WalkSteps counts interior vertices blended by trails.
	WalkSteps int
	// SkippedVertices counts seam vertices ignored for non-finite weights.
	SkippedVertices int
	Skipped         []Skip
}

// Bleeder propagates a weight field across the right-hand seam of each tile
// and inward from it.
type Bleeder struct {
	Store   WeightStore
	Rand    *rand.Rand
	Log     *zap.Logger
	Options BleedOptions
}

// NewBleeder creates a bleeder with default options. A nil rng is seeded
// with 1; a nil log discards output.
func NewBleeder(store WeightStore, rng *rand.Rand, log *zap.Logger) *Bleeder {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Bleeder{
		Store:   store,
		Rand:    rng,
		Log:     log,
		Options: DefaultBleedOptions(),
	}
}

// Run bleeds field across every tile. It never fails as a whole: tiles that
// cannot be processed are left unmodified and listed in the report.
func (b *Bleeder) Run(tiles []*Tile, field string) Report {
	rep := Report{Field: field}

	order := tiles
	if b.Options.Order == OrderLeftToRight {
		order = SortLeftToRight(tiles)
	}

	for _, t := range order {
		st, err := b.bleedTile(tiles, t, field)
		rep.SkippedVertices += st.skipped
		if err != nil {
			skip := Skip{Tile: t.Name, Err: err}
			rep.Skipped = append(rep.Skipped, skip)
			b.Log.Debug("tile skipped",
				zap.String("tile", t.Name),
				zap.String("reason", skip.Reason()),
				zap.Error(err))
			continue
		}
		rep.Tiles = append(rep.Tiles, t.Name)
		rep.SeamVertices += st.seam
		rep.WalkSteps += st.steps
		b.Log.Debug("tile bled",
			zap.String("tile", t.Name),
			zap.String("field", field),
			zap.Int("seam", st.seam),
			zap.Int("steps", st.steps))
	}
	return rep
}

type seamStats struct {
	seam, steps, skipped int
}

func (b *Bleeder) bleedTile(tiles []*Tile, t *Tile, field string) (seamStats, error) {
	var st seamStats

	if err := t.CheckEdges(); err != nil {
		return st, err
	}
	rel, err := ResolveRelations(tiles, t)
	if err != nil {
		return st, err
	}
	r := rel.Right
	if r == nil {
		return st, fmt.Errorf("tile %s right side: %w", t.Name, ErrMissingNeighbor)
	}

	own, err := BorderGroups(t)
	if err != nil {
		return st, fmt.Errorf("tile %s: %w", t.Name, err)
	}
	other, err := BorderGroups(r)
	if err != nil {
		return st, fmt.Errorf("neighbor %s: %w", r.Name, err)
	}
	if len(own.Right) == 0 {
		return st, fmt.Errorf("tile %s right side: %w", t.Name, ErrEmptyBorderGroup)
	}
	if len(other.Left) == 0 {
		return st, fmt.Errorf("neighbor %s left side: %w", r.Name, ErrEmptyBorderGroup)
	}

	err = b.Store.Edit(t.Name, field, func(f weights.Field) error {
		st = seamStats{}
		for _, vi := range own.Right {
			vr, err := b.match(r, t.Positions[vi], other.Left)
			if err != nil {
				return fmt.Errorf("neighbor %s: %w", r.Name, err)
			}

			wT := f.Get(vi)
			wR := b.Store.Get(r.Name, field, vr)
			if !math.IsFinite(wT) || !math.IsFinite(wR) {
				st.skipped++
				continue
			}

			// similarity of the two sides scales how fast the trail fades
			diff := max(1.0-gomath.Abs(wR-wT), 0)
			f.Set(vi, wR)
			st.seam++
			st.steps += b.trail(t, f, vi, wR, diff)
		}
		return nil
	})
	return st, err
}

func (b *Bleeder) match(r *Tile, q math.Vec3, leftOfR []int) (int, error) {
	if b.Options.RestrictToBorder {
		return NearestVertexIn(r, q, leftOfR)
	}
	return NearestVertex(r, q)
}

// trail blends w leftward from seam vertex v with a fading factor and returns
// the number of vertices written.
func (b *Bleeder) trail(t *Tile, f weights.Field, v int, w, diff float64) int {
	length := math.Lerp(b.Rand.Float64(), b.Options.TrailTarget, b.Options.TrailBlend)
	if length <= 0 {
		return 0
	}
	inv := 1.0 / length
	trail := 1.0

	steps := 0
	for i, lim := 0, len(t.Positions); i < lim; i++ {
		trail -= inv * b.Options.Decay * diff
		if trail <= 0 {
			break
		}
		next, ok := Neighbor(t, v, Left)
		if !ok {
			break
		}
		f.Set(next, math.Lerp(f.Get(next), w, trail))
		v = next
		steps++
	}
	return steps
}
