package terrain

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/Faultbox/tilebleed/internal/weights"
	"github.com/Faultbox/tilebleed/pkg/math"
)

// SplatOptions controls random radial seeding of a weight field.
type SplatOptions struct {
	// Count is the number of circles per tile.
	Count int
	// Radius is the horizontal reach of a circle.
	Radius float64
	// Falloff divides the peak contribution: a circle adds at most 1/Falloff.
	Falloff float64
	// MaxHeight bounds the random circle elevation.
	MaxHeight float64
}

// DefaultSplatOptions returns the standard seeding parameters.
func DefaultSplatOptions() SplatOptions {
	return SplatOptions{
		Count:     100,
		Radius:    25,
		Falloff:   10,
		MaxHeight: 25,
	}
}

// Circle is one random splat center and the vertex nearest to it.
type Circle struct {
	Center  math.Vec3
	Nearest int
}

// Splatter accumulates random circular weight blobs into a field.
type Splatter struct {
	Store   WeightStore
	Rand    *rand.Rand
	Log     *zap.Logger
	Options SplatOptions
}

// NewSplatter creates a splatter with default options.
func NewSplatter(store WeightStore, rng *rand.Rand, log *zap.Logger) *Splatter {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Splatter{
		Store:   store,
		Rand:    rng,
		Log:     log,
		Options: DefaultSplatOptions(),
	}
}

// Circles places n random circle centers inside the tile's horizontal bounds.
func (s *Splatter) Circles(t *Tile, n int) ([]Circle, error) {
	e, err := BoundsOf(t)
	if err != nil {
		return nil, err
	}
	origin := math.Vec3{X: e.Left.X, Y: e.Forward.Y}
	spanX := e.Right.X - e.Left.X
	spanY := e.Backward.Y - e.Forward.Y

	circles := make([]Circle, 0, n)
	for i := 0; i < n; i++ {
		c := math.Vec3{
			X: origin.X + spanX*s.Rand.Float64(),
			Y: origin.Y + spanY*s.Rand.Float64(),
			Z: s.Rand.Float64() * s.Options.MaxHeight,
		}
		nearest, err := NearestVertex(t, c)
		if err != nil {
			return nil, err
		}
		circles = append(circles, Circle{Center: c, Nearest: nearest})
	}
	return circles, nil
}

// Run adds random circle contributions to field on every tile. Each vertex
// gains (Radius - d) / (Radius * Falloff) per circle, d being the horizontal
// distance clamped to Radius.
func (s *Splatter) Run(tiles []*Tile, field string) Report {
	rep := Report{Field: field}
	for _, t := range tiles {
		circles, err := s.Circles(t, s.Options.Count)
		if err != nil {
			rep.Skipped = append(rep.Skipped, Skip{Tile: t.Name, Err: fmt.Errorf("tile %s: %w", t.Name, err)})
			continue
		}

		err = s.Store.Edit(t.Name, field, func(f weights.Field) error {
			for _, c := range circles {
				for i, p := range t.Positions {
					f.Set(i, f.Get(i)+s.contribution(c.Center, p))
				}
			}
			return nil
		})
		if err != nil {
			rep.Skipped = append(rep.Skipped, Skip{Tile: t.Name, Err: err})
			continue
		}
		rep.Tiles = append(rep.Tiles, t.Name)
		s.Log.Debug("tile splatted",
			zap.String("tile", t.Name),
			zap.String("field", field),
			zap.Int("circles", len(circles)))
	}
	return rep
}

func (s *Splatter) contribution(center, p math.Vec3) float64 {
	r := s.Options.Radius
	if r <= 0 || s.Options.Falloff == 0 {
		return 0
	}
	d := min(p.WithZ(center.Z).Distance(center), r)
	return (r - d) / (r * s.Options.Falloff)
}
