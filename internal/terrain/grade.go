package terrain

import (
	"fmt"

	"github.com/Faultbox/tilebleed/internal/weights"
)

// FieldRemover drops vertex entries from a tile's field.
type FieldRemover interface {
	RemoveIndices(tile, field string, indices []int)
}

// StripBorders removes field entries of every border vertex on each tile, so
// the field only covers tile interiors. Tiles without geometry are skipped.
func StripBorders(store FieldRemover, tiles []*Tile, field string) Report {
	rep := Report{Field: field}
	for _, t := range tiles {
		border, err := AllBorders(t)
		if err != nil {
			rep.Skipped = append(rep.Skipped, Skip{Tile: t.Name, Err: fmt.Errorf("tile %s: %w", t.Name, err)})
			continue
		}
		store.RemoveIndices(t.Name, field, border)
		rep.Tiles = append(rep.Tiles, t.Name)
		rep.SeamVertices += len(border)
	}
	return rep
}

// GradeOptions controls edge-loop grading.
type GradeOptions struct {
	// Step is the weight lost per vertex along a loop.
	Step float64
	// MaxSteps bounds the loop length.
	MaxSteps int
}

// DefaultGradeOptions returns the standard grading parameters.
func DefaultGradeOptions() GradeOptions {
	return GradeOptions{Step: 0.009, MaxSteps: 100}
}

// EdgeLoops returns, for each vertex on the tile's left border, the chain of
// vertices reached by walking right from it. The border vertex starts the chain,
// which holds at most maxLen vertices (maxLen <= 0 means unbounded).
func EdgeLoops(t *Tile, maxLen int) ([][]int, error) {
	if err := t.CheckEdges(); err != nil {
		return nil, err
	}
	b, err := BorderGroups(t)
	if err != nil {
		return nil, err
	}
	if len(b.Left) == 0 {
		return nil, ErrEmptyBorderGroup
	}
	loops := make([][]int, 0, len(b.Left))
	for _, v := range b.Left {
		loop := []int{v}
		switch {
		case maxLen <= 0:
			loop = append(loop, Walk(t, v, Right, 0)...)
		case maxLen > 1:
			loop = append(loop, Walk(t, v, Right, maxLen-1)...)
		}
		loops = append(loops, loop)
	}
	return loops, nil
}

// GradeLoops writes a linear ramp along every left-border edge loop: the k-th
// vertex of a loop (the border vertex is k=1) gets 1 - Step*k.
func GradeLoops(store WeightStore, t *Tile, field string, opts GradeOptions) (int, error) {
	loops, err := EdgeLoops(t, opts.MaxSteps)
	if err != nil {
		return 0, fmt.Errorf("tile %s: %w", t.Name, err)
	}
	written := 0
	err = store.Edit(t.Name, field, func(f weights.Field) error {
		for _, loop := range loops {
			w := 1.0
			for _, v := range loop {
				w -= opts.Step
				f.Set(v, w)
				written++
			}
		}
		return nil
	})
	return written, err
}
