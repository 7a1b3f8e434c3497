package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/tilebleed/internal/config"
	"github.com/Faultbox/tilebleed/internal/logger"
	"github.com/Faultbox/tilebleed/internal/terrain"
	"github.com/Faultbox/tilebleed/internal/weights"
	"github.com/Faultbox/tilebleed/pkg/tileset"
)

// session is a loaded tile set plus the settings of a mutating command.
type session struct {
	cfg    *config.Config
	path   string
	output string
	doc    *tileset.Document
	tiles  []*terrain.Tile
	store  *weights.Store
}

// openSession parses the shared flags, loads config and the tile set, and
// starts logging.
func openSession(name string, args []string) (*session, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	var flags config.Flags
	flags.Register(fs)
	output := fs.String("o", "", "Output file (default: overwrite input)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, fmt.Errorf("%w: tiletool %s [options] <tiles.yaml>", errUsage, name)
	}

	cfg, err := config.Load(&flags)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, path: fs.Arg(0), output: *output}
	if s.output == "" {
		s.output = s.path
	}
	if s.doc, err = tileset.Load(s.path); err != nil {
		return nil, err
	}
	s.tiles = terrain.TilesFromDocument(s.doc)
	s.store = weights.FromDocument(s.doc)

	logger.Debug("tile set loaded",
		zap.String("command", name),
		zap.String("path", s.path),
		zap.Int("tiles", len(s.tiles)))
	return s, nil
}

// save commits the store into the document and writes it out.
func (s *session) save() error {
	s.store.CommitTo(s.doc)
	if err := s.doc.Save(s.output); err != nil {
		logger.Error("tile set not written", zap.String("path", s.output), zap.Error(err))
		return err
	}
	logger.Info("tile set written", zap.String("path", s.output))
	return nil
}

// newRand returns a generator for seed; 0 picks one from the clock.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("random seed", zap.Int64("seed", seed))
	return rand.New(rand.NewSource(seed))
}

func cmdBleed(args []string, out io.Writer) error {
	s, err := openSession("bleed", args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	b := terrain.NewBleeder(s.store, newRand(s.cfg.Bleed.Seed), logger.Named("bleed"))
	b.Options = s.cfg.Bleed.BleedOptions()

	rep := b.Run(s.tiles, s.cfg.Bleed.Field)
	printReport(out, rep)
	return s.save()
}

func cmdSplat(args []string, out io.Writer) error {
	s, err := openSession("splat", args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	sp := terrain.NewSplatter(s.store, newRand(s.cfg.Splat.Seed), logger.Named("splat"))
	sp.Options = s.cfg.Splat.SplatOptions()

	rep := sp.Run(s.tiles, s.cfg.Splat.Field)
	printReport(out, rep)
	return s.save()
}

func cmdStrip(args []string, out io.Writer) error {
	s, err := openSession("strip", args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	rep := terrain.StripBorders(s.store, s.tiles, s.cfg.Strip.Field)
	printReport(out, rep)
	return s.save()
}

func cmdGrade(args []string, out io.Writer) error {
	s, err := openSession("grade", args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	field := s.cfg.Grade.Field
	opts := s.cfg.Grade.GradeOptions()
	rep := terrain.Report{Field: field}
	for _, t := range s.tiles {
		n, err := terrain.GradeLoops(s.store, t, field, opts)
		if err != nil {
			rep.Skipped = append(rep.Skipped, terrain.Skip{Tile: t.Name, Err: err})
			continue
		}
		rep.Tiles = append(rep.Tiles, t.Name)
		rep.WalkSteps += n
	}
	printReport(out, rep)
	return s.save()
}

func printReport(w io.Writer, rep terrain.Report) {
	fmt.Fprintf(w, "Field:    %s\n", rep.Field)
	fmt.Fprintf(w, "Modified: %d tiles\n", len(rep.Tiles))
	if rep.SeamVertices > 0 {
		fmt.Fprintf(w, "Seam:     %d vertices\n", rep.SeamVertices)
	}
	if rep.WalkSteps > 0 {
		fmt.Fprintf(w, "Written:  %d vertices\n", rep.WalkSteps)
	}
	if rep.SkippedVertices > 0 {
		fmt.Fprintf(w, "Ignored:  %d non-finite seam weights\n", rep.SkippedVertices)
	}
	if len(rep.Skipped) == 0 {
		return
	}
	fmt.Fprintln(w, "Skipped:")
	for _, sk := range rep.Skipped {
		fmt.Fprintf(w, "  %-20s %s\n", sk.Tile, sk.Reason())
		logger.Warn("tile skipped",
			zap.String("tile", sk.Tile),
			zap.String("reason", sk.Reason()),
			zap.Error(sk.Err))
	}
}

func cmdInfo(args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: tiletool info <tiles.yaml>", errUsage)
	}

	doc, err := tileset.Load(args[0])
	if err != nil {
		return err
	}
	store := weights.FromDocument(doc)
	tiles := terrain.TilesFromDocument(doc)

	fmt.Fprintf(out, "Tile set: %s\n", args[0])
	fmt.Fprintf(out, "Tiles:    %d\n", len(tiles))
	fmt.Fprintln(out)

	for _, t := range tiles {
		fmt.Fprintf(out, "%s\n", t.Name)
		fmt.Fprintf(out, "  vertices: %d  edges: %d\n", t.VertexCount(), len(t.Edges))
		if c, err := terrain.Center(t); err == nil {
			d, _ := terrain.Dimensions(t)
			p := t.World.Translation()
			fmt.Fprintf(out, "  position: (%.3f, %.3f, %.3f)\n", p.X, p.Y, p.Z)
			fmt.Fprintf(out, "  center:   (%.3f, %.3f, %.3f)\n", c.X, c.Y, c.Z)
			fmt.Fprintf(out, "  size:     %.3f x %.3f x %.3f\n", d.X, d.Y, d.Z)
		} else {
			fmt.Fprintf(out, "  bounds:   %v\n", err)
		}
		for _, f := range store.Fields(t.Name) {
			fmt.Fprintf(out, "  field %-12s %d entries\n", f, len(store.Field(t.Name, f)))
		}
	}
	return nil
}

func cmdRelations(args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: tiletool relations <tiles.yaml> [tile]", errUsage)
	}

	doc, err := tileset.Load(args[0])
	if err != nil {
		return err
	}
	tiles := terrain.TilesFromDocument(doc)

	focal := tiles
	if len(args) > 1 {
		t := findTile(tiles, args[1])
		if t == nil {
			return fmt.Errorf("tile not found: %s", args[1])
		}
		focal = []*terrain.Tile{t}
	}

	for _, t := range focal {
		rel, err := terrain.ResolveRelations(tiles, t)
		if err != nil {
			fmt.Fprintf(out, "%-20s %v\n", t.Name, err)
			continue
		}
		parts := make([]string, 0, len(terrain.Directions))
		for _, d := range terrain.Directions {
			n := "-"
			if r := rel.Get(d); r != nil {
				n = r.Name
			}
			parts = append(parts, d.String()+"="+n)
		}
		fmt.Fprintf(out, "%-20s %s\n", t.Name, strings.Join(parts, " "))
	}
	return nil
}

func cmdBorders(args []string, out io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: tiletool borders <tiles.yaml> <tile>", errUsage)
	}

	doc, err := tileset.Load(args[0])
	if err != nil {
		return err
	}
	t := findTile(terrain.TilesFromDocument(doc), args[1])
	if t == nil {
		return fmt.Errorf("tile not found: %s", args[1])
	}

	b, err := terrain.BorderGroups(t)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d border vertices\n", t.Name, b.Len())
	for _, d := range terrain.Directions {
		fmt.Fprintf(out, "  %-9s %v\n", d.String()+":", b.Get(d))
	}
	return nil
}

func cmdRename(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("rename", flag.ContinueOnError)
	output := fs.String("o", "", "Output file (default: overwrite input)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: tiletool rename [-o out] <tiles.yaml>", errUsage)
	}

	doc, err := tileset.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	before := make([]string, len(doc.Tiles))
	for i, t := range doc.Tiles {
		before[i] = t.Name
	}
	if err := doc.RenameChess(); err != nil {
		return err
	}
	for i, t := range doc.Tiles {
		if before[i] != t.Name {
			fmt.Fprintf(out, "%s -> %s\n", before[i], t.Name)
		}
	}

	path := *output
	if path == "" {
		path = fs.Arg(0)
	}
	return doc.Save(path)
}

func cmdGrid(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("grid", flag.ContinueOnError)
	cols := fs.Int("cols", 2, "Tiles per row")
	rows := fs.Int("rows", 1, "Rows of tiles")
	size := fs.Float64("size", 2, "Tile edge length")
	segments := fs.Int("segments", 8, "Lattice subdivisions per tile edge")
	output := fs.String("o", "", "Output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" {
		return fmt.Errorf("%w: tiletool grid [options] -o <tiles.yaml>", errUsage)
	}
	if *cols < 1 || *rows < 1 || *size <= 0 {
		return fmt.Errorf("grid needs positive -cols, -rows and -size")
	}

	doc := tileset.Grid(*cols, *rows, *size, *segments)
	if err := doc.Save(*output); err != nil {
		return err
	}
	fmt.Fprintf(out, "Generated: %s (%d tiles)\n", *output, len(doc.Tiles))
	return nil
}

// cmdConfig writes the effective configuration, after file and flags are
// applied, to -o or to the user config directory.
func cmdConfig(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	var flags config.Flags
	flags.Register(fs)
	output := fs.String("o", "", "Output file (default: user config directory)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(&flags)
	if err != nil {
		return err
	}

	path := *output
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.yaml")
		err = cfg.Save()
	} else {
		err = cfg.SaveTo(path)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Config written: %s\n", path)
	return nil
}

func findTile(tiles []*terrain.Tile, name string) *terrain.Tile {
	for _, t := range tiles {
		if t.Name == name {
			return t
		}
	}
	return nil
}
