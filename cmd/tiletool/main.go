// tiletool is a CLI utility for inspecting terrain tile sets and blending
// their vertex weight fields across tile seams.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// errUsage marks an invocation with missing arguments.
var errUsage = errors.New("usage")

func run(command string, args []string, out io.Writer) error {
	switch command {
	case "info":
		return cmdInfo(args, out)
	case "relations", "rel":
		return cmdRelations(args, out)
	case "borders":
		return cmdBorders(args, out)
	case "bleed":
		return cmdBleed(args, out)
	case "splat":
		return cmdSplat(args, out)
	case "strip":
		return cmdStrip(args, out)
	case "grade":
		return cmdGrade(args, out)
	case "rename":
		return cmdRename(args, out)
	case "grid":
		return cmdGrid(args, out)
	case "config":
		return cmdConfig(args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `tiletool - terrain tile set utility

Usage:
  tiletool <command> [options] <tiles.yaml>

Commands:
  info <tiles.yaml>                 Show tiles, bounds and weight fields
  relations <tiles.yaml> [tile]     Show left/right/forward/backward neighbors
  borders <tiles.yaml> <tile>       Show border vertex groups of a tile
  bleed [options] <tiles.yaml>      Blend a field across right-hand seams
  splat [options] <tiles.yaml>      Add random circular weight blobs to a field
  strip [options] <tiles.yaml>      Remove border vertices from a field
  grade [options] <tiles.yaml>      Write a linear ramp along left edge loops
  rename [-o out] <tiles.yaml>      Rename .001-.004 tiles to chess cells
  grid [options] -o <tiles.yaml>    Generate a lattice tile set
  config [options] [-o file]        Write the effective config

Common options:
  -config <file>   Config file (default ./tiletool.yaml or user config dir)
  -field <name>    Weight field to operate on
  -seed <n>        Random seed, 0 = time based
  -order <order>   Bleed order: input or left-to-right
  -debug           Enable debug logging
  -o <file>        Write the result here instead of in place

Examples:
  tiletool grid -cols 2 -rows 2 -segments 8 -o tiles.yaml
  tiletool splat -field moisture -seed 7 tiles.yaml
  tiletool bleed -field moisture -order left-to-right -o bled.yaml tiles.yaml
  tiletool relations tiles.yaml Terrain.001
  tiletool config -field moisture -order left-to-right -o tiletool.yaml`)
}
