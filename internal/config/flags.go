package config

import (
	"flag"
	"strconv"
)

// Flags holds the command-line overrides shared by tiletool commands.
type Flags struct {
	Config string
	Debug  bool
	Field  string
	Order  string

	seed    int64
	seedSet bool
}

// Register adds the shared flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Field, "field", "", "Weight field to operate on")
	fs.StringVar(&f.Order, "order", "", "Bleed order: input or left-to-right")
	fs.Func("seed", "Random seed (0 = time based)", func(s string) error {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		f.seed, f.seedSet = v, true
		return nil
	})
}

// Seed returns the -seed value and whether it was given.
func (f *Flags) Seed() (int64, bool) {
	return f.seed, f.seedSet
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Field != "" {
		cfg.Bleed.Field = f.Field
		cfg.Splat.Field = f.Field
		cfg.Grade.Field = f.Field
		cfg.Strip.Field = f.Field
	}
	if f.Order != "" {
		cfg.Bleed.Order = f.Order
	}
	if seed, ok := f.Seed(); ok {
		cfg.Bleed.Seed = seed
		cfg.Splat.Seed = seed
	}
}
