package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/Neumenon/numhash/internal/source"
	"github.com/Neumenon/numhash/numhash"
)

const (
	flagPrecision = "precision"
	flagMaxDepth  = "max-depth"
	flagFormat    = "format"
	flagJobs      = "jobs"
	flagPack      = "pack-arrays"
	flagPlain     = "plain"
)

// Config is the CLI configuration. It is read from the --config YAML file
// and then overridden by any flag set on the command line.
//
//	precision_bits: 12
//	max_depth: 512
//	format: auto
//	pack_arrays: false
//	extended: true
//	jobs: 4
type Config struct {
	PrecisionBits uint   `yaml:"precision_bits"`
	MaxDepth      int    `yaml:"max_depth"`
	Format        string `yaml:"format"`
	PackArrays    bool   `yaml:"pack_arrays"`
	Extended      bool   `yaml:"extended"`
	Jobs          int    `yaml:"jobs"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		PrecisionBits: numhash.DefaultPrecisionBits,
		MaxDepth:      numhash.DefaultMaxDepth,
		Format:        source.FormatAuto.String(),
		Extended:      true,
		Jobs:          runtime.GOMAXPROCS(0),
	}
}

// LoadConfig reads a YAML config file. Keys missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// applyFlags copies explicitly set flags over the config. Flags left at
// their defaults do not override values from the config file.
func (c *Config) applyFlags(fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case flagPrecision:
			c.PrecisionBits, err = fs.GetUint(flagPrecision)
		case flagMaxDepth:
			c.MaxDepth, err = fs.GetInt(flagMaxDepth)
		case flagFormat:
			c.Format, err = fs.GetString(flagFormat)
		case flagJobs:
			c.Jobs, err = fs.GetInt(flagJobs)
		case flagPack:
			c.PackArrays, err = fs.GetBool(flagPack)
		case flagPlain:
			var plain bool
			plain, err = fs.GetBool(flagPlain)
			c.Extended = !plain
		}
	})
	return err
}

// Validate checks the resolved configuration.
func (c Config) Validate() error {
	if err := c.HashOptions().Validate(); err != nil {
		return err
	}
	if _, err := source.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.Jobs < 1 {
		return errors.New("jobs must be at least 1")
	}
	return nil
}

// HashOptions returns the hashing options.
func (c Config) HashOptions() numhash.Options {
	return numhash.Options{PrecisionBits: c.PrecisionBits, MaxDepth: c.MaxDepth}
}

// BridgeOptions returns the document conversion options.
func (c Config) BridgeOptions() numhash.BridgeOpts {
	return numhash.BridgeOpts{
		Extended:   c.Extended,
		PackArrays: c.PackArrays,
		MaxDepth:   c.MaxDepth,
	}
}
