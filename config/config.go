// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// AssemblyConfig is the settings for a single assembly iteration. It is
// passed by value into each region driver; drivers never reach back into
// process-wide state.
type AssemblyConfig struct {
	// K is the de Bruijn graph k-mer size
	K int `mapstructure:"k"`

	// MaxContigs is the maximum number of contigs per assembly iteration
	MaxContigs int `mapstructure:"max-contigs"`

	// MaxPathNodes caps the path-builder nodes visited per emission;
	// 0 leaves the budget unbounded
	MaxPathNodes int `mapstructure:"max-path-nodes"`

	// AllowRefKmerReuse lets reference k-mers support multiple contigs
	// within one iteration
	AllowRefKmerReuse bool `mapstructure:"allow-ref-kmer-reuse"`

	// BranchingFactor caps the successors visited at each k-mer branch;
	// 0 is unbounded and 1 is a pure greedy traversal
	BranchingFactor int `mapstructure:"branching-factor"`

	// AssemblyMargin, in multiples of FragmentSize, is how far past a
	// candidate's end position upstream evidence must have been seeded
	// before the candidate is committed
	AssemblyMargin float64 `mapstructure:"assembly-margin"`

	// MaxWidth, in multiples of FragmentSize, bounds the positional extent
	// of any single assembly subgraph
	MaxWidth float64 `mapstructure:"max-width"`

	// FragmentSize is the maximum expected read fragment size
	FragmentSize int `mapstructure:"fragment-size"`

	// MinReads is the minimum supporting read count for an assembly to
	// pass the acceptance filter
	MinReads int `mapstructure:"min-reads"`

	// WriteFiltered surfaces rejected candidates to the emission callback
	// instead of discarding them
	WriteFiltered bool `mapstructure:"write-filtered"`
}

// Config is the root-level settings struct, a mix of settings available in
// settings.yaml and those available from the command line
type Config struct {
	// Assembly is the traversal and filter settings
	Assembly AssemblyConfig `mapstructure:"assembly"`

	// Verbose enables debug logging
	Verbose bool `mapstructure:"verbose"`
}

// SetDefaults registers the default settings with viper. Called once from
// the cmd layer before flags are bound.
func SetDefaults() {
	viper.SetDefault("assembly.k", 25)
	viper.SetDefault("assembly.max-contigs", 1024)
	viper.SetDefault("assembly.max-path-nodes", 100000)
	viper.SetDefault("assembly.allow-ref-kmer-reuse", true)
	viper.SetDefault("assembly.branching-factor", 0)
	viper.SetDefault("assembly.assembly-margin", 2.5)
	viper.SetDefault("assembly.max-width", 100)
	viper.SetDefault("assembly.fragment-size", 500)
	viper.SetDefault("assembly.min-reads", 3)
	viper.SetDefault("assembly.write-filtered", false)
}

// New returns a new Config struct populated by Viper settings (either from
// the local settings.yaml) and/or command line arguments
func New() Config {
	var c Config

	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into config: %v", err)
	}

	return c
}
