package analysis

import (
	"github.com/sartorproj/bitcorr/bitstream"
	"github.com/sartorproj/bitcorr/suite"
)

// Config holds configuration for a pipeline run.
type Config struct {
	InputDir   string        // Directory holding RNG logs (default: "data/input")
	InputGlob  string        // Pattern selecting logs in InputDir (default: "*.txt")
	ASCIIDir   string        // ASCII output directory (default: "data/output/ascii")
	BinaryDir  string        // Packed output directory (default: "data/output/binary")
	PlotDir    string        // Plot output directory; empty disables plotting
	PlotFormat string        // Plot image format (default: "png")
	Field      string        // Log key carrying the bit (default: "Items")
	MaxLag     int           // Maximum autocorrelation lag; <= 0 picks stats.DefaultMaxLag
	ClockMHz   float64       // RNG clock in MHz; <= 0 disables the time axis
	UseFFT     bool          // Compute autocorrelation with the FFT variant
	Suites     []suite.Suite // External test suites run on each packed file
	Workers    int           // Files processed concurrently (default: 1)
	KeepGoing  bool          // Record per-file failures instead of stopping the batch
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() *Config {
	return &Config{
		InputDir:   "data/input",
		InputGlob:  "*.txt",
		ASCIIDir:   "data/output/ascii",
		BinaryDir:  "data/output/binary",
		PlotFormat: "png",
		Field:      bitstream.DefaultField,
		MaxLag:     512,
		Suites:     suite.Defaults(),
		Workers:    1,
	}
}

func (c *Config) fileOptions() *bitstream.Options {
	opts := bitstream.DefaultOptions()
	if c.Field != "" {
		opts.Field = c.Field
	}
	return opts
}
