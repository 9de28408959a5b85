// Package bitcorr analyzes bitstreams produced by hardware random number sources.
//
// bitcorr decodes line-oriented RNG logs into bits, packs them for external
// test suites, and measures their statistical quality with normalized
// autocorrelation, bias, Shannon entropy and whiteness tests.
//
// # Features
//
//   - Permissive log decoding to ASCII and packed (MSB first) forms
//   - Normalized autocorrelation, direct or FFT based
//   - Bias, entropy and a 100-lag Pearson correlation bank
//   - Ljung-Box and Box-Pierce whiteness tests
//   - Lag to time conversion for a given RNG clock
//   - Autocorrelation plots and external suite runs (ent, dieharder)
//
// # Quick Start
//
// Decode a log and compute its autocorrelation:
//
//	d, err := bitstream.LoadLog("data/input/1.txt", nil)
//	bs, err := d.Bitstream()
//	acf, err := stats.Autocorrelate(bs, 512)
//
// Basic parameters of the packed form:
//
//	basic, err := stats.Analyze(d.Packed)
//
// Time axis for a 1 MHz RNG clock:
//
//	axis, err := timeaxis.FromClockMHz(len(acf)-1, 1)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - bitstream: bit types, log decoding, packing and bit files
//   - stats: autocorrelation, basic parameters and whiteness tests
//   - timeaxis: lag to time unit selection and conversion
//   - render: autocorrelation plots with gonum/plot
//   - suite: external statistical test suites as child processes
//   - analysis: the per-file pipeline and concurrent batches
//   - log: logrus formatters
package bitcorr
