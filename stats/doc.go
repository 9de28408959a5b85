// Package stats provides statistical analysis of RNG bitstreams.
//
// This package includes the normalized autocorrelation engine, the basic
// bias/entropy/lag-correlation summary used for quick quality checks, and
// whiteness tests built on the autocorrelation series.
//
// # Autocorrelation
//
// Compute the normalized autocorrelation for lags 0..maxLag:
//
//	acf, err := stats.Autocorrelate(bs, 512)
//	// acf[0] == 1 for any stream with both 0s and 1s
//
// maxLag is clamped to n-1. A constant stream has no measurable
// correlation and yields a series of zeros rather than an error.
//
// For long streams the FFT variant gives the same values in O(n log n):
//
//	acf, err := stats.AutocorrelateFFT(bs, 4096)
//
// Flag lags outside the 95% white-noise bound:
//
//	result, _ := stats.ACFWithConfidence(bs, 100, stats.AutocorrelateFFT)
//	significant := result.Significant()
//
// Partial autocorrelation strips the effect of shorter lags, so a single
// dependency at lag k shows up at k alone:
//
//	pacf, _ := stats.PACFWithConfidence(bs, 100)
//
// # Basic Parameters
//
// Summarize a packed byte stream:
//
//	basic, err := stats.Analyze(packed)
//	fmt.Printf("bias=%f entropy=%f max autocorr=%f\n",
//	    basic.Bias, basic.Entropy, basic.MaxAbsAutocorr)
//
// # Whiteness Tests
//
//	lb, _ := stats.LjungBox(bs, stats.WhitenessLags, 0)
//	if lb.PValue < 0.05 {
//	    // significant autocorrelation up to lag 10
//	}
//
//	bp, _ := stats.BoxPierce(bs, stats.WhitenessLags, 0)
//
// Every entry point returns bitstream.ErrEmptyInput for an empty stream.
package stats
