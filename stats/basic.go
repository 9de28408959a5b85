package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/bitcorr/bitstream"
)

// BankSize is the number of lags in the basic lag-correlation bank.
const BankSize = 100

// Basic holds the basic quality parameters of a packed stream.
type Basic struct {
	Bits           int       // Unpacked bit count, padding included
	P1             float64   // Fraction of 1 bits
	Bias           float64   // |P1 - 0.5|
	Entropy        float64   // Shannon entropy in bits per bit
	MaxAbsAutocorr float64   // Largest |Autocorr[i]|
	Autocorr       []float64 // Pearson correlation at lags 1..BankSize
}

// Analyze computes bias, entropy and the lag-correlation bank of a packed
// stream. All bits of every byte are used, so padding in the final byte
// counts as zeros.
func Analyze(packed []byte) (*Basic, error) {
	if len(packed) == 0 {
		return nil, bitstream.ErrEmptyInput
	}

	x := bitstream.Floats(bitstream.Unpack(packed))
	p1 := stat.Mean(x, nil)
	ac := LagCorrelations(x, BankSize)

	maxAbs := 0.0
	for _, c := range ac {
		maxAbs = math.Max(maxAbs, math.Abs(c))
	}

	return &Basic{
		Bits:           len(x),
		P1:             p1,
		Bias:           Bias(p1),
		Entropy:        Entropy(p1),
		MaxAbsAutocorr: maxAbs,
		Autocorr:       ac,
	}, nil
}

// Bias returns the deviation of p1 from an unbiased 0.5.
func Bias(p1 float64) float64 {
	return math.Abs(p1 - 0.5)
}

// Entropy returns the Shannon entropy of a binary source emitting 1 with
// probability p1. 0*log2(0) is taken as 0, so p1 of 0 or 1 gives 0.
func Entropy(p1 float64) float64 {
	if p1 <= 0 || p1 >= 1 {
		return 0
	}
	p0 := 1 - p1
	return -(p1*math.Log2(p1) + p0*math.Log2(p0))
}

// LagCorrelations returns the Pearson correlation between x[:n-i] and x[i:]
// for i = 1..lags. Lags at or beyond len(x), and windows where either side
// is constant, contribute 0.
func LagCorrelations(x []float64, lags int) []float64 {
	n := len(x)
	ac := make([]float64, lags)
	for i := 1; i <= lags; i++ {
		if i >= n {
			continue
		}
		c := stat.Correlation(x[:n-i], x[i:], nil)
		if math.IsNaN(c) || math.IsInf(c, 0) {
			c = 0
		}
		ac[i-1] = c
	}
	return ac
}
