// Package stats provides statistical tests and functions for bitstream analysis.
package stats

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/bitcorr/bitstream"
)

// ErrNegativeLag is returned when a negative maximum lag is requested.
var ErrNegativeLag = errors.New("stats: negative maximum lag")

// Autocorrelate calculates the normalized autocorrelation of the stream
// for lags 0 to maxLag. Every lag uses the global mean and variance, so the
// value at lag 0 is 1. maxLag is clamped to n-1. A stream with zero variance
// yields maxLag+1 zeros.
func Autocorrelate(bs *bitstream.Bitstream, maxLag int) ([]float64, error) {
	x, maxLag, err := prepare(bs, maxLag)
	if err != nil {
		return nil, err
	}
	n := len(x)

	mean, variance := stat.PopMeanVariance(x, nil)
	acf := make([]float64, maxLag+1)
	if variance == 0 {
		return acf, nil
	}

	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := 0; i < n-k; i++ {
			sum += (x[i] - mean) * (x[i+k] - mean)
		}
		acf[k] = sum / (float64(n-k) * variance)
	}

	return acf, nil
}

// AutocorrelateFFT returns the same series as Autocorrelate, computing the
// lag products with a zero padded real FFT.
func AutocorrelateFFT(bs *bitstream.Bitstream, maxLag int) ([]float64, error) {
	x, maxLag, err := prepare(bs, maxLag)
	if err != nil {
		return nil, err
	}
	n := len(x)

	mean, variance := stat.PopMeanVariance(x, nil)
	acf := make([]float64, maxLag+1)
	if variance == 0 {
		return acf, nil
	}

	// Padding to at least 2n keeps the circular correlation linear.
	m := 1
	for m < 2*n {
		m <<= 1
	}
	centered := make([]float64, m)
	for i, v := range x {
		centered[i] = v - mean
	}

	fft := fourier.NewFFT(m)
	coeff := fft.Coefficients(nil, centered)
	for i, c := range coeff {
		coeff[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}
	sums := fft.Sequence(nil, coeff)

	// sums carries an unknown constant scale; dividing by sums[0] = scale*n*variance removes it.
	for k := 0; k <= maxLag; k++ {
		acf[k] = sums[k] * float64(n) / (float64(n-k) * sums[0])
	}

	return acf, nil
}

func prepare(bs *bitstream.Bitstream, maxLag int) ([]float64, int, error) {
	if bs == nil || bs.Len() == 0 {
		return nil, 0, bitstream.ErrEmptyInput
	}
	if maxLag < 0 {
		return nil, 0, errors.Wrapf(ErrNegativeLag, "max lag %d", maxLag)
	}
	n := bs.Len()
	if maxLag >= n {
		maxLag = n - 1
	}
	return bs.Values(), maxLag, nil
}

// DefaultMaxLag picks a maximum lag for a stream of n bits when the caller
// does not supply one: a tenth of the stream, between 1 and 1024.
func DefaultMaxLag(n int) int {
	return min(1024, max(1, n/10))
}

// PACF calculates the partial autocorrelation of the stream for lags 0 to
// maxLag with the Durbin-Levinson recursion over the biased sample
// autocorrelation. A stream with zero variance yields zeros.
func PACF(bs *bitstream.Bitstream, maxLag int) ([]float64, error) {
	acf, err := biasedACF(bs, maxLag)
	if err != nil {
		return nil, err
	}
	maxLag = len(acf) - 1

	pacf := make([]float64, maxLag+1)
	pacf[0] = acf[0]
	if maxLag == 0 {
		return pacf, nil
	}

	// phi holds the AR(k-1) coefficients, next the AR(k) ones.
	phi := make([]float64, maxLag+1)
	next := make([]float64, maxLag+1)
	phi[1] = acf[1]
	pacf[1] = acf[1]

	for k := 2; k <= maxLag; k++ {
		num := acf[k]
		den := 1.0
		for j := 1; j < k; j++ {
			num -= phi[j] * acf[k-j]
			den -= phi[j] * acf[j]
		}
		if den == 0 {
			break
		}

		next[k] = num / den
		for j := 1; j < k; j++ {
			next[j] = phi[j] - next[k]*phi[k-j]
		}
		pacf[k] = next[k]
		phi, next = next, phi
	}

	return pacf, nil
}

// biasedACF returns the sample autocorrelation with every lag divided by n
// instead of n-k.
func biasedACF(bs *bitstream.Bitstream, maxLag int) ([]float64, error) {
	acf, err := Autocorrelate(bs, maxLag)
	if err != nil {
		return nil, err
	}
	n := float64(bs.Len())
	for k := range acf {
		acf[k] *= (n - float64(k)) / n
	}
	return acf, nil
}

// ACFFunc computes an autocorrelation series for lags 0 to maxLag.
// Autocorrelate, AutocorrelateFFT and PACF all satisfy it.
type ACFFunc func(bs *bitstream.Bitstream, maxLag int) ([]float64, error)

// ACFResult represents the result of autocorrelation analysis.
type ACFResult struct {
	Lags       []int
	Values     []float64
	ConfBounds float64 // 95% confidence bounds (±1.96/sqrt(n))
}

// Significant returns the lags outside the confidence bounds.
func (r *ACFResult) Significant() []int {
	return SignificantLags(r.Values, r.ConfBounds)
}

// ACFWithConfidence runs f over the stream and attaches white-noise
// confidence bounds. A nil f uses Autocorrelate.
func ACFWithConfidence(bs *bitstream.Bitstream, maxLag int, f ACFFunc) (*ACFResult, error) {
	if f == nil {
		f = Autocorrelate
	}
	acf, err := f(bs, maxLag)
	if err != nil {
		return nil, err
	}
	return withConfidence(acf, bs.Len()), nil
}

// PACFResult represents the result of partial autocorrelation analysis.
type PACFResult struct {
	ACFResult
}

// PACFWithConfidence calculates the partial autocorrelation with white-noise
// confidence bounds.
func PACFWithConfidence(bs *bitstream.Bitstream, maxLag int) (*PACFResult, error) {
	pacf, err := PACF(bs, maxLag)
	if err != nil {
		return nil, err
	}
	return &PACFResult{*withConfidence(pacf, bs.Len())}, nil
}

func withConfidence(values []float64, n int) *ACFResult {
	lags := make([]int, len(values))
	for i := range lags {
		lags[i] = i
	}
	return &ACFResult{
		Lags:       lags,
		Values:     values,
		ConfBounds: 1.96 / math.Sqrt(float64(n)),
	}
}

// SignificantLags returns the lags where values exceed the confidence bounds.
func SignificantLags(values []float64, confBound float64) []int {
	var significant []int
	for i := 1; i < len(values); i++ { // Skip lag 0
		if math.Abs(values[i]) > confBound {
			significant = append(significant, i)
		}
	}
	return significant
}
