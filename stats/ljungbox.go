package stats

import (
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/bitcorr/bitstream"
)

// ErrTooShort is returned when a stream is too short for a whiteness test.
var ErrTooShort = errors.New("stats: stream too short for test")

// minTestLen is the shortest stream a portmanteau test accepts.
const minTestLen = 10

// WhitenessLags is the number of lags the pipeline tests for whiteness.
const WhitenessLags = 10

// LjungBoxResult represents the result of a Ljung-Box test.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int // Degrees of freedom
}

// LjungBox performs the Ljung-Box test for autocorrelation in a bitstream.
// The null hypothesis is that there is no autocorrelation up to lag h.
// If p-value < 0.05, we reject the null and conclude the bits are correlated.
// fitdf is the number of fitted parameters to subtract from the degrees of
// freedom; it is 0 for raw RNG output.
func LjungBox(bs *bitstream.Bitstream, lags, fitdf int) (*LjungBoxResult, error) {
	rho, n, lags, err := portmanteauACF(bs, lags)
	if err != nil {
		return nil, err
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += (rho[k] * rho[k]) / float64(n-k)
	}
	q *= float64(n * (n + 2))

	dof := degreesOfFreedom(lags, fitdf)
	return &LjungBoxResult{
		Statistic: q,
		PValue:    chiSquaredSurvival(q, dof),
		Lags:      lags,
		DOF:       dof,
	}, nil
}

// BoxPierceResult represents the result of a Box-Pierce test.
type BoxPierceResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int
}

// BoxPierce performs the Box-Pierce test for autocorrelation.
// Similar to Ljung-Box but with a simpler formula.
func BoxPierce(bs *bitstream.Bitstream, lags, fitdf int) (*BoxPierceResult, error) {
	rho, n, lags, err := portmanteauACF(bs, lags)
	if err != nil {
		return nil, err
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += rho[k] * rho[k]
	}
	q *= float64(n)

	dof := degreesOfFreedom(lags, fitdf)
	return &BoxPierceResult{
		Statistic: q,
		PValue:    chiSquaredSurvival(q, dof),
		Lags:      lags,
		DOF:       dof,
	}, nil
}

// portmanteauACF returns the biased sample autocorrelation the portmanteau
// statistics are defined on.
func portmanteauACF(bs *bitstream.Bitstream, lags int) ([]float64, int, int, error) {
	if bs == nil || bs.Len() == 0 {
		return nil, 0, 0, bitstream.ErrEmptyInput
	}
	n := bs.Len()
	if n < minTestLen {
		return nil, 0, 0, errors.Wrapf(ErrTooShort, "%d bits", n)
	}
	if lags < 1 {
		return nil, 0, 0, errors.Newf("stats: lags must be positive, got %d", lags)
	}
	if lags >= n {
		lags = n - 1
	}

	acf, err := biasedACF(bs, lags)
	if err != nil {
		return nil, 0, 0, err
	}
	return acf, n, lags, nil
}

func degreesOfFreedom(lags, fitdf int) int {
	dof := lags - fitdf
	if dof < 1 {
		dof = 1
	}
	return dof
}

// chiSquaredSurvival returns P(X > x) for a chi-squared variable with k
// degrees of freedom.
func chiSquaredSurvival(x float64, k int) float64 {
	if x <= 0 {
		return 1
	}
	return distuv.ChiSquared{K: float64(k)}.Survival(x)
}
