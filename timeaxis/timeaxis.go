// Package timeaxis maps autocorrelation lags to time offsets.
//
// A lag of k samples taken at a sampling frequency fs is k/fs seconds
// apart. ChooseUnit picks the unit that keeps the longest offset on the
// axis readable:
//
//	axis, err := timeaxis.FromClockMHz(512, 1) // 512 lags at 1 MHz
//	axis.Unit.Label      // "µs"
//	axis.LagToTime(512)  // 512
//	axis.TimeToLag(256)  // 256
package timeaxis

import (
	"math"

	"github.com/cockroachdb/errors"
)

// ErrInvalidFrequency is returned for a sampling frequency that is not a
// positive finite number.
var ErrInvalidFrequency = errors.New("timeaxis: sampling frequency must be positive")

// Unit is a time unit with its scale factor from seconds.
type Unit struct {
	Label string
	Scale float64
}

// Units in selection order. Each entry applies while the span is below Max.
var units = []struct {
	Max float64
	Unit
}{
	{1e-6, Unit{"ns", 1e9}},
	{1e-3, Unit{"µs", 1e6}},
	{1.0, Unit{"ms", 1e3}},
	{math.Inf(1), Unit{"s", 1}},
}

// ChooseUnit selects the unit for a span of maxLag samples at fsHz.
// The first unit whose upper bound exceeds the span wins.
func ChooseUnit(maxLag int, fsHz float64) Unit {
	span := float64(maxLag) / fsHz
	for _, u := range units {
		if span < u.Max {
			return u.Unit
		}
	}
	return units[len(units)-1].Unit
}

// Axis converts between lags and time offsets in a chosen unit.
type Axis struct {
	Unit   Unit
	FreqHz float64
}

// New creates an axis for lags 0..maxLag sampled at fsHz.
func New(maxLag int, fsHz float64) (*Axis, error) {
	if fsHz <= 0 || math.IsNaN(fsHz) || math.IsInf(fsHz, 0) {
		return nil, errors.Wrapf(ErrInvalidFrequency, "got %g Hz", fsHz)
	}
	return &Axis{
		Unit:   ChooseUnit(maxLag, fsHz),
		FreqHz: fsHz,
	}, nil
}

// FromClockMHz creates an axis from an RNG clock given in MHz.
func FromClockMHz(maxLag int, mhz float64) (*Axis, error) {
	return New(maxLag, mhz*1e6)
}

// LagToTime converts a lag in samples to a time offset in the axis unit.
func (a *Axis) LagToTime(k float64) float64 {
	return (k / a.FreqHz) * a.Unit.Scale
}

// TimeToLag converts a time offset in the axis unit back to samples.
func (a *Axis) TimeToLag(t float64) float64 {
	return (t / a.Unit.Scale) * a.FreqHz
}

// Label returns the axis caption, e.g. "Time offset [µs]".
func (a *Axis) Label() string {
	return "Time offset [" + a.Unit.Label + "]"
}
