// Package bitstream provides bit sequence types and the log decoder.
package bitstream

import (
	"strings"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptyInput is returned when a stream has no bits to analyze.
var ErrEmptyInput = errors.New("bitstream: no bits in input")

// Bit is a single binary sample, 0 or 1.
type Bit uint8

// Bitstream is an ordered sequence of bits.
type Bitstream struct {
	Bits []Bit
	Name string
}

// New creates a bitstream from bits. Values other than 0 are stored as 1.
func New(bits []Bit) *Bitstream {
	normalized := make([]Bit, len(bits))
	for i, b := range bits {
		if b != 0 {
			normalized[i] = 1
		}
	}
	return &Bitstream{Bits: normalized}
}

// ParseASCII builds a bitstream from '0' and '1' characters.
// Any other character, including whitespace and newlines, is skipped.
func ParseASCII(s string) *Bitstream {
	bits := make([]Bit, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			bits = append(bits, 0)
		case '1':
			bits = append(bits, 1)
		}
	}
	return &Bitstream{Bits: bits}
}

// Len returns the number of bits.
func (b *Bitstream) Len() int {
	return len(b.Bits)
}

// Values returns the bits as float64 samples.
func (b *Bitstream) Values() []float64 {
	return Floats(b.Bits)
}

// Mean returns the fraction of 1 bits.
func (b *Bitstream) Mean() float64 {
	if len(b.Bits) == 0 {
		return 0
	}
	return stat.Mean(b.Values(), nil)
}

// Variance returns the population variance of the bits.
func (b *Bitstream) Variance() float64 {
	if len(b.Bits) == 0 {
		return 0
	}
	_, variance := stat.PopMeanVariance(b.Values(), nil)
	return variance
}

// Ones counts the 1 bits.
func (b *Bitstream) Ones() int {
	n := 0
	for _, bit := range b.Bits {
		n += int(bit)
	}
	return n
}

// ASCII renders the bits as consecutive '0'/'1' characters.
func (b *Bitstream) ASCII() string {
	return ASCII(b.Bits)
}

// Pack returns the packed byte form of the stream.
func (b *Bitstream) Pack() []byte {
	return Pack(b.Bits)
}

// Floats converts bits to float64 samples.
func Floats(bits []Bit) []float64 {
	values := make([]float64, len(bits))
	for i, b := range bits {
		values[i] = float64(b)
	}
	return values
}

// ASCII renders bits as consecutive '0'/'1' characters.
func ASCII(bits []Bit) string {
	var sb strings.Builder
	sb.Grow(len(bits))
	for _, b := range bits {
		sb.WriteByte('0' + byte(b))
	}
	return sb.String()
}
