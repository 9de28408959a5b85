package bitstream

import (
	"bufio"
	"io"
	"iter"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// DefaultField is the log key that carries a bit.
const DefaultField = "Items"

// Matcher recognizes the bit field in a log line.
type Matcher struct {
	field string
	re    *regexp.Regexp
}

// NewMatcher creates a matcher for lines containing "<field>: 0" or
// "<field>: 1". The field may appear anywhere in the line and the colon
// may be followed by any amount of whitespace. An empty field selects
// DefaultField.
func NewMatcher(field string) *Matcher {
	if field == "" {
		field = DefaultField
	}
	return &Matcher{
		field: field,
		re:    regexp.MustCompile(regexp.QuoteMeta(field) + `:\s*([01])`),
	}
}

// Field returns the key the matcher looks for.
func (m *Matcher) Field() string {
	return m.field
}

// Match reports whether line carries a bit and returns it.
func (m *Matcher) Match(line string) (Bit, bool) {
	sub := m.re.FindStringSubmatch(line)
	if sub == nil {
		return 0, false
	}
	return Bit(sub[1][0] - '0'), true
}

// Bits filters lines down to those carrying a bit and maps them to the bit.
// The returned sequence is lazy and can be ranged over again whenever
// lines can.
func Bits(lines iter.Seq[string], m *Matcher) iter.Seq[Bit] {
	return func(yield func(Bit) bool) {
		for line := range lines {
			b, ok := m.Match(line)
			if !ok {
				continue
			}
			if !yield(b) {
				return
			}
		}
	}
}

// Decoded holds the two co-derived outputs of a decode pass.
type Decoded struct {
	Bits   []Bit
	ASCII  string
	Packed []byte
}

// Len returns the number of decoded bits.
func (d *Decoded) Len() int {
	return len(d.Bits)
}

// Bitstream returns the decoded bits as a stream.
// It fails with ErrEmptyInput when no line matched.
func (d *Decoded) Bitstream() (*Bitstream, error) {
	if len(d.Bits) == 0 {
		return nil, ErrEmptyInput
	}
	return &Bitstream{Bits: d.Bits}, nil
}

// Decode runs lines through the matcher and builds the ASCII and packed
// forms in a single pass. A nil matcher uses DefaultField.
func Decode(lines iter.Seq[string], m *Matcher) *Decoded {
	if m == nil {
		m = NewMatcher(DefaultField)
	}

	var (
		bits  []Bit
		ascii strings.Builder
		p     packer
	)
	for b := range Bits(lines, m) {
		bits = append(bits, b)
		ascii.WriteByte('0' + byte(b))
		p = p.push(b)
	}

	return &Decoded{
		Bits:   bits,
		ASCII:  ascii.String(),
		Packed: p.flush(),
	}
}

// DecodeReader decodes a log read from r. Lines have no length limit;
// a line of any length that does not carry a bit is skipped.
func DecodeReader(r io.Reader, m *Matcher) (*Decoded, error) {
	br := bufio.NewReader(r)

	var readErr error
	lines := func(yield func(string) bool) {
		for {
			line, err := br.ReadString('\n')
			if line != "" && !yield(strings.TrimRight(line, "\r\n")) {
				return
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr = err
				}
				return
			}
		}
	}

	d := Decode(lines, m)
	if readErr != nil {
		return nil, errors.Wrap(readErr, "reading log")
	}
	return d, nil
}
