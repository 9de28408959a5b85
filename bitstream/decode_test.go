package bitstream

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
	"testing/iotest"
)

func TestMatcher(t *testing.T) {
	m := NewMatcher("")

	tests := []struct {
		line string
		bit  Bit
		ok   bool
	}{
		{"Items: 1", 1, true},
		{"Items: 0", 0, true},
		{"Items:1", 1, true},
		{"Items:\t0", 0, true},
		{"[12:00:01] sample Items: 1 ok", 1, true},
		{"Items: 2", 0, false},
		{"Items: x", 0, false},
		{"items: 1", 0, false},
		{"Item: 1", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			bit, ok := m.Match(tt.line)
			if ok != tt.ok {
				t.Fatalf("Match(%q) ok = %v, expected %v", tt.line, ok, tt.ok)
			}
			if ok && bit != tt.bit {
				t.Errorf("Match(%q) = %d, expected %d", tt.line, bit, tt.bit)
			}
		})
	}

	if m.Field() != DefaultField {
		t.Errorf("Expected default field %q, got %q", DefaultField, m.Field())
	}
}

func TestMatcherCustomField(t *testing.T) {
	m := NewMatcher("bit.value")
	if _, ok := m.Match("bit.value: 1"); !ok {
		t.Error("Expected custom field to match")
	}
	// The dot is literal, not a wildcard.
	if _, ok := m.Match("bitXvalue: 1"); ok {
		t.Error("Expected field to be quoted")
	}
}

func TestDecode(t *testing.T) {
	lines := []string{
		"boot",
		"Items: 1",
		"noise line",
		"Items: 0",
		"Items: 1",
		"",
		"Items: 1",
		"done",
	}

	d := Decode(slices.Values(lines), nil)

	if d.ASCII != "1011" {
		t.Errorf("Expected ASCII 1011, got %q", d.ASCII)
	}
	if !bytes.Equal(d.Packed, []byte{0xB0}) {
		t.Errorf("Expected packed [b0], got %x", d.Packed)
	}
	if d.Len() != 4 {
		t.Errorf("Expected 4 bits, got %d", d.Len())
	}

	bs, err := d.Bitstream()
	if err != nil {
		t.Fatalf("Bitstream failed: %v", err)
	}
	if bs.ASCII() != d.ASCII {
		t.Errorf("Bitstream %q differs from ASCII %q", bs.ASCII(), d.ASCII)
	}
}

func TestDecodeNoMatches(t *testing.T) {
	d := Decode(slices.Values([]string{"a", "b", "Items: 7"}), nil)

	if d.ASCII != "" || len(d.Packed) != 0 {
		t.Errorf("Expected empty output, got %q / %x", d.ASCII, d.Packed)
	}
	if _, err := d.Bitstream(); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}

func TestBitsRestartable(t *testing.T) {
	lines := slices.Values([]string{"Items: 1", "x", "Items: 0"})
	seq := Bits(lines, NewMatcher(""))

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) || len(first) != 2 {
		t.Errorf("Expected two identical passes of 2 bits, got %v and %v", first, second)
	}
}

func TestDecodeReader(t *testing.T) {
	log := "header\nItems: 1\nItems: 1\r\nItems: 0\nItems: 0\nItems: 1\nItems: 1\nItems: 1\nItems: 1\nItems: 1\n"

	d, err := DecodeReader(strings.NewReader(log), nil)
	if err != nil {
		t.Fatalf("DecodeReader failed: %v", err)
	}
	if d.ASCII != "110011111" {
		t.Errorf("Expected 110011111, got %q", d.ASCII)
	}
	if !bytes.Equal(d.Packed, []byte{0xCF, 0x80}) {
		t.Errorf("Expected cf80, got %x", d.Packed)
	}
}

func TestDecodeReaderLongLines(t *testing.T) {
	noise := strings.Repeat("x", 2<<20)
	log := "Items: 1\n" + noise + "\nItems: 0\nItems: 1\n" + noise + " Items: 1"

	d, err := DecodeReader(strings.NewReader(log), nil)
	if err != nil {
		t.Fatalf("DecodeReader failed on long lines: %v", err)
	}
	if d.ASCII != "1011" {
		t.Errorf("Expected 1011, got %q", d.ASCII)
	}
}

func TestDecodeReaderError(t *testing.T) {
	failing := io.MultiReader(strings.NewReader("Items: 1\n"), iotest.ErrReader(errDisk))

	if _, err := DecodeReader(failing, nil); !errors.Is(err, errDisk) {
		t.Errorf("Expected read error, got %v", err)
	}
}

var errDisk = errors.New("disk failure")
