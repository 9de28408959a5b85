package bitstream

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Options holds options for decoding and writing bit files.
type Options struct {
	Field     string // Log key carrying the bit (default: "Items")
	ASCIIExt  string // Extension of ASCII outputs (default: ".txt")
	BinaryExt string // Extension of packed outputs (default: ".bin")
}

// DefaultOptions returns the default file options.
func DefaultOptions() *Options {
	return &Options{
		Field:     DefaultField,
		ASCIIExt:  ".txt",
		BinaryExt: ".bin",
	}
}

// LoadLog decodes the log file at filename.
func LoadLog(filename string, opts *Options) (*Decoded, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening log %s", filename)
	}
	defer file.Close()

	d, err := DecodeReader(file, NewMatcher(opts.Field))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", filename)
	}
	return d, nil
}

// LoadASCII reads an ASCII bit file. It fails with ErrEmptyInput when the
// file holds no '0' or '1' characters.
func LoadASCII(filename string) (*Bitstream, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	bs := ParseASCII(string(data))
	if bs.Len() == 0 {
		return nil, errors.Wrapf(ErrEmptyInput, "%s", filename)
	}
	bs.Name = filename
	return bs, nil
}

// LoadPacked reads a packed binary file.
func LoadPacked(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	return data, nil
}

// SaveASCII writes bits to filename as '0'/'1' characters with no separators.
func SaveASCII(filename string, bits []Bit) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating %s", filename)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, b := range bits {
		writer.WriteByte('0' + byte(b))
	}
	if err := writer.Flush(); err != nil {
		return errors.Wrapf(err, "writing %s", filename)
	}
	return file.Close()
}

// SavePacked writes packed bytes to filename.
func SavePacked(filename string, packed []byte) error {
	if err := os.WriteFile(filename, packed, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", filename)
	}
	return nil
}

// OutputPaths maps an input log to its ASCII and packed output paths,
// keeping the base name: data/input/1.txt becomes <asciiDir>/1.txt and
// <binaryDir>/1.bin.
func OutputPaths(input, asciiDir, binaryDir string, opts *Options) (asciiPath, binaryPath string) {
	if opts == nil {
		opts = DefaultOptions()
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(asciiDir, base+opts.ASCIIExt), filepath.Join(binaryDir, base+opts.BinaryExt)
}
