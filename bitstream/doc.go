// Package bitstream decodes hardware RNG logs into bit sequences.
//
// A log is line oriented. Lines carrying a keyed bit field such as
// "Items: 1" contribute one bit each; every other line is ignored.
// The decoder produces two views of the same bits: an ASCII rendering
// ('0'/'1' per bit) and a packed byte form (MSB first, final byte
// zero padded).
//
// # Decoding
//
// Decode lines held in memory:
//
//	m := bitstream.NewMatcher("Items")
//	d := bitstream.Decode(slices.Values(lines), m)
//	fmt.Println(d.ASCII)       // "1011"
//	fmt.Printf("%x\n", d.Packed) // "b0"
//
// Or read a log file directly:
//
//	d, err := bitstream.LoadLog("data/input/1.txt", nil)
//
// # Working with streams
//
// Decoded.Bitstream rejects empty input with ErrEmptyInput, so analysis
// code never sees a zero-length stream:
//
//	bs, err := d.Bitstream()
//	if errors.Is(err, bitstream.ErrEmptyInput) {
//	    // nothing matched
//	}
//
// # Packing
//
// Pack and Unpack convert between bits and bytes:
//
//	packed := bitstream.Pack(bs.Bits)
//	bits := bitstream.Unpack(packed) // len(bits) == 8*len(packed)
//
// # Files
//
// ASCII and packed outputs can be written and read back:
//
//	bitstream.SaveASCII("out/1.txt", d.Bits)
//	bitstream.SavePacked("out/1.bin", d.Packed)
//	bs, err := bitstream.LoadASCII("out/1.txt")
//	packed, err := bitstream.LoadPacked("out/1.bin")
package bitstream
