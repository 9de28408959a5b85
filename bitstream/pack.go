package bitstream

import "iter"

// packer is the fold state for packing bits MSB first.
type packer struct {
	out []byte
	acc byte
	n   uint8 // bits held in acc
}

// push folds one bit into the state, emitting a byte once 8 bits are held.
func (p packer) push(b Bit) packer {
	p.acc = p.acc<<1 | byte(b&1)
	p.n++
	if p.n == 8 {
		p.out = append(p.out, p.acc)
		p.acc, p.n = 0, 0
	}
	return p
}

// flush emits the pending bits left aligned, low bits zero filled.
func (p packer) flush() []byte {
	if p.n == 0 {
		return p.out
	}
	return append(p.out, p.acc<<(8-p.n))
}

// PackSeq packs a sequence of bits into bytes.
func PackSeq(bits iter.Seq[Bit]) []byte {
	var p packer
	for b := range bits {
		p = p.push(b)
	}
	return p.flush()
}

// Pack packs bits into ceil(len(bits)/8) bytes, MSB first.
// The unused low bits of the final byte are zero.
func Pack(bits []Bit) []byte {
	p := packer{out: make([]byte, 0, (len(bits)+7)/8)}
	for _, b := range bits {
		p = p.push(b)
	}
	return p.flush()
}

// Unpack expands bytes to bits, MSB first. Padding bits in the final
// byte are returned as zeros since the original bit count is not stored.
func Unpack(packed []byte) []Bit {
	bits := make([]Bit, 0, len(packed)*8)
	for _, b := range packed {
		for i := 7; i >= 0; i-- {
			bits = append(bits, Bit((b>>i)&1))
		}
	}
	return bits
}

// UnpackSeq yields the bits of packed lazily, MSB first.
func UnpackSeq(packed []byte) iter.Seq[Bit] {
	return func(yield func(Bit) bool) {
		for _, b := range packed {
			for i := 7; i >= 0; i-- {
				if !yield(Bit((b >> i) & 1)) {
					return
				}
			}
		}
	}
}
