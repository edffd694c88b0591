package hashfinder

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// A self-contained SHA-256 (FIPS 180-4). Nothing here defers to crypto/sha256; the compression
// function, message schedule and padding are all computed below.

const (
	Size      = 32
	BlockSize = 64
	lenOffset = BlockSize - 8 /* Where the bit-length trailer begins in the final block. */
)

var iv = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a, 0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var roundConstants = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

type digest struct {
	h     [8]uint32
	read  uint64 /* bytes written since Reset */
	carry []byte /* incomplete trailing block, never a full one */
}

// New returns a streaming SHA-256 hash.Hash backed by the same compressor as Sum256.
func New() hash.Hash {
	d := &digest{carry: make([]byte, 0, BlockSize)}
	d.Reset()
	return d
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return BlockSize }

func (d *digest) Reset() {
	d.h, d.read, d.carry = iv, 0, d.carry[:0]
}

func (d *digest) Write(buf []byte) (int, error) {
	count := len(buf)
	d.read += uint64(count)
	if len(d.carry) > 0 {
		fill := BlockSize - len(d.carry)
		if len(buf) < fill {
			d.carry = append(d.carry, buf...)
			return count, nil
		}
		d.carry = append(d.carry, buf[:fill]...)
		compress(&d.h, d.carry)
		d.carry, buf = d.carry[:0], buf[fill:]
	}

	whole := len(buf) - len(buf)%BlockSize
	compress(&d.h, buf[:whole])
	d.carry = append(d.carry, buf[whole:]...)
	return count, nil
}

// Sum appends the current digest to buf. The running state is left untouched, so writing may
// continue afterwards.
func (d *digest) Sum(buf []byte) []byte {
	sum := finish(d.h, d.carry, d.read)
	return append(buf, sum[:]...)
}

// Sum256 returns the SHA-256 digest of msg.
func Sum256(msg []byte) [Size]byte {
	h := iv
	whole := len(msg) - len(msg)%BlockSize
	compress(&h, msg[:whole])
	return finish(h, msg[whole:], uint64(len(msg)))
}

/* finish pads tail (fewer than 64 bytes) with a 1 bit, zeros and the 64-bit message length in
bits, compresses the one or two blocks that result into a copy of h, and serializes it. */
func finish(h [8]uint32, tail []byte, read uint64) [Size]byte {
	var last [2 * BlockSize]byte
	n := copy(last[:], tail)
	last[n] = 0x80

	end := BlockSize
	if n >= lenOffset {
		end += BlockSize
	}
	binary.BigEndian.PutUint64(last[end-8:end], read<<3)
	compress(&h, last[:end])

	var sum [Size]byte
	for i, v := range h {
		binary.BigEndian.PutUint32(sum[i*4:], v)
	}
	return sum
}

/* compress runs one compression round per 64-byte block of p; len(p) must be a multiple of 64. */
func compress(h *[8]uint32, p []byte) {
	var w [64]uint32
	h0, h1, h2, h3, h4, h5, h6, h7 := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]

	for len(p) >= BlockSize {
		for i := 0; i < 16; i++ {
			w[i] = binary.BigEndian.Uint32(p[i<<2:])
		}
		for i := 16; i < 64; i++ {
			v1, v2 := w[i-2], w[i-15]
			s1 := bits.RotateLeft32(v1, -17) ^ bits.RotateLeft32(v1, -19) ^ v1>>10
			s0 := bits.RotateLeft32(v2, -7) ^ bits.RotateLeft32(v2, -18) ^ v2>>3
			w[i] = s1 + w[i-7] + s0 + w[i-16]
		}

		a, b, c, e, f, g, hh := h0, h1, h2, h4, h5, h6, h7
		dd := h3
		for i := 0; i < 64; i++ {
			t1 := hh + (bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)) +
				((e & f) ^ (^e & g)) + roundConstants[i] + w[i]
			t2 := (bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)) +
				((a & b) ^ (a & c) ^ (b & c))

			/* The eight working words shift down by one each round. */
			hh, g, f = g, f, e
			e = dd + t1
			dd, c, b = c, b, a
			a = t1 + t2
		}

		h0 += a
		h1 += b
		h2 += c
		h3 += dd
		h4 += e
		h5 += f
		h6 += g
		h7 += hh

		p = p[BlockSize:]
	}

	h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7] = h0, h1, h2, h3, h4, h5, h6, h7
}
