package hashfinder

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const hexDigits = "0123456789abcdef"

// Digest is a SHA-256 digest stored one nibble per element, high nibble first, so that element i
// corresponds to the i-th character of the digest's hexadecimal rendering.
type Digest [Size * 2]byte

// HashFunction computes the nibble digest of a message.
type HashFunction interface {
	Nibbles(msg []byte) Digest
}

// SHA256 is the HashFunction used by Search.
type SHA256 struct{}

func (SHA256) Nibbles(msg []byte) Digest { return Nibbles(msg) }

// Nibbles hashes msg and splits every byte of the result into its two nibbles.
func Nibbles(msg []byte) Digest {
	sum := Sum256(msg)
	var d Digest
	for i, b := range sum {
		d[i<<1] = b >> 4
		d[i<<1|1] = b & 0x0f
	}
	return d
}

// Bytes packs the nibbles back into the 32-byte digest.
func (d Digest) Bytes() [Size]byte {
	var sum [Size]byte
	for i := range sum {
		sum[i] = d[i<<1]<<4 | d[i<<1|1]
	}
	return sum
}

// HasZeroSuffix reports whether the last n hex characters of d are all '0'. Zero is satisfied by
// every digest; anything longer than the digest never is.
func (d Digest) HasZeroSuffix(n int) bool {
	switch {
	case n <= 0:
		return true
	case n > len(d):
		return false
	}
	for _, v := range d[len(d)-n:] {
		if v != 0 {
			return false
		}
	}
	return true
}

func (d Digest) String() string { return Format(d) }

// Format renders d as 64 lowercase hex characters.
func Format(d Digest) string {
	var buf [len(d)]byte
	for i, v := range d {
		buf[i] = hexDigits[v&0x0f]
	}
	return string(buf[:])
}
