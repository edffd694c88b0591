package hashfinder

import (
	stdsha "crypto/sha256"
	"encoding/hex"
	"strconv"
	"testing"

	"github.com/aead/chacha20/chacha"
	simd "github.com/minio/sha256-simd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keystream returns n deterministic pseudo-random bytes.
func keystream(t testing.TB, n int, seed byte) []byte {
	t.Helper()
	key, nonce := make([]byte, chacha.KeySize), make([]byte, chacha.NonceSize)
	key[0] = seed
	buf := make([]byte, n)
	chacha.XORKeyStream(buf, buf, nonce, key, 20)
	return buf
}

func reference(msg []byte) string {
	sum := simd.Sum256(msg)
	return hex.EncodeToString(sum[:])
}

func TestSum256_KnownVectors(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq",
			"248d6a61d20638b8e5c026930c3e6039a33ce45964ff2167f6ecedd419db06c1"},
	}
	for _, tt := range tests {
		sum := Sum256([]byte(tt.in))
		assert.Equal(t, tt.want, hex.EncodeToString(sum[:]), "input %q", tt.in)
		assert.Equal(t, tt.want, Format(Nibbles([]byte(tt.in))), "input %q", tt.in)
	}
}

func TestSum256_MatchesReference(t *testing.T) {
	strs := []string{"0", "-1", "42", "Hello, world!", "blazingly fast", "инглиш не понимаем",
		"Ё!№jkafd#$", "☺️🙂😊😀😁"}
	for _, s := range strs {
		assert.Equal(t, reference([]byte(s)), Format(Nibbles([]byte(s))), "input %q", s)
	}

	/* Every tail length, both sides of the 55/56 padding split, whole and multiple blocks. */
	lengths := []int{1, 54, 55, 56, 57, 63, 64, 65, 119, 120, 127, 128, 129, 1000, 4096 + 7}
	for i := 0; i < 2*BlockSize; i++ {
		lengths = append(lengths, i)
	}
	for _, n := range lengths {
		msg := keystream(t, n, byte(n))
		want := stdsha.Sum256(msg)
		got := Sum256(msg)
		require.Equal(t, want, got, "length %d", n)
		require.Equal(t, reference(msg), Format(Nibbles(msg)), "length %d", n)
	}
}

func TestNew_Streaming(t *testing.T) {
	msg := keystream(t, 3*BlockSize+17, 7)
	h := New()
	assert.Equal(t, Size, h.Size())
	assert.Equal(t, BlockSize, h.BlockSize())

	/* Uneven write sizes cross block boundaries in every way. */
	for rest, step := msg, 1; len(rest) > 0; step = step*3 + 1 {
		if step > len(rest) {
			step = len(rest)
		}
		_, err := h.Write(rest[:step])
		require.NoError(t, err)
		rest = rest[step:]
	}
	want := stdsha.Sum256(msg)
	assert.Equal(t, want[:], h.Sum(nil))
	assert.Equal(t, want[:], h.Sum(nil), "Sum must not disturb the state")

	h.Reset()
	h.Write([]byte("abc"))
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		hex.EncodeToString(h.Sum(nil)))
}

func TestNew_SumThenContinue(t *testing.T) {
	msg := keystream(t, 2*BlockSize+lenOffset, 11)
	for split := 0; split <= len(msg); split++ {
		h := New()
		h.Write(msg[:split])
		head := stdsha.Sum256(msg[:split])
		require.Equal(t, head[:], h.Sum(nil), "split %d", split)

		h.Write(msg[split:])
		full := stdsha.Sum256(msg)
		require.Equal(t, full[:], h.Sum(nil), "split %d", split)
	}
}

func TestDigest_Nibbles(t *testing.T) {
	d := Nibbles([]byte("abc"))
	for _, v := range d {
		require.Less(t, v, byte(16))
	}
	assert.Equal(t, [4]byte{0xb, 0xa, 0x7, 0x8}, [4]byte{d[0], d[1], d[2], d[3]})
	assert.Equal(t, Sum256([]byte("abc")), d.Bytes())
	assert.Equal(t, Format(d), d.String())
}

func TestDigest_HasZeroSuffix(t *testing.T) {
	var d Digest
	d[len(d)-3] = 0xf

	assert.True(t, d.HasZeroSuffix(0))
	assert.True(t, d.HasZeroSuffix(1))
	assert.True(t, d.HasZeroSuffix(2))
	assert.False(t, d.HasZeroSuffix(3))
	assert.False(t, d.HasZeroSuffix(65))

	var zero Digest
	assert.True(t, zero.HasZeroSuffix(64))
	assert.False(t, zero.HasZeroSuffix(65))
}

func TestSHA256_HashFunction(t *testing.T) {
	var h HashFunction = SHA256{}
	for i := uint64(1); i < 200; i++ {
		msg := strconv.AppendUint(nil, i, 10)
		require.Equal(t, reference(msg), Format(h.Nibbles(msg)))
	}
}
