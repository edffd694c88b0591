package main

import (
	stdsha "crypto/sha256"
	"errors"
	. "fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/aead/chacha20/chacha"
	"github.com/dterei/gotsc"
	"github.com/minio/sha256-simd"
	"github.com/p7r0x7/hashfinder"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"golang.org/x/sys/cpu"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

/* 10 bytes is the longest decimal candidate a 32-bit counter produces. */
var sizes = [...]int{10, 64, 512 << 10, 64 << 20}
var bytes, calltime = []byte(nil), gotsc.TSCOverhead()

func BenchmarkHashfinder(b *testing.B) {
	b.SetBytes(int64(len(bytes)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		hashfinder.Sum256(bytes)
	}
}

func BenchmarkStdlib(b *testing.B) {
	b.SetBytes(int64(len(bytes)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		stdsha.Sum256(bytes)
	}
}

func BenchmarkSHA256(b *testing.B) {
	b.SetBytes(int64(len(bytes)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		sha256.Sum256(bytes)
	}
}

func BenchmarkBlake3(b *testing.B) {
	b.SetBytes(int64(len(bytes)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		blake3.Sum256(bytes)
	}
}

func BenchmarkXXH3(b *testing.B) {
	b.SetBytes(int64(len(bytes)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		xxh3.Hash(bytes)
	}
}

/* makeBytes fills a buffer from a fixed ChaCha20 keystream so every run hashes the same data. */
func makeBytes(size int) []byte {
	buf := make([]byte, size)
	key, nonce := make([]byte, chacha.KeySize), make([]byte, chacha.NonceSize)
	chacha.XORKeyStream(buf, buf, nonce, key, 20)
	return buf
}

func benchAlg(alg func(b *testing.B)) {
	const s = len(sizes)
	throughputs, speeds, usages := make([]float64, s), make([]float64, s), make([]float64, s)

	for i, v := range sizes {
		bytes = makeBytes(v)

		totalHz, polls, mut, done := uint64(0), uint64(0), &sync.Mutex{}, make(chan struct{})
		if calltime > 0 {
			go func() {
				for {
					select {
					case <-done:
						return
					default:
					}
					tsc1 := gotsc.BenchStart()
					time.Sleep(time.Millisecond)
					tsc2 := gotsc.BenchEnd()

					mut.Lock()
					totalHz += tsc2 - tsc1 - calltime
					polls++
					mut.Unlock()

					time.Sleep(time.Millisecond * 9)
				}
			}()
		}
		r := testing.Benchmark(alg)
		close(done)
		mut.Lock()
		totalHz *= 1000

		throughputs[i] = float64(r.Bytes*int64(r.N)) / r.T.Seconds() /* B/s */
		if polls > 0 {
			speeds[i] = float64(totalHz) / float64(polls) / throughputs[i]
		}
		mut.Unlock()
		throughputs[i] /= 1e6 /* MB/s */
		usages[i] = float64(r.AllocedBytesPerOp())
	}

	Println("Speed " + fmtFloats(throughputs...) + "   MB/s")
	if calltime > 0 {
		Println("      " + fmtFloats(speeds...) + "   cpb")
	}
	Println("Usage " + fmtFloats(usages...) + "   B/op\n")
}

// scanRate searches a domain of exactly one unit per worker for a suffix long enough to almost
// never match and reports candidates checked per second.
func scanRate(threads int, span uint64) float64 {
	start := time.Now()
	seq, err := hashfinder.Search(6, &hashfinder.Config{
		Span:    span,
		Ceiling: uint64(threads) * span,
		Threads: threads,
	})
	if err != nil {
		panic(err)
	}
	for {
		if _, err = seq.Next(); errors.Is(err, hashfinder.ErrExhausted) {
			break
		} else if err != nil {
			panic(err)
		}
	}
	return float64(uint64(threads)*span) / time.Since(start).Seconds()
}

func fmtFloats(f ...float64) string {
	var str, style string
	for _, v := range f {
		switch whole := float64(int64(v)) == v; {
		case v > 1e8 || (v < 1e-6 && !whole):
			style = "%8.3g"
		case v <= 1e1 && !whole:
			style = "%8.6f"
		case v <= 1e2 && !whole:
			style = "%8.5f"
		case v <= 1e3 && !whole:
			style = "%8.4f"
		case v <= 1e4 && !whole:
			style = "%8.3f"
		case v <= 1e5 && !whole:
			style = "%8.2f"
		case v <= 1e6 && !whole:
			style = "%8.1f"
		default:
			style = "%8.f"
		}
		str += "  " + Sprintf(style, v)
	}
	return str
}

func features() string {
	switch runtime.GOARCH {
	case "amd64", "386":
		return Sprintf("avx2=%t sse41=%t", cpu.X86.HasAVX2, cpu.X86.HasSSE41)
	case "arm64":
		return Sprintf("sha2=%t asimd=%t", cpu.ARM64.HasSHA2, cpu.ARM64.HasASIMD)
	default:
		return "n/a"
	}
}

func main() {
	Printf("Running Statz on %d CPUs!\n%s/%s (%s)\n\n"+
		"            10B       64B      512K       64M\n",
		runtime.NumCPU(), runtime.GOOS, runtime.GOARCH, features())
	t := time.Now()

	Println("github.com/p7r0x7/hashfinder")
	benchAlg(BenchmarkHashfinder)

	Println("crypto/sha256")
	benchAlg(BenchmarkStdlib)

	Println("github.com/minio/sha256-simd")
	benchAlg(BenchmarkSHA256)

	Println("github.com/zeebo/blake3")
	benchAlg(BenchmarkBlake3)

	Println("github.com/zeebo/xxh3")
	benchAlg(BenchmarkXXH3)

	threads := runtime.NumCPU()
	Printf("Scan      %8.f   candidates/s on %d workers\n\n", scanRate(threads, 1_000_000), threads)

	Println("Finished in " + time.Since(t).Truncate(time.Millisecond).String() + ".")
}
