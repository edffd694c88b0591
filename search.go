package hashfinder

import (
	"fmt"
	"runtime"
	"strconv"
	"sync"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Search fans the candidate domain out over a Collector and returns the Collector itself as the
// stream of matches.

const defaultThreads = 4

// Match is a candidate whose digest satisfied the suffix condition, with that digest in hex.
type Match struct {
	Candidate uint64
	Hex       string
}

func (m Match) String() string { return strconv.FormatUint(m.Candidate, 10) + `, "` + m.Hex + `"` }

// Sequence is a lazily produced, non-restartable stream of matches.
type Sequence interface {
	Next() (Match, error)
	Close()
}

// Config tunes a search. Zero values select the defaults.
type Config struct {
	// Span is the number of candidates per unit of work.
	Span uint64
	// Ceiling is the largest value the candidate counter may hold.
	Ceiling uint64
	// Threads is the worker count; runtime.NumCPU() when 0.
	Threads int
	Hasher  HashFunction
	Logger  *Logger
}

func DefaultConfig() *Config { return (&Config{}).withDefaults() }

func (cfg *Config) withDefaults() *Config {
	c := Config{}
	if cfg != nil {
		c = *cfg
	}
	if c.Span == 0 {
		c.Span = DefaultSpan
	}
	if c.Ceiling == 0 {
		c.Ceiling = DefaultCeiling
	}
	if c.Threads <= 0 {
		c.Threads = runtime.NumCPU()
		if c.Threads < 1 {
			c.Threads = defaultThreads
		}
	}
	if c.Hasher == nil {
		c.Hasher = SHA256{}
	}
	if c.Logger == nil {
		c.Logger = NoopLogger()
	}
	return &c
}

// Search streams every candidate in [1, cfg.Ceiling] whose digest ends in zeros '0' characters.
// Matches from different units arrive in no particular order. With zeros == 0 every candidate
// matches and the sequence simply counts upward from 1 without starting any workers.
func Search(zeros int, cfg *Config) (Sequence, error) {
	if zeros < 0 {
		return nil, fmt.Errorf("%w: %d", ErrZeros, zeros)
	}
	cfg = cfg.withDefaults()
	if zeros == 0 {
		return &ascending{next: 1, ceiling: cfg.Ceiling, hasher: cfg.Hasher}, nil
	}

	plan, err := Partition(cfg.Span, cfg.Ceiling)
	if err != nil {
		return nil, err
	}
	log := cfg.Logger.WithZeros(zeros)
	log.LogSearch(plan.Count, cfg.Span, cfg.Threads)

	var pool Executor = NewCollector(cfg.Threads, 2*cfg.Threads, log)
	go feed(pool, plan, zeros, cfg.Hasher)
	return pool, nil
}

/* feed schedules every unit of plan in order and seals pool once the last one is queued. It gives
up as soon as pool is closed or a worker has failed. */
func feed(pool Executor, plan Plan, zeros int, h HashFunction) {
	for k := uint64(0); k < plan.Count; k++ {
		if pool.Execute(scan(plan.Unit(k), zeros, h)) != nil {
			return
		}
	}
	pool.Seal()
}

/* scan checks every candidate of u in ascending order. */
func scan(u Unit, zeros int, h HashFunction) Job {
	return func(collect func(Match)) {
		buf := make([]byte, 0, 20)
		for c := u.Start; c < u.End; c++ {
			buf = strconv.AppendUint(buf[:0], c, 10)
			if d := h.Nibbles(buf); d.HasZeroSuffix(zeros) {
				collect(Match{c, Format(d)})
			}
		}
	}
}

// Take pulls exactly n matches from seq and then abandons it.
func Take(seq Sequence, n int) ([]Match, error) {
	defer seq.Close()
	matches := make([]Match, 0, n)
	for len(matches) < n {
		m, err := seq.Next()
		if err != nil {
			return matches, err
		}
		matches = append(matches, m)
	}
	return matches, nil
}

/* ascending is the zero-suffix sequence: every candidate qualifies, in order. */
type ascending struct {
	mu      sync.Mutex
	next    uint64
	ceiling uint64
	hasher  HashFunction
	closed  bool
}

func (a *ascending) Next() (Match, error) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return Match{}, ErrClosed
	}
	if a.next == 0 || a.next > a.ceiling { /* next wraps to 0 past MaxUint64. */
		a.mu.Unlock()
		return Match{}, ErrExhausted
	}
	c := a.next
	a.next++
	a.mu.Unlock()

	return Match{c, Format(a.hasher.Nibbles(strconv.AppendUint(nil, c, 10)))}, nil
}

func (a *ascending) Close() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
}
