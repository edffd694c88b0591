package hashfinder

import (
	"fmt"
	"math"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const (
	// DefaultSpan is the number of candidates scanned by one unit of work.
	DefaultSpan uint64 = 5_000_000
	// DefaultCeiling is the largest candidate the counter may represent.
	DefaultCeiling uint64 = math.MaxUint32
)

// Unit is the closed-open candidate range [Start, End).
type Unit struct {
	Start, End uint64
}

func (u Unit) Len() uint64 { return u.End - u.Start }

func (u Unit) String() string { return fmt.Sprintf("[%d,%d)", u.Start, u.End) }

// Plan is the lazy form of a partition: unit k is computed on demand, so even a one-candidate
// span over the whole counter costs nothing until its units are scheduled.
type Plan struct {
	Span, Count uint64
}

// Unit returns the k-th unit, [1+k*Span, 1+(k+1)*Span). k must be below Count.
func (p Plan) Unit(k uint64) Unit {
	start := 1 + k*p.Span
	return Unit{start, start + p.Span}
}

// Units materializes every unit of p. Only small plans should be expanded this way.
func (p Plan) Units() []Unit {
	units := make([]Unit, 0, p.Count)
	for k := uint64(0); k < p.Count; k++ {
		units = append(units, p.Unit(k))
	}
	return units
}

// Partition splits [1, ceiling] into floor(ceiling/span) contiguous units of exactly span
// candidates each, the first beginning at 1. The final ceiling%span candidates are left out so
// that no unit's end can wrap past the counter's maximum.
func Partition(span, ceiling uint64) (Plan, error) {
	if span == 0 {
		return Plan{}, ErrSpan
	}
	if ceiling == math.MaxUint64 {
		return Plan{}, fmt.Errorf("%w: %d", ErrCeiling, ceiling)
	}
	return Plan{Span: span, Count: ceiling / span}, nil
}
