package main

import (
	"bufio"
	"errors"
	. "fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/p7r0x7/hashfinder"
	"github.com/p7r0x7/vainpath"
	. "github.com/spf13/pflag"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const n = "\n"
const success, failure, invalid = 0, 1, 2

func main() {
	parse(os.Args[1:])
	os.Exit(program())
}

// help prints a usage menu. To consistently render this menu in most terminal windows, its
// content should be no wider than 80 columns.
func help() {
	origin, err := os.Executable()
	if err != nil {
		origin = "hashfind" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(os.Stderr, yell, "Finds numbers whose SHA-256 digests end in a run of zeros.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "-N <uint> -F <uint> [-tv] [-j <int>] [--span <uint>] [--quiet|no-codes]"+n+n+
			"Options:"+n)
	PrintDefaults()
	Fprint(os.Stderr, n+"Each match is printed as `", und, "number", zero, `, "`, und, "digest", zero,
		"\"` on its own line."+n+"Matches found by different workers arrive in no particular order."+n)
}

// This program is a command-line interface for hashfinder: it runs one search and prints the first
// -F matches it yields.
func program() int {
	if pDebug {
		cf, err := os.Create("cpu.prof")
		if err != nil {
			panic(err)
		}
		_ = pprof.StartCPUProfile(cf)
		defer pprof.StopCPUProfile()

		gf, err := os.Create("goroutine.prof")
		if err != nil {
			panic(err)
		}
		defer pprof.Lookup("goroutine").WriteTo(gf, 0)
	}

	if pHelp {
		help()
		return success
	} else if !CommandLine.Changed("zeros") || !CommandLine.Changed("results") {
		help()
		return invalid
	} else if pSpan == 0 {
		return fail(Errorf("%w: --span must be at least 1", hashfinder.ErrSpan))
	}

	level := slog.LevelWarn
	if pVerbose {
		level = slog.LevelDebug
	}
	log := hashfinder.NewTextLogger(os.Stderr, level)
	if pQuiet {
		log = hashfinder.NoopLogger()
	}

	start := time.Now()
	seq, err := hashfinder.Search(int(pZeros), &hashfinder.Config{
		Span:    pSpan,
		Threads: pThreads,
		Logger:  log,
	})
	if err != nil {
		return fail(err)
	}
	defer seq.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	for i := uint(0); i < pResults; i++ {
		m, err := seq.Next()
		if err != nil {
			out.Flush()
			return fail(err)
		}
		out.WriteString(m.String() + n)
		if pTime || pVerbose {
			out.Flush() /* Keep stdout ordered ahead of stderr timings. */
		}
	}

	if pTime && !pQuiet {
		d := time.Since(start)
		if d.Microseconds() > 99 {
			d = d.Truncate(10 * time.Microsecond)
		}
		out.Flush()
		Fprint(os.Stderr, purp, "found ", pResults, " in ", d.String(), zero, n)
	}
	return success
}

func fail(err error) int {
	if pStrict {
		panic(err)
	}
	if !pQuiet {
		switch {
		case errors.Is(err, hashfinder.ErrExhausted):
			Fprint(os.Stderr, purp, "every candidate was checked before enough matches were found.", zero, n)
		case errors.Is(err, hashfinder.ErrWorkerFailed):
			Fprint(os.Stderr, purp, "a worker failed: ", err, zero, n)
		default:
			Fprint(os.Stderr, purp, err, zero, n)
		}
	}
	if errors.Is(err, hashfinder.ErrSpan) {
		return invalid
	}
	return failure
}
