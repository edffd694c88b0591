package main

import (
	"os"

	. "github.com/spf13/pflag"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var pZeros, pResults, pSpan, pNoCodesDefault = uint(0), uint(0), uint64(0), false
var pThreads int
var pHelp, pNoCodes, pQuiet, pStrict, pTime, pVerbose, pDebug bool
var yell, purp, und, zero = "\033[33m", "\033[35m", "\033[4m", "\033[0m"

func init() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--no-codes=false":
			pNoCodes = false
		case "--quiet", "--quiet=true":
			pNoCodes, pQuiet = true, true
		case "--no-codes", "--no-codes=true":
			pNoCodes = true
		}
	}
	if pNoCodes {
		yell, purp, und, zero = "", "", "", ""
	}

	BoolVarP(&pHelp, "help", "h", false,
		purp+"print this help menu"+zero+n)

	UintVarP(&pZeros, "zeros", "N", 0,
		purp+"number of trailing '0' hex digits a digest must end with"+zero)

	UintVarP(&pResults, "results", "F", 0,
		purp+"number of matches to print before exiting"+zero)

	BoolVar(&pDebug, "debug", false, "")
	CommandLine.MarkHidden("debug")

	Bool("no-codes", pNoCodesDefault,
		purp+"print to console w/o formatting codes"+zero)

	Bool("quiet", false,
		purp+"suppress everything but the matches themselves"+zero+
			n+"(enables --no-codes)")

	Uint64Var(&pSpan, "span", 5_000_000,
		purp+"candidates scanned by each unit of work"+zero)

	BoolVar(&pStrict, "strict", false,
		purp+"cause hashfind to panic on any error"+zero)

	IntVarP(&pThreads, "threads", "j", 0,
		purp+"worker count"+zero+" (default: one per logical CPU)")

	BoolVarP(&pTime, "time", "t", false,
		purp+"print time taken to find all matches"+zero)

	BoolVarP(&pVerbose, "verbose", "v", false,
		purp+"log the progress of every unit of work to stderr"+zero)

	/* Order flags alphabetically except for help and the two required values, which are hoisted. */
	CommandLine.SortFlags = false
}

func parse(args []string) {
	_ = CommandLine.Parse(args) /* ExitOnError */
	pStrict = pStrict || pDebug
}
