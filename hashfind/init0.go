//go:build windows

package main

import (
	"os"

	"golang.org/x/sys/windows"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

/* Turns on VT escape processing so the colour codes render; falls back to plain output otherwise. */
func init() {
	for _, f := range [...]*os.File{os.Stdout, os.Stderr} {
		h := windows.Handle(f.Fd())
		var mode uint32
		if err := windows.GetConsoleMode(h, &mode); err != nil {
			pNoCodesDefault = true
			break
		}
		if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
			continue
		}
		if err := windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
			pNoCodesDefault = true
			break
		}
	}
	pNoCodes = pNoCodesDefault
}
