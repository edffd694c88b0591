package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

func TestProgram(t *testing.T) {
	parse([]string{"-N", "1", "-F", "2", "--span", "0"})
	assert.Equal(t, invalid, program(), "a zero span must be rejected")

	parse([]string{"--span", "1000", "-j", "2"})
	assert.Equal(t, success, program())
}
