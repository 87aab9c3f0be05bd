//go:build !amd64 || purego

package biquad

import (
	_ "github.com/cwbudde/algo-fofi/dsp/filter/biquad/internal/arch/generic"
)
