//go:build amd64 && !purego

package avx2

import (
	"github.com/cwbudde/algo-fofi/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:         "avx2",
		SIMDLevel:    cpu.SIMDAVX2,
		Priority:     20,
		ProcessBlock: processBlock,
	})
}

// processBlock is a 4x-unrolled scalar kernel selected for AVX2-capable CPUs.
// It uses no vector instructions. The recursion is serial, so unrolling only
// trims loop overhead; every output is computed with the same expression as
// the generic kernel.
// TODO: replace with explicit AVX2 asm kernel.
func processBlock(c registry.Coefficients, h registry.History, dst, src []float64) registry.History {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	x1, x2 := h.In[0], h.In[1]
	y1, y2 := h.Out[0], h.Out[1]

	n := len(src)
	if n == 0 {
		return h
	}
	_ = dst[n-1]

	i := 0
	for ; i+3 < n; i += 4 {
		s0 := src[i]
		o0 := b0*s0 + b1*x1 + b2*x2 - a1*y1 - a2*y2

		s1 := src[i+1]
		o1 := b0*s1 + b1*s0 + b2*x1 - a1*o0 - a2*y1

		s2 := src[i+2]
		o2 := b0*s2 + b1*s1 + b2*s0 - a1*o1 - a2*o0

		s3 := src[i+3]
		o3 := b0*s3 + b1*s2 + b2*s1 - a1*o2 - a2*o1

		dst[i] = o0
		dst[i+1] = o1
		dst[i+2] = o2
		dst[i+3] = o3

		x1, x2 = s3, s2
		y1, y2 = o3, o2
	}

	for ; i < n; i++ {
		x := src[i]
		y := b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		dst[i] = y
	}

	return registry.History{In: [2]float64{x1, x2}, Out: [2]float64{y1, y2}}
}
