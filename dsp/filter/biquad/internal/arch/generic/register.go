package generic

import (
	"github.com/cwbudde/algo-fofi/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:         "generic",
		SIMDLevel:    cpu.SIMDNone,
		Priority:     0,
		ProcessBlock: processBlock,
	})
}

func processBlock(c registry.Coefficients, h registry.History, dst, src []float64) registry.History {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	x1, x2 := h.In[0], h.In[1]
	y1, y2 := h.Out[0], h.Out[1]

	if len(src) == 0 {
		return h
	}

	_ = dst[len(src)-1]
	for i, x := range src {
		y := b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		dst[i] = y
	}

	return registry.History{In: [2]float64{x1, x2}, Out: [2]float64{y1, y2}}
}
