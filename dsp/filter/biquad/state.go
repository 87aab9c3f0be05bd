package biquad

import (
	"sync"

	archregistry "github.com/cwbudde/algo-fofi/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// State is the filter memory of one voice: the last two input and output
// samples, most recent first. The zero value is a silent voice.
type State struct {
	In  [2]float64
	Out [2]float64
}

var (
	processBlockImpl     archregistry.ProcessBlockFn
	processBlockInitOnce sync.Once
)

// Step filters one input sample and returns the output.
//
// The output is computed from the current history before either history is
// shifted; both histories then shift together.
func (s *State) Step(c Coefficients, x float64) float64 {
	y := c.B0*x + c.B1*s.In[0] + c.B2*s.In[1] - c.A1*s.Out[0] - c.A2*s.Out[1]

	s.Out[1] = s.Out[0]
	s.Out[0] = y
	s.In[1] = s.In[0]
	s.In[0] = x

	return y
}

// ProcessBlockTo filters src into dst. dst must be at least as long as src
// and may alias it. Zero-alloc.
func (s *State) ProcessBlockTo(c Coefficients, dst, src []float64) {
	if len(src) == 0 {
		return
	}

	processBlockInitOnce.Do(initProcessBlockKernel)

	h := processBlockImpl(archregistry.Coefficients{
		B0: c.B0,
		B1: c.B1,
		B2: c.B2,
		A1: c.A1,
		A2: c.A2,
	}, archregistry.History{In: s.In, Out: s.Out}, dst, src)

	s.In, s.Out = h.In, h.Out
}

// ProcessBlock filters buf in-place.
func (s *State) ProcessBlock(c Coefficients, buf []float64) {
	s.ProcessBlockTo(c, buf, buf)
}

// AccumulateTo filters src into scratch and adds the result to dst.
// All three slices must have the same length; scratch must not alias dst or src.
func (s *State) AccumulateTo(c Coefficients, dst, src, scratch []float64) {
	s.ProcessBlockTo(c, scratch, src)
	vecmath.AddBlockInPlace(dst, scratch)
}

// Reset clears the history to zero.
func (s *State) Reset() {
	*s = State{}
}

// IsZero reports whether the voice has no remaining memory.
func (s *State) IsZero() bool {
	return *s == State{}
}

// ImpulseResponse computes n samples of the impulse response of c from a
// zero history. It does not touch any voice state.
func ImpulseResponse(c Coefficients, n int) []float64 {
	if n <= 0 {
		return nil
	}

	var s State
	ir := make([]float64, n)
	ir[0] = s.Step(c, 1)
	for i := 1; i < n; i++ {
		ir[i] = s.Step(c, 0)
	}
	return ir
}

func initProcessBlockKernel() {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("biquad: no ProcessBlock kernel registered (missing generic fallback?)")
	}

	if entry.ProcessBlock == nil {
		panic("biquad: selected kernel missing ProcessBlock")
	}

	processBlockImpl = entry.ProcessBlock
}

// KernelName returns the name of the block kernel selected for this CPU.
func KernelName() string {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		return ""
	}
	return entry.Name
}
