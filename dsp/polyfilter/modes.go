package polyfilter

import (
	"fmt"
	"strings"
)

// MixMode selects how the outputs of several active voices combine.
type MixMode int

const (
	// MixSum filters the block input through every active voice and sums
	// the results.
	MixSum MixMode = iota
	// MixLastWins filters the block input through every active voice, each
	// one overwriting the output; the highest active note is heard.
	MixLastWins
	// MixChain runs the voices in series: each active voice filters the
	// previous voice's output. This is what a single shared input/output
	// buffer produces.
	MixChain
)

func (m MixMode) String() string {
	switch m {
	case MixSum:
		return "sum"
	case MixLastWins:
		return "last-wins"
	case MixChain:
		return "chain"
	default:
		return fmt.Sprintf("MixMode(%d)", int(m))
	}
}

// ParseMixMode parses "sum", "last-wins" or "chain".
func ParseMixMode(s string) (MixMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sum", "":
		return MixSum, nil
	case "last-wins", "lastwins", "last":
		return MixLastWins, nil
	case "chain", "serial":
		return MixChain, nil
	default:
		return MixSum, fmt.Errorf("polyfilter: unknown mix mode %q", s)
	}
}

// Idle selects the output of a block in which no voice is active.
type Idle int

const (
	// IdleSilence writes a zero block.
	IdleSilence Idle = iota
	// IdlePassthrough copies the input block to the output.
	IdlePassthrough
)

func (i Idle) String() string {
	switch i {
	case IdleSilence:
		return "silence"
	case IdlePassthrough:
		return "passthrough"
	default:
		return fmt.Sprintf("Idle(%d)", int(i))
	}
}

// ParseIdle parses "silence" or "passthrough".
func ParseIdle(s string) (Idle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silence", "":
		return IdleSilence, nil
	case "passthrough", "bypass":
		return IdlePassthrough, nil
	default:
		return IdleSilence, fmt.Errorf("polyfilter: unknown idle mode %q", s)
	}
}
