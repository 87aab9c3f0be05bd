package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-fofi/dsp/filter/biquad"
)

func ExampleState_Step() {
	c := biquad.Coefficients{B0: 0.5, B1: 0.25, B2: 0.125, A1: -0.5, A2: 0.25}

	var voice biquad.State
	for _, x := range []float64{1, 0, 0, 0} {
		fmt.Println(voice.Step(c, x))
	}

	// Output:
	// 0.5
	// 0.5
	// 0.25
	// 0
}
