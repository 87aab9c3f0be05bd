// Package polyfilter implements the polyphonic per-note filter: one
// second-order voice per MIDI note, switched on by an activity mask and
// driven one audio block at a time.
//
// The host-facing contract is small:
//
//   - [Processor.Configure] delivers the sample rate (configuration event).
//   - [Processor.Process] / [Processor.ProcessLanes] filter one block.
//   - [Processor.SetMask] receives a 128-entry velocity list.
//   - [Processor.SetGain], [Processor.SetPeakWidth] and
//     [Processor.SetFilterType] are the scalar inlets; changes take effect
//     with the next block.
//
// For every block the processor clamps gain and peak width to a positive
// floor, walks notes 0..127, and for every note whose mask value is above
// zero designs that voice's coefficients from the note's frequency and the
// shared parameters, then filters the block through the voice. How the
// voice outputs combine is selected by [MixMode].
//
// Control-path calls may come from any goroutine. Process must be called
// from a single audio goroutine and does not allocate once the configured
// maximum block size covers the host's blocks.
package polyfilter
