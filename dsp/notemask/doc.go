// Package notemask carries note activity from the control path to the
// filter bank.
//
// A [Mask] is a fixed 128-entry velocity list indexed by MIDI note; a value
// above zero marks the voice active. Masks are produced wholesale by a
// [Producer] (one complete list per note event) and handed to the audio
// path through a [Store], which swaps immutable snapshots atomically so a
// reader never observes a partly written mask.
package notemask
