// Package core holds small numeric and buffer helpers shared by the filter
// packages, plus the processor configuration delivered by the host.
package core
