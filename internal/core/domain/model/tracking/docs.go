// Package tracking models courier location samples and the write gate that admits them.
//
// A position is persisted only while the courier is available and at least the gate's
// debounce after the previous accepted position; anything else is skipped with a reason.
package tracking
