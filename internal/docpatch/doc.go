// Package docpatch rewrites the marker-delimited region of a documentation
// file with generated content.
//
// The splice is an explicit two-state machine over document lines: COPYING
// emits lines verbatim and switches on the start marker after emitting the
// marker and the generated block; SUPPRESSED drops the previously managed
// lines until the end marker, which is emitted with one preceding blank line.
// A document missing either marker is a reported error, never a silent no-op.
package docpatch
