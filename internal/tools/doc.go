// Package tools provides the process execution primitive used to drive the
// external media tools.
//
// Ownership boundary:
// - launching one external command and waiting for it
//
// - combined stdout/stderr capture
//
// - exit code mapping (127 launch failure, 124 deadline)
package tools
