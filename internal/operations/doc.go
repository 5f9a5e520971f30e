// Package operations owns the closed set of named media operations.
//
// Ownership boundary:
// - operation identity (Kind) and canonical names
//
// - per-operation command templates and success messages
//
// - case-insensitive name lookup
//
// Operations are immutable and defined at compile time.
package operations
