// Package transcode owns invocation of the external media tools.
//
// Ownership boundary:
// - invoker configuration and startup tool resolution
//
// - command construction from operation templates
//
// - bounded-wait execution and result classification
//
// Classification uses the exit status first. The combined output is only
// searched (in full) to tell a missing input apart from other failures.
package transcode
