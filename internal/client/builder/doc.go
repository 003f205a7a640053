// Package builder implements the blueprint studio's editing model: a three
// stage wizard (build, preview, publish) over an immutable draft.
//
// Every operation computes a fresh models.Draft from the current one and
// swaps it in; slices reachable from a previously returned snapshot are never
// written again. A Builder is meant to be driven by one goroutine at a time.
package builder
