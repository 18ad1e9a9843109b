// Package diagnostic provides structured warnings and errors for the
// crud generator.
//
// Every failure of a run is a single *Error carrying a code, the entity and
// member it concerns, and optional "did you mean" suggestions. Non-fatal
// findings (packages that failed to load, members dropped by policy) are
// collected in Diagnostics and reported next to the result.
package diagnostic
