// Package types defines the public, dependency-free vocabulary shared by the
// perfdata reader and its callers: the error taxonomy, the closed enumerations
// decoded from each record (units, variability, type code) and the value
// snapshot returned by a monitor read.
//
// Design goals:
//   - Closed enumerations; an unknown code is an error, never a sentinel value.
//   - Typed errors with stable categories (structure/data/type/timeout/state).
//   - Small value types that are safe to copy and compare.
//
// This package has no dependencies beyond the standard library.
package types
