// Package restock holds the delivery records loaded at startup and the pure
// filtering and aggregation stages built on top of them.
//
// A Dataset is immutable once constructed. Filters select record subsets
// without mutating anything, and every aggregation is a pure function from a
// record slice to an ordered result, so one Dataset can be shared by any
// number of concurrent readers without locking.
package restock
