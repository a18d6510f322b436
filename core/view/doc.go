// Package view turns a dataset and a filter into an immutable, render ready
// snapshot. The snapshot is the only thing presentation layers consume; they
// never reach back into the aggregation stage.
package view
