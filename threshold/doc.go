// SPDX-License-Identifier: MIT

// Package threshold builds threshold-time maps: for every cell of a field
// stack, the rank of the earliest step at which the cell reaches a minimum
// value.
//
// Scan order is load-bearing. The stack is walked from the largest step down
// to the smallest; iteration i (zero-based over that descending order) carries
// rank k = n - i, and every cell with value ≥ minval is overwritten with k.
// The last write wins, so a cell ends up with the rank of the smallest
// qualifying step, which equals that step's 1-based position in ascending
// order. Cells that never qualify keep Sentinel.
//
// The scan does not check that the data are monotone in time; on monotone
// stacks the result is the earliest crossing.
//
// When the requested threshold is negative, Resolve derives it as the minimum
// of the field at the largest step, which guarantees every cell is reached.
package threshold
