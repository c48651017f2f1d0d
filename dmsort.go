// Package dmsort implements drop-merge sort, an adaptive, unstable sort for
// slices that are already mostly in order, such as a sorted slice after a few
// of its elements were modified.
//
// A single pass keeps the longest non-decreasing run it can find in place and
// drops everything else into a side buffer. The buffer is sorted and merged
// back in from the end of the slice. That needs O(N + K log K) comparisons and
// O(K) extra memory, where K is the number of elements out of order. It works
// best when K is below a fifth of N and the disorder is spread out rather than
// clumped. When too much of the input is being dropped the scan gives up and
// the whole slice is sorted with pdqsort instead, so the worst case is
// O(N log N).
//
// If the comparison function panics the panic is passed on to the caller
// unchanged, and the slice holds every one of its original elements exactly
// once, but in an unspecified order. It is not a partial sort.
package dmsort

import "cmp"

// Sort sorts x in ascending order.
func Sort[S ~[]E, E cmp.Ordered](x S) {
	sortFunc(DefaultPolicy(), x, cmp.Compare[E])
}

// SortFunc sorts x in ascending order as determined by the cmp function,
// which must be a consistent total preorder: it returns a negative number
// when a < b, a positive number when a > b and zero otherwise.
func SortFunc[S ~[]E, E any](x S, cmp func(a, b E) int) {
	sortFunc(DefaultPolicy(), x, cmp)
}

// SortByKey sorts x in ascending order of key. The key is computed again for
// both arguments of every comparison.
func SortByKey[S ~[]E, E any, K cmp.Ordered](x S, key func(E) K) {
	sortFunc(DefaultPolicy(), x, func(a, b E) int {
		return cmp.Compare(key(a), key(b))
	})
}

// SortFuncWith is SortFunc with an explicit policy. It panics with the
// error from Validate if p is not valid.
func SortFuncWith[S ~[]E, E any](p Policy, x S, cmp func(a, b E) int) {
	if err := p.Validate(); err != nil {
		panic(err)
	}
	sortFunc(p, x, cmp)
}

func sortFunc[E any](p Policy, x []E, cmp func(a, b E) int) {
	if len(x) < 2 {
		return
	}
	s := sorter[E]{x: x, cmp: cmp, p: p}
	s.sort()
}
