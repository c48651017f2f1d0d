// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the Go LICENSE file.

// Package pdqsort is an unstable pattern-defeating quicksort over a
// comparison function.
//
// Elements only ever move by swapping two slots, so if the comparison
// function panics the slice still holds exactly the elements it started
// with. The sort is deterministic: equal inputs and comparators always
// produce equal outputs.
package pdqsort

import (
	"cmp"
	"math/bits"
)

// Func sorts x in ascending order as determined by the cmp function, which
// returns a negative number when a < b, a positive number when a > b and
// zero otherwise.
func Func[S ~[]E, E any](x S, cmp func(a, b E) int) {
	n := len(x)
	s := sorter[E]{x: x, cmp: cmp}
	s.pdqsort(0, n, bits.Len(uint(n)))
}

// Slice sorts x in ascending order using cmp.Compare.
func Slice[S ~[]E, E cmp.Ordered](x S) {
	Func(x, cmp.Compare[E])
}

//
//
//

type sorter[E any] struct {
	x   []E
	cmp func(a, b E) int
}

func (s *sorter[E]) less(i, j int) bool { return s.cmp(s.x[i], s.x[j]) < 0 }
func (s *sorter[E]) swap(i, j int)      { s.x[i], s.x[j] = s.x[j], s.x[i] }

type sortedHint int // hint for pdqsort when choosing the pivot

const (
	unknownHint sortedHint = iota
	increasingHint
	decreasingHint
)

// xorshift paper: https://www.jstatsoft.org/article/view/v008i14/xorshift.pdf
type xorshift uint64

func (r *xorshift) Next() uint64 {
	*r ^= *r << 13
	*r ^= *r >> 17
	*r ^= *r << 5
	return uint64(*r)
}

func nextPowerOfTwo(length int) uint {
	return 1 << uint(bits.Len(uint(length)))
}

// insertionSort sorts x[a:b] by swapping each element down into place.
func (s *sorter[E]) insertionSort(a, b int) {
	for i := a + 1; i < b; i++ {
		for j := i; j > a && s.less(j, j-1); j-- {
			s.swap(j, j-1)
		}
	}
}

// siftDown restores the heap property on x[first+lo:first+hi].
func (s *sorter[E]) siftDown(lo, hi, first int) {
	root := lo
	for {
		child := 2*root + 1
		if child >= hi {
			return
		}
		if child+1 < hi && s.less(first+child, first+child+1) {
			child++
		}
		if !s.less(first+root, first+child) {
			return
		}
		s.swap(first+root, first+child)
		root = child
	}
}

func (s *sorter[E]) heapSort(a, b int) {
	first, hi := a, b-a

	for i := (hi - 1) / 2; i >= 0; i-- {
		s.siftDown(i, hi, first)
	}
	for i := hi - 1; i >= 0; i-- {
		s.swap(first, first+i)
		s.siftDown(0, i, first)
	}
}

// pdqsort sorts x[a:b]. limit is the number of allowed bad (very unbalanced)
// pivots before falling back to heapsort.
//
// pdqsort paper: https://arxiv.org/pdf/2106.05123.pdf
func (s *sorter[E]) pdqsort(a, b, limit int) {
	const maxInsertion = 12

	var (
		wasBalanced    = true // whether the last partitioning was reasonably balanced
		wasPartitioned = true // whether the range was already partitioned
	)

	for {
		length := b - a

		if length <= maxInsertion {
			s.insertionSort(a, b)
			return
		}

		if limit == 0 {
			s.heapSort(a, b)
			return
		}

		if !wasBalanced {
			s.breakPatterns(a, b)
			limit--
		}

		pivot, hint := s.choosePivot(a, b)
		if hint == decreasingHint {
			s.reverseRange(a, b)
			pivot = (b - 1) - (pivot - a)
			hint = increasingHint
		}

		// probably already sorted
		if wasBalanced && wasPartitioned && hint == increasingHint {
			if s.partialInsertionSort(a, b) {
				return
			}
		}

		// x[a-1] is a lower bound for the range, so if it is not less than
		// the pivot the range starts with a run of elements equal to it.
		if a > 0 && !s.less(a-1, pivot) {
			a = s.partitionEqual(a, b, pivot)
			continue
		}

		mid, alreadyPartitioned := s.partition(a, b, pivot)
		wasPartitioned = alreadyPartitioned

		leftLen, rightLen := mid-a, b-mid
		balanceThreshold := length / 8
		if leftLen < rightLen {
			wasBalanced = leftLen >= balanceThreshold
			s.pdqsort(a, mid, limit)
			a = mid + 1
		} else {
			wasBalanced = rightLen >= balanceThreshold
			s.pdqsort(mid+1, b, limit)
			b = mid
		}
	}
}

// partition moves x[a:b] around the pivot p so that x[i] < p for i < mid and
// x[j] >= p for j > mid. On return x[mid] == p.
func (s *sorter[E]) partition(a, b, pivot int) (mid int, alreadyPartitioned bool) {
	s.swap(a, pivot)
	i, j := a+1, b-1 // inclusive bounds of the unpartitioned elements

	for i <= j && s.less(i, a) {
		i++
	}
	for i <= j && !s.less(j, a) {
		j--
	}
	if i > j {
		s.swap(j, a)
		return j, true
	}
	s.swap(i, j)
	i++
	j--

	for {
		for i <= j && s.less(i, a) {
			i++
		}
		for i <= j && !s.less(j, a) {
			j--
		}
		if i > j {
			break
		}
		s.swap(i, j)
		i++
		j--
	}
	s.swap(j, a)
	return j, false
}

// partitionEqual splits x[a:b], which holds nothing smaller than the pivot,
// into elements equal to the pivot followed by elements greater than it.
func (s *sorter[E]) partitionEqual(a, b, pivot int) int {
	s.swap(a, pivot)
	i, j := a+1, b-1

	for {
		for i <= j && !s.less(a, i) {
			i++
		}
		for i <= j && s.less(a, j) {
			j--
		}
		if i > j {
			return i
		}
		s.swap(i, j)
		i++
		j--
	}
}

// partialInsertionSort fixes up a handful of adjacent inversions in x[a:b]
// and reports whether the range ended up sorted.
func (s *sorter[E]) partialInsertionSort(a, b int) bool {
	const (
		maxSteps         = 5  // adjacent out-of-order pairs that will get shifted
		shortestShifting = 50 // short ranges are never shifted
	)

	i := a + 1
	for range maxSteps {
		for i < b && !s.less(i, i-1) {
			i++
		}
		if i == b {
			return true
		}
		if b-a < shortestShifting {
			return false
		}

		s.swap(i, i-1)

		for j := i - 1; j > a && s.less(j, j-1); j-- {
			s.swap(j, j-1)
		}
		for j := i + 1; j < b && s.less(j, j-1); j++ {
			s.swap(j, j-1)
		}
	}
	return false
}

// breakPatterns scatters a few elements around the middle of x[a:b] to
// defeat inputs that produce imbalanced partitions.
func (s *sorter[E]) breakPatterns(a, b int) {
	length := b - a
	if length < 8 {
		return
	}

	random := xorshift(length)
	modulus := nextPowerOfTwo(length)

	for idx := a + (length/4)*2 - 1; idx <= a+(length/4)*2+1; idx++ {
		other := int(uint(random.Next()) & (modulus - 1))
		if other >= length {
			other -= length
		}
		s.swap(idx, a+other)
	}
}

// choosePivot chooses a pivot in x[a:b].
//
// [0,8): static pivot.
// [8,shortestNinther): median of three.
// [shortestNinther,∞): Tukey ninther.
func (s *sorter[E]) choosePivot(a, b int) (pivot int, hint sortedHint) {
	const (
		shortestNinther = 50
		maxSwaps        = 4 * 3
	)

	l := b - a

	var (
		swaps int
		i     = a + l/4*1
		j     = a + l/4*2
		k     = a + l/4*3
	)

	if l >= 8 {
		if l >= shortestNinther {
			i = s.medianAdjacent(i, &swaps)
			j = s.medianAdjacent(j, &swaps)
			k = s.medianAdjacent(k, &swaps)
		}
		j = s.median(i, j, k, &swaps)
	}

	switch swaps {
	case 0:
		return j, increasingHint
	case maxSwaps:
		return j, decreasingHint
	default:
		return j, unknownHint
	}
}

// order2 returns i, j ordered so that x[i] <= x[j].
func (s *sorter[E]) order2(i, j int, swaps *int) (int, int) {
	if s.less(j, i) {
		*swaps++
		return j, i
	}
	return i, j
}

// median returns the index of the median of x[a], x[b] and x[c].
func (s *sorter[E]) median(a, b, c int, swaps *int) int {
	a, b = s.order2(a, b, swaps)
	b, _ = s.order2(b, c, swaps)
	_, b = s.order2(a, b, swaps)
	return b
}

func (s *sorter[E]) medianAdjacent(a int, swaps *int) int {
	return s.median(a-1, a, a+1, swaps)
}

func (s *sorter[E]) reverseRange(a, b int) {
	for i, j := a, b-1; i < j; i, j = i+1, j-1 {
		s.swap(i, j)
	}
}
