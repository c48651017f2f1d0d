// Package refsort is a plain copying drop-merge sort. It runs the same scan,
// backtracking and merge as dmsort, but it never clears a slot it copied
// from and has nothing to repair when the comparison function panics. It is
// kept as a readable cross check for dmsort.
package refsort

import (
	"cmp"

	"github.com/histdb/dmsort"
	"github.com/histdb/dmsort/pdqsort"
)

// Slice sorts x in ascending order and returns the number of dropped
// elements.
func Slice[S ~[]E, E cmp.Ordered](x S) int {
	return With(dmsort.DefaultPolicy(), x, cmp.Compare[E])
}

// Func sorts x in ascending order as determined by cmp and returns the
// number of dropped elements.
func Func[S ~[]E, E any](x S, cmp func(a, b E) int) int {
	return With(dmsort.DefaultPolicy(), x, cmp)
}

// With sorts x using the policy p and returns the number of elements that
// were dropped from the kept run and merged back in. If the early out
// triggered, the count is estimated from the elements dropped so far. It
// panics if p is not valid.
func With[S ~[]E, E any](p dmsort.Policy, x S, cmp func(a, b E) int) int {
	if err := p.Validate(); err != nil {
		panic(err)
	}

	n := len(x)
	if n < 2 {
		return 0
	}

	// Find the longest non-decreasing run heuristically and shift it into
	// x[:write]. Everything else is copied to dropped.

	var (
		dropped    []E
		inRow      int
		write      int
		read       int
		iteration  int
		earlyOutAt = p.EarlyOutAt(n)
	)

	for read < n {
		iteration++
		if iteration == earlyOutAt && p.TooDisordered(len(dropped), read) {
			copy(x[write:], dropped)
			pdqsort.Func(x, cmp)
			return len(dropped) * p.EarlyOutTestAt
		}

		if write == 0 || cmp(x[read], x[write-1]) >= 0 {
			x[write] = x[read]
			read++
			write++
			inRow = 0
			continue
		}

		if p.DoubleComparisons && inRow == 0 && write >= 2 && cmp(x[read], x[write-2]) >= 0 {
			dropped = append(dropped, x[write-1])
			x[write-1] = x[read]
			read++
			continue
		}

		if inRow < p.Recency {
			dropped = append(dropped, x[read])
			read++
			inRow++
			continue
		}

		// Accepting x[write-1] made us drop the next Recency elements, so
		// it was a mistake. With Recency 3 and 0 1 12 3 4 5 6, 3 4 5 get
		// dropped because of the 12. Forget those drops, drop the 12
		// instead and go back to the 3.
		dropped = dropped[:len(dropped)-inRow]
		read -= inRow

		backtracked := 1
		write--

		if p.FastBacktracking {
			top := read
			for i := read + 1; i <= read+inRow; i++ {
				if cmp(x[top], x[i]) <= 0 {
					top = i
				}
			}
			for write > 0 && cmp(x[top], x[write-1]) < 0 {
				backtracked++
				write--
			}
		}

		dropped = append(dropped, x[write:write+backtracked]...)
		inRow = 0
	}

	numDropped := len(dropped)

	pdqsort.Func(dropped, cmp)

	// x[:write] and dropped are both sorted. Merge them into x starting
	// with the largest elements at the back.

	back := n
	for len(dropped) > 0 {
		last := dropped[len(dropped)-1]
		for write > 0 && cmp(last, x[write-1]) < 0 {
			x[back-1] = x[write-1]
			back--
			write--
		}
		x[back-1] = last
		back--
		dropped = dropped[:len(dropped)-1]
	}

	return numDropped
}
