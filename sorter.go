package dmsort

import "github.com/histdb/dmsort/pdqsort"

// sorter is the move based drop-merge sort.
//
// At every point where the comparison function can be called:
//
//	x[:write]                         the kept run, sorted
//	x[write:write+len(dropped)]       the gap, every slot holds the zero value
//	x[write+len(dropped):]            not yet scanned
//
// The elements that belong in the gap live in dropped. Elements are moved
// out of x with take, which leaves the zero value behind, so nothing is
// ever held in two places at once.
type sorter[E any] struct {
	_ [0]func() // no equality

	x       []E
	dropped []E
	write   int
	cmp     func(a, b E) int
	p       Policy

	numDropped int
	earlyOut   bool
}

func (s *sorter[E]) take(i int) (v E) {
	v, s.x[i] = s.x[i], v
	return v
}

func (s *sorter[E]) drop(i int) {
	s.dropped = append(s.dropped, s.take(i))
}

// restore moves every dropped element back into the gap. It is deferred by
// sort, so it also runs when the comparison function panics. In that case x
// ends up holding every element exactly once again, in no particular order,
// and the panic continues unchanged. After a normal return dropped is empty
// and restore does nothing.
func (s *sorter[E]) restore() {
	if len(s.dropped) == 0 {
		return
	}
	copy(s.x[s.write:], s.dropped)
	clear(s.dropped)
	s.dropped = s.dropped[:0]
}

func (s *sorter[E]) sort() {
	defer s.restore()

	var (
		n          = len(s.x)
		earlyOutAt = s.p.EarlyOutAt(n)
		read       int
		inRow      int
		iteration  int
	)

	for read < n {
		iteration++
		if iteration == earlyOutAt && s.p.TooDisordered(len(s.dropped), read) {
			s.numDropped = len(s.dropped)
			s.earlyOut = true
			s.restore()
			pdqsort.Func(s.x, s.cmp)
			return
		}

		if s.write == 0 || s.cmp(s.x[read], s.x[s.write-1]) >= 0 {
			s.x[s.write] = s.take(read)
			read++
			s.write++
			inRow = 0
			continue
		}

		// 0 1 2 3 9 5 6 7: the 9 is a one-off, so drop it instead of the 5.
		if s.p.DoubleComparisons && inRow == 0 && s.write >= 2 &&
			s.cmp(s.x[read], s.x[s.write-2]) >= 0 {
			s.drop(s.write - 1)
			s.x[s.write-1] = s.take(read)
			read++
			continue
		}

		if inRow < s.p.Recency {
			s.drop(read)
			read++
			inRow++
			continue
		}

		read = s.backtrack(read, inRow)
		inRow = 0
	}

	s.numDropped = len(s.dropped)
	pdqsort.Func(s.dropped, s.cmp)
	s.merge()
}

// backtrack undoes the acceptance of the last kept element after it caused
// inRow drops in a row. Those drops go back to the unscanned part of x, and
// the kept elements being undone move to dropped. It returns the rewound
// read cursor.
func (s *sorter[E]) backtrack(read, inRow int) int {
	// the last inRow drops were taken from x[read-inRow:read] in order
	keep := len(s.dropped) - inRow
	read -= inRow
	copy(s.x[read:read+inRow], s.dropped[keep:])
	clear(s.dropped[keep:])
	s.dropped = s.dropped[:keep]

	// s.write is only lowered once the undone elements are in dropped, so a
	// panic in the loops below leaves the gap where restore expects it.
	w := s.write - 1
	if s.p.FastBacktracking {
		top := read
		for i := read + 1; i <= read+inRow; i++ {
			if s.cmp(s.x[top], s.x[i]) <= 0 {
				top = i
			}
		}
		for w > 0 && s.cmp(s.x[top], s.x[w-1]) < 0 {
			w--
		}
	}

	for i := w; i < s.write; i++ {
		s.drop(i)
	}
	s.write = w

	return read
}

// merge interleaves the sorted dropped elements with the kept run, filling
// x from the back. The kept run is already in place once dropped is empty.
func (s *sorter[E]) merge() {
	var zero E

	back := len(s.x)
	for len(s.dropped) > 0 {
		last := len(s.dropped) - 1
		for s.write > 0 && s.cmp(s.dropped[last], s.x[s.write-1]) < 0 {
			s.x[back-1] = s.take(s.write - 1)
			back--
			s.write--
		}
		s.x[back-1], s.dropped[last] = s.dropped[last], zero
		s.dropped = s.dropped[:last]
		back--
	}
}
