package testhelp

import (
	"cmp"

	"github.com/zeebo/mwc"
)

// MostlySorted returns 0, 1, ..., n-1 where each element is replaced by a
// random value in [0, n) with probability factor.
func MostlySorted(rng *mwc.T, n int, factor float64) []int {
	x := make([]int, n)
	for i := range x {
		if rng.Float64() < factor {
			x[i] = int(rng.Uint64n(uint64(n)))
		} else {
			x[i] = i
		}
	}
	return x
}

// Runs returns the ascending run split, ..., n-1 followed by the ascending
// run 0, ..., split-1, every value offset by lo. A short second run is the
// worst case for the drop/keep scan.
func Runs(lo, n, split int) []int {
	x := make([]int, 0, n)
	for i := split; i < n; i++ {
		x = append(x, lo+i)
	}
	for i := 0; i < split; i++ {
		x = append(x, lo+i)
	}
	return x
}

// Random returns n values in [0, max).
func Random(rng *mwc.T, n, max int) []int {
	x := make([]int, n)
	for i := range x {
		x[i] = int(rng.Uint64n(uint64(max)))
	}
	return x
}

// Shuffle swaps k random pairs of elements of x.
func Shuffle[E any](rng *mwc.T, x []E, k int) {
	if len(x) < 2 {
		return
	}
	for range k {
		i := rng.Uint64n(uint64(len(x)))
		j := rng.Uint64n(uint64(len(x)))
		x[i], x[j] = x[j], x[i]
	}
}

// Item is an element with an identity separate from its sort key.
type Item struct {
	ID  uint32
	Key int
}

// Items returns one Item per key, with IDs 0, 1, ... in order.
func Items(keys []int) []*Item {
	items := make([]*Item, len(keys))
	for i, key := range keys {
		items[i] = &Item{ID: uint32(i), Key: key}
	}
	return items
}

// CompareItems orders items by key. It dereferences both arguments, so it
// panics when handed an empty slot.
func CompareItems(a, b *Item) int { return cmp.Compare(a.Key, b.Key) }

// Keys returns the keys of the items in order.
func Keys(items []*Item) []int {
	keys := make([]int, len(items))
	for i, it := range items {
		keys[i] = it.Key
	}
	return keys
}
