package testhelp

import (
	"encoding/binary"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/zeebo/errs/v2"
	"github.com/zeebo/xxh3"
)

// ErrScheduled is the value Failing panics with.
var ErrScheduled = errs.Errorf("scheduled comparison panic")

// Failing wraps cmp so that call number n, counting from 0, panics with
// ErrScheduled instead of comparing. The returned counter holds the number
// of comparisons that completed.
func Failing[E any](n int, cmp func(a, b E) int) (func(a, b E) int, *int) {
	calls := new(int)
	return func(a, b E) int {
		if *calls == n {
			panic(ErrScheduled)
		}
		*calls++
		return cmp(a, b)
	}, calls
}

// Counting wraps cmp and counts its calls.
func Counting[E any](cmp func(a, b E) int) (func(a, b E) int, *int) {
	return Failing(-1, cmp)
}

// Catch runs fn and returns the value it panicked with, if any.
func Catch(fn func()) (v any) {
	defer func() { v = recover() }()
	fn()
	return nil
}

// CheckIdentity returns an error unless items holds every ID in [0, n)
// exactly once.
func CheckIdentity(items []*Item, n int) error {
	if len(items) != n {
		return errs.Errorf("expected %d items, got %d", n, len(items))
	}
	seen := roaring.New()
	for i, it := range items {
		if it == nil {
			return errs.Errorf("empty slot at index %d", i)
		}
		if int(it.ID) >= n {
			return errs.Errorf("unknown id %d at index %d", it.ID, i)
		}
		if !seen.CheckedAdd(it.ID) {
			return errs.Errorf("duplicate id %d at index %d", it.ID, i)
		}
	}
	return nil
}

// CheckSorted returns an error describing the first adjacent pair of x that
// is out of order under cmp.
func CheckSorted[E any](x []E, cmp func(a, b E) int) error {
	for i := 1; i < len(x); i++ {
		if cmp(x[i], x[i-1]) < 0 {
			return errs.Errorf("out of order at index %d: %v < %v", i, x[i], x[i-1])
		}
	}
	return nil
}

// Fingerprint returns a hash of the multiset of values in x that does not
// depend on their order.
func Fingerprint(x []int) (sum uint64) {
	var buf [8]byte
	for _, v := range x {
		binary.BigEndian.PutUint64(buf[:], uint64(v))
		sum += xxh3.Hash(buf[:])
	}
	return sum
}
