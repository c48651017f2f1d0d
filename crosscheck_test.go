package dmsort_test

import (
	"cmp"
	"slices"
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/mwc"

	"github.com/histdb/dmsort"
	"github.com/histdb/dmsort/refsort"
	"github.com/histdb/dmsort/testhelp"
)

func TestMatchesReference(t *testing.T) {
	rng := mwc.Rand()

	for _, factor := range []float64{0, 0.01, 0.1, 0.3, 0.7, 1} {
		for _, n := range []int{0, 1, 2, 7, 64, 1000} {
			x := testhelp.MostlySorted(rng, n, factor)
			y := slices.Clone(x)

			dmsort.Sort(x)
			refsort.Slice(y)
			assert.DeepEqual(t, x, y)
		}
	}
}

func TestMatchesReferenceItems(t *testing.T) {
	rng := mwc.Rand()

	// few distinct keys, so the unstable order of equal keys shows up in
	// the identities
	for _, n := range []int{10, 100, 1000} {
		keys := testhelp.MostlySorted(rng, n, 0.2)
		for i := range keys {
			keys[i] /= 4
		}

		x := testhelp.Items(keys)
		y := slices.Clone(x)

		dmsort.SortFunc(x, testhelp.CompareItems)
		refsort.Func(y, testhelp.CompareItems)

		assert.NoError(t, testhelp.CheckIdentity(x, n))
		for i := range x {
			assert.Equal(t, x[i].ID, y[i].ID)
		}
	}
}

func TestMatchesReferencePolicies(t *testing.T) {
	rng := mwc.Rand()

	for _, recency := range []int{1, 4, 8} {
		for mask := range 8 {
			p := dmsort.Policy{
				Recency:                  recency,
				DoubleComparisons:        mask&1 != 0,
				FastBacktracking:         mask&2 != 0,
				EarlyOut:                 mask&4 != 0,
				EarlyOutTestAt:           2,
				EarlyOutDisorderFraction: 0.8,
			}

			x := testhelp.Items(testhelp.MostlySorted(rng, 300, 0.15))
			y := slices.Clone(x)

			dx, cx := testhelp.Counting(testhelp.CompareItems)
			dy, cy := testhelp.Counting(testhelp.CompareItems)
			dmsort.SortFuncWith(p, x, dx)
			refsort.With(p, y, dy)

			assert.Equal(t, *cx, *cy)
			assert.DeepEqual(t, testhelp.Keys(x), testhelp.Keys(y))
			for i := range x {
				assert.Equal(t, x[i].ID, y[i].ID)
			}
		}
	}
}

func FuzzSortFunc(f *testing.F) {
	f.Add([]byte{0, 1, 10, 3, 4, 5, 6, 7, 8, 9})
	f.Add([]byte{20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		x := slices.Clone(data)
		dmsort.SortFunc(x, cmp.Compare[byte])

		exp := slices.Clone(data)
		slices.Sort(exp)
		if !slices.Equal(x, exp) {
			t.Fatalf("sort(%v) = %v, expected %v", data, x, exp)
		}

		y := slices.Clone(data)
		refsort.Slice(y)
		if !slices.Equal(x, y) {
			t.Fatalf("sort(%v) = %v, reference gave %v", data, x, y)
		}
	})
}
