package pdqsort

import (
	"cmp"
	"slices"
	"testing"

	"github.com/aclements/go-perfevent/perfbench"
	"github.com/zeebo/assert"
	"github.com/zeebo/mwc"

	"github.com/histdb/dmsort/testhelp"
)

func TestSlice(t *testing.T) {
	rng := mwc.Rand()

	patterns := map[string]func(n int) []int{
		"Random":     func(n int) []int { return testhelp.Random(rng, n, n+1) },
		"Sorted":     func(n int) []int { return testhelp.Runs(0, n, 0) },
		"Runs":       func(n int) []int { return testhelp.Runs(0, n, n/3) },
		"Duplicates": func(n int) []int { return testhelp.Random(rng, n, 3) },
		"Reversed": func(n int) []int {
			x := testhelp.Runs(0, n, 0)
			slices.Reverse(x)
			return x
		},
		"Sawtooth": func(n int) []int {
			x := make([]int, n)
			for i := range x {
				x[i] = i % 17
			}
			return x
		},
	}

	for name, gen := range patterns {
		t.Run(name, func(t *testing.T) {
			for _, n := range []int{0, 1, 2, 12, 13, 50, 51, 1000, 10000} {
				x := gen(n)
				exp := slices.Clone(x)
				slices.Sort(exp)

				Slice(x)
				assert.DeepEqual(t, x, exp)
			}
		})
	}
}

func TestFuncDeterministic(t *testing.T) {
	keys := testhelp.Random(mwc.Rand(), 5000, 50)

	x := testhelp.Items(keys)
	y := testhelp.Items(keys)
	Func(x, testhelp.CompareItems)
	Func(y, testhelp.CompareItems)

	assert.NoError(t, testhelp.CheckSorted(x, testhelp.CompareItems))
	for i := range x {
		assert.Equal(t, x[i].ID, y[i].ID)
	}
}

func TestFuncPanicKeepsElements(t *testing.T) {
	keys := testhelp.Random(mwc.Rand(), 300, 300)

	c, calls := testhelp.Counting(testhelp.CompareItems)
	Func(testhelp.Items(keys), c)
	total := *calls

	for n := 0; n < total; n += 7 {
		items := testhelp.Items(keys)
		c, _ := testhelp.Failing(n, testhelp.CompareItems)

		v := testhelp.Catch(func() { Func(items, c) })
		assert.Equal(t, v, any(testhelp.ErrScheduled))
		assert.NoError(t, testhelp.CheckIdentity(items, len(keys)))
	}
}

func BenchmarkSlice(b *testing.B) {
	data := testhelp.Random(mwc.Rand(), 100000, 1<<30)
	x := make([]int, len(data))

	perfbench.Open(b)
	b.ReportAllocs()

	for b.Loop() {
		copy(x, data)
		Slice(x)
	}
}

func BenchmarkFunc(b *testing.B) {
	data := testhelp.Random(mwc.Rand(), 100000, 1<<30)
	x := make([]int, len(data))

	perfbench.Open(b)
	b.ReportAllocs()

	for b.Loop() {
		copy(x, data)
		Func(x, cmp.Compare[int])
	}
}
