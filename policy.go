package dmsort

import "github.com/zeebo/errs/v2"

// Policy holds the tuning knobs of the drop/keep scan. It is passed by value
// and never modified by a sort.
type Policy struct {
	// Recency is how many elements in a row may be dropped before the most
	// recently kept element is assumed to be a mistake and backtracked.
	// Low values are faster on well ordered input, high values are more
	// resilient against long stretches of noise.
	Recency int

	// DoubleComparisons compares an out of order element against the second
	// to last kept element as well, and swaps it in for the last kept element
	// if that fits. Catches single element blips without backtracking.
	DoubleComparisons bool

	// FastBacktracking backtracks over every kept element that is larger than
	// all of the recently dropped ones at once, instead of one at a time.
	FastBacktracking bool

	// EarlyOut abandons the scan and sorts the whole slice with pdqsort when
	// too much of the input is being dropped.
	EarlyOut bool

	// EarlyOutTestAt selects when the early out check happens: after
	// len/EarlyOutTestAt iterations of the scan.
	EarlyOutTestAt int

	// EarlyOutDisorderFraction is the fraction of the elements read so far
	// that must have been dropped for the early out to trigger.
	EarlyOutDisorderFraction float64
}

// DefaultPolicy returns the policy used by Sort, SortFunc and SortByKey.
func DefaultPolicy() Policy {
	return Policy{
		Recency:                  8,
		DoubleComparisons:        true,
		FastBacktracking:         true,
		EarlyOut:                 true,
		EarlyOutTestAt:           4,
		EarlyOutDisorderFraction: 0.60,
	}
}

// Validate returns an error if the policy cannot be used to sort.
func (p Policy) Validate() error {
	if p.Recency < 1 {
		return errs.Errorf("dmsort: recency must be positive: %d", p.Recency)
	}
	if !p.EarlyOut {
		return nil
	}
	if p.EarlyOutTestAt < 1 {
		return errs.Errorf("dmsort: early out test point must be positive: %d", p.EarlyOutTestAt)
	}
	if f := p.EarlyOutDisorderFraction; !(f >= 0 && f <= 1) {
		return errs.Errorf("dmsort: early out disorder fraction out of range: %v", p.EarlyOutDisorderFraction)
	}
	return nil
}

// EarlyOutAt returns the scan iteration at which the early out check runs
// for a slice of length n. Iterations are counted from 1, so 0 means never.
func (p Policy) EarlyOutAt(n int) int {
	if !p.EarlyOut {
		return 0
	}
	return n / p.EarlyOutTestAt
}

// TooDisordered reports whether having dropped dropped of the first read
// elements should trigger the early out.
func (p Policy) TooDisordered(dropped, read int) bool {
	return float64(dropped) > float64(read)*p.EarlyOutDisorderFraction
}
