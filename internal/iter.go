package internal

import (
	"cmp"
	"iter"
	"slices"
)

// IterSeq2Concat chains define tables from several devices into one sequence.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}

// IterSeq2Sorted yields the pairs of seq ordered by key.
func IterSeq2Sorted[K cmp.Ordered, V any](seq iter.Seq2[K, V]) iter.Seq2[K, V] {
	type pair struct {
		key   K
		value V
	}

	var pairs []pair
	for key, value := range seq {
		pairs = append(pairs, pair{key, value})
	}
	slices.SortStableFunc(pairs, func(a, b pair) int {
		return cmp.Compare(a.key, b.key)
	})

	return func(yield func(K, V) bool) {
		for _, p := range pairs {
			if !yield(p.key, p.value) {
				return
			}
		}
	}
}
