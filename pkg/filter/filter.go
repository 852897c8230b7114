// Package filter provides score-ranked top-N selection that keeps ties at the
// cutoff.
package filter

import "sort"

// Ranked pairs an item with the integer score it is ranked by.
type Ranked[T any] struct {
	Item  T
	Score int
}

// TopN sorts items by descending score and returns the retained prefix
// together with the full sorted slice. Items with equal scores keep their
// input order. The input slice is reordered in place and n <= 0 keeps
// everything.
func TopN[T any](items []Ranked[T], n int) (kept, sorted []Ranked[T]) {
	SortByScore(items)
	return items[:Cutoff(items, n)], items
}

// SortByScore sorts items by descending score, stable on ties.
func SortByScore[T any](items []Ranked[T]) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}

// Cutoff returns how many leading items of a score-sorted slice survive a
// top-n selection: the first n, extended over every item whose score equals
// the n-th score.
func Cutoff[T any](sorted []Ranked[T], n int) int {
	if n <= 0 || len(sorted) <= n {
		return len(sorted)
	}

	threshold := sorted[n-1].Score
	k := n
	for k < len(sorted) && sorted[k].Score == threshold {
		k++
	}
	return k
}
