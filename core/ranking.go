package core

import "sort"

// RankBids returns a new slice ordered by amount descending; equal amounts
// rank the earlier CreatedAt first (the earlier bid wins the tie). The input
// slice is never mutated and re-ranking an already ranked slice yields the
// same order, so callers may rank on every render.
func RankBids(bids []Bid) []Bid {
	ranked := make([]Bid, len(bids))
	copy(ranked, bids)

	sort.SliceStable(ranked, func(i, j int) bool {
		if c := ranked[i].Amount.Cmp(ranked[j].Amount); c != 0 {
			return c > 0
		}
		return ranked[i].CreatedAt.Before(ranked[j].CreatedAt)
	})

	return ranked
}

// TopBid returns the highest-ranked bid per RankBids. ok is false when the
// list is empty.
func TopBid(bids []Bid) (Bid, bool) {
	if len(bids) == 0 {
		return Bid{}, false
	}
	return RankBids(bids)[0], true
}
