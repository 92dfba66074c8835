package core

import (
	"testing"
	"time"

	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

func bidAt(id string, amount int64, createdAt time.Time) Bid {
	return Bid{
		BidID:     id,
		AuctionID: "auction-1",
		Bidder:    BidderRef{Name: "bidder-" + id},
		Amount:    decimal.NewFromInt(amount),
		CreatedAt: createdAt,
	}
}

func TestRankBids_AmountDescending(t *testing.T) {
	t0 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bids := []Bid{
		bidAt("a", 250, t0),
		bidAt("b", 225, t0.Add(time.Minute)),
		bidAt("c", 275, t0.Add(2*time.Minute)),
	}

	ranked := RankBids(bids)

	check.Equal(t, 3, len(ranked))
	check.Equal(t, "c", ranked[0].BidID)
	check.Equal(t, "a", ranked[1].BidID)
	check.Equal(t, "b", ranked[2].BidID)
}

func TestRankBids_TieBrokenByEarlierCreatedAt(t *testing.T) {
	t0 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Minute)
	t2 := t0.Add(2 * time.Minute)

	// A late higher bid and an equal-amount pair: the earlier of the pair wins.
	bids := []Bid{
		bidAt("low", 500, t1),
		bidAt("late", 700, t2),
		bidAt("early", 700, t0),
	}

	ranked := RankBids(bids)

	check.Equal(t, "early", ranked[0].BidID)
	check.Equal(t, "late", ranked[1].BidID)
	check.Equal(t, "low", ranked[2].BidID)
}

func TestRankBids_Idempotent(t *testing.T) {
	t0 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bids := []Bid{
		bidAt("a", 100, t0.Add(time.Second)),
		bidAt("b", 100, t0),
		bidAt("c", 300, t0.Add(2*time.Second)),
	}

	once := RankBids(bids)
	twice := RankBids(once)

	check.Equal(t, once, twice)
}

func TestRankBids_InputNotMutated(t *testing.T) {
	t0 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bids := []Bid{
		bidAt("a", 100, t0),
		bidAt("b", 300, t0.Add(time.Second)),
	}

	RankBids(bids)

	check.Equal(t, "a", bids[0].BidID)
	check.Equal(t, "b", bids[1].BidID)
}

func TestTopBid_Empty(t *testing.T) {
	_, ok := TopBid(nil)
	check.False(t, ok)
}

func TestTopBid_HighestWins(t *testing.T) {
	t0 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bids := []Bid{
		bidAt("a", 500, t0),
		bidAt("b", 700, t0.Add(time.Minute)),
	}

	top, ok := TopBid(bids)

	check.True(t, ok)
	check.Equal(t, "b", top.BidID)
}

func TestRankBids_DecimalAmountsNoFloatDrift(t *testing.T) {
	t0 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	a, _ := decimal.NewFromString("0.10")
	b, _ := decimal.NewFromString("0.1000")
	bids := []Bid{
		{BidID: "a", Amount: a, CreatedAt: t0.Add(time.Minute)},
		{BidID: "b", Amount: b, CreatedAt: t0},
	}

	ranked := RankBids(bids)

	// Equal decimal values regardless of scale: earlier bid ranks first.
	check.Equal(t, "b", ranked[0].BidID)
	check.Equal(t, "a", ranked[1].BidID)
}
