package client

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marketbay/auctiondesk/core"
)

func init() {
	// The auction service speaks plain JSON numbers for amounts.
	decimal.MarshalJSONWithoutQuotes = true
}

// auctionDTO mirrors the auction service's wire shape. Timestamps are
// ISO-8601 strings and the status is an unvalidated string; both are
// normalized in toCore.
type auctionDTO struct {
	AuctionID         string          `json:"auctionId"`
	Item              core.ItemRef    `json:"itemRef"`
	StartPrice        decimal.Decimal `json:"startPrice"`
	ReservePrice      decimal.Decimal `json:"reservePrice"`
	MinIncrement      decimal.Decimal `json:"minIncrement"`
	StartAt           string          `json:"startAt"`
	EndAt             string          `json:"endAt"`
	Status            string          `json:"status"`
	ParticipantsCount int             `json:"participantsCount"`
}

func (d auctionDTO) toCore() core.Auction {
	// A status the service sends that we do not recognize is kept verbatim;
	// the action resolver's fallback handles it at render time.
	status, ok := core.ParseStatus(d.Status)
	if !ok {
		status = core.Status(d.Status)
	}

	startAt, _ := time.Parse(time.RFC3339, d.StartAt)
	endAt, _ := time.Parse(time.RFC3339, d.EndAt)

	return core.Auction{
		AuctionID:         d.AuctionID,
		Item:              d.Item,
		StartPrice:        d.StartPrice,
		ReservePrice:      d.ReservePrice,
		MinIncrement:      d.MinIncrement,
		StartAt:           startAt,
		EndAt:             endAt,
		Status:            status,
		ParticipantsCount: d.ParticipantsCount,
	}
}

type bidDTO struct {
	BidID     string          `json:"bidId"`
	AuctionID string          `json:"auctionId"`
	Bidder    core.BidderRef  `json:"bidder"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt string          `json:"createdAt"`
}

func (d bidDTO) toCore() core.Bid {
	createdAt, _ := time.Parse(time.RFC3339, d.CreatedAt)
	return core.Bid{
		BidID:     d.BidID,
		AuctionID: d.AuctionID,
		Bidder:    d.Bidder,
		Amount:    d.Amount,
		CreatedAt: createdAt,
	}
}

// updateRequest is the PUT /auctions/:id body.
type updateRequest struct {
	StartPrice   decimal.Decimal `json:"startPrice"`
	ReservePrice decimal.Decimal `json:"reservePrice"`
	MinIncrement decimal.Decimal `json:"minIncrement"`
	StartAt      string          `json:"startAt"`
	EndAt        string          `json:"endAt"`
}

// transitionResponse is the envelope returned by the lifecycle endpoints.
type transitionResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// errorEnvelope covers the service's two error body spellings.
type errorEnvelope struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e errorEnvelope) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}
