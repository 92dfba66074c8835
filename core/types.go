package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the server-authoritative lifecycle state of an auction. It is
// distinct from Phase, which is derived locally from the clock for display.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusEnded     Status = "ended"
	StatusCancelled Status = "cancelled"
	StatusSettled   Status = "settled"
)

// ParseStatus normalizes a raw status string from the data source into a
// known Status. Casing and surrounding whitespace are tolerated. ok is false
// when the value matches no known status; callers fall back per ActionsFor.
func ParseStatus(raw string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusScheduled:
		return StatusScheduled, true
	case StatusActive:
		return StatusActive, true
	case StatusPaused:
		return StatusPaused, true
	case StatusEnded:
		return StatusEnded, true
	case StatusCancelled:
		return StatusCancelled, true
	case StatusSettled:
		return StatusSettled, true
	}
	return "", false
}

// ItemRef is read-only display data for the auctioned item.
type ItemRef struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// BidderRef is read-only display data for a bidder.
type BidderRef struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Auction is a timed sale of one item, owned by a seller. The record is
// owned by the auction service; this package only reads it and validates
// seller edits against it.
type Auction struct {
	AuctionID         string          `json:"auctionId"`
	Item              ItemRef         `json:"itemRef"`
	StartPrice        decimal.Decimal `json:"startPrice"`
	ReservePrice      decimal.Decimal `json:"reservePrice"`
	MinIncrement      decimal.Decimal `json:"minIncrement"`
	StartAt           time.Time       `json:"startAt"`
	EndAt             time.Time       `json:"endAt"`
	Status            Status          `json:"status"`
	ParticipantsCount int             `json:"participantsCount,omitempty"`
}

// Bid is a single buyer bid on an auction. Bids are created elsewhere; this
// package only ranks and renders them.
type Bid struct {
	BidID     string          `json:"bidId"`
	AuctionID string          `json:"auctionId"`
	Bidder    BidderRef       `json:"bidder"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}
