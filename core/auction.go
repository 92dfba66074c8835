package core

// IsTerminal reports whether the auction record is immutable (except for
// seller-visible metadata): ended, cancelled, or settled.
func (a Auction) IsTerminal() bool {
	return a.Status == StatusEnded || a.Status == StatusCancelled || a.Status == StatusSettled
}

// IsEditable reports whether the seller may open the edit flow at all.
// Only cancelled auctions are fully locked out; which fields the service
// actually accepts post-activation is the service's decision.
func (a Auction) IsEditable() bool {
	return a.Status != StatusCancelled
}

// CheckInvariants verifies the record-level invariants of an auction and
// returns the first violation, or nil if the record is consistent:
//   - reservePrice >= startPrice
//   - minIncrement >= 0
//   - endAt > startAt
//
// All price comparisons use decimal arithmetic.
func (a Auction) CheckInvariants() error {
	if a.StartPrice.IsNegative() {
		return ErrNegativeStartPrice
	}
	if a.ReservePrice.LessThan(a.StartPrice) {
		return ErrReserveBelowStart
	}
	if a.MinIncrement.IsNegative() {
		return ErrNegativeIncrement
	}
	if !a.EndAt.After(a.StartAt) {
		return ErrEndNotAfterStart
	}
	return nil
}
