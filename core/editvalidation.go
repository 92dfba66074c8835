package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LocalInputLayout is the naive wall-clock format used by the schedule edit
// fields. Values in this layout carry no zone; they round-trip as the
// displayed local time without UTC normalization.
const LocalInputLayout = "2006-01-02T15:04"

// ParseLocalInput parses a naive edit-field timestamp as local wall-clock
// time.
func ParseLocalInput(s string) (time.Time, error) {
	return time.ParseInLocation(LocalInputLayout, strings.TrimSpace(s), time.Local)
}

// FormatLocalInput renders an instant into the naive edit-field layout in
// local time. FormatLocalInput and ParseLocalInput round-trip without a
// timezone shift of the displayed value.
func FormatLocalInput(t time.Time) string {
	return t.In(time.Local).Format(LocalInputLayout)
}

// EditForm carries the seller-submitted schedule and price edits exactly as
// typed. Fields are raw strings so that malformed input is caught here,
// before anything reaches the service.
type EditForm struct {
	StartPrice   string
	ReservePrice string
	MinIncrement string
	StartAt      string // LocalInputLayout
	EndAt        string // LocalInputLayout
}

// ValidatedEdit is an EditForm that passed ValidateEdit, with typed fields
// ready for submission.
type ValidatedEdit struct {
	StartPrice   decimal.Decimal
	ReservePrice decimal.Decimal
	MinIncrement decimal.Decimal
	StartAt      time.Time
	EndAt        time.Time
}

// ValidateEdit checks a seller edit against the auction invariants and
// returns the first violated rule as a single error, in this order:
// start price positive, reserve price non-negative, reserve >= start,
// minimum increment non-negative, start time valid, end time valid,
// end after start. Price comparisons use decimal arithmetic throughout.
func ValidateEdit(form EditForm) (ValidatedEdit, error) {
	startPrice, err := decimal.NewFromString(strings.TrimSpace(form.StartPrice))
	if err != nil || !startPrice.IsPositive() {
		return ValidatedEdit{}, ErrBadStartPrice
	}

	reservePrice, err := decimal.NewFromString(strings.TrimSpace(form.ReservePrice))
	if err != nil || reservePrice.IsNegative() {
		return ValidatedEdit{}, ErrBadReservePrice
	}

	if reservePrice.LessThan(startPrice) {
		return ValidatedEdit{}, ErrReserveBelowStart
	}

	minIncrement, err := decimal.NewFromString(strings.TrimSpace(form.MinIncrement))
	if err != nil || minIncrement.IsNegative() {
		return ValidatedEdit{}, ErrBadIncrement
	}

	startAt, err := ParseLocalInput(form.StartAt)
	if err != nil || form.StartAt == "" {
		return ValidatedEdit{}, ErrMissingStartAt
	}

	endAt, err := ParseLocalInput(form.EndAt)
	if err != nil || form.EndAt == "" {
		return ValidatedEdit{}, ErrMissingEndAt
	}

	if !endAt.After(startAt) {
		return ValidatedEdit{}, ErrEndNotAfterStart
	}

	return ValidatedEdit{
		StartPrice:   startPrice,
		ReservePrice: reservePrice,
		MinIncrement: minIncrement,
		StartAt:      startAt,
		EndAt:        endAt,
	}, nil
}
