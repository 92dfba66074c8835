package core

import (
	"fmt"
	"time"
)

// Phase is the countdown category derived from the clock, for display only.
// The server's Status remains authoritative for lifecycle decisions.
type Phase string

const (
	PhaseScheduled Phase = "scheduled"
	PhaseActive    Phase = "active"
	PhaseEnded     Phase = "ended"
)

// Countdown is the result of evaluating an auction's time window at a
// given instant.
type Countdown struct {
	Phase Phase
	Label string
}

// ComputePhase derives the countdown phase and human label for an auction
// window at the supplied instant. It is a pure function of its three inputs;
// the caller owns the clock so every row of a dashboard can share one
// consistent snapshot per tick.
//
// Boundaries are inclusive on the lower side: now == startAt is already
// active and now == endAt is already ended, so a tick landing exactly on a
// boundary never flickers back to the earlier phase.
func ComputePhase(now, startAt, endAt time.Time) Countdown {
	switch {
	case now.Before(startAt):
		d, h, m, s := splitClock(startAt.Sub(now))
		return Countdown{
			Phase: PhaseScheduled,
			Label: fmt.Sprintf("Starts in %dd %dh %dm %ds", d, h, m, s),
		}
	case now.Before(endAt):
		d, h, m, s := splitClock(endAt.Sub(now))
		return Countdown{
			Phase: PhaseActive,
			Label: fmt.Sprintf("Ends in %dd %dh %dm %ds", d, h, m, s),
		}
	default:
		d, h, m, _ := splitClock(now.Sub(endAt))
		return Countdown{
			Phase: PhaseEnded,
			Label: fmt.Sprintf("Ended %dd %dh %dm ago", d, h, m),
		}
	}
}

// splitClock decomposes a non-negative duration into whole days, hours,
// minutes and seconds using integer floor division, no rounding.
func splitClock(d time.Duration) (days, hours, mins, secs int64) {
	total := int64(d / time.Second)
	days = total / 86400
	total %= 86400
	hours = total / 3600
	total %= 3600
	mins = total / 60
	secs = total % 60
	return days, hours, mins, secs
}
