package core

import "fmt"

// Transition describes one seller-initiated status change and the service
// endpoint that performs it. Clock-driven changes (scheduled→active,
// active→ended) and settlement happen server-side and are only observed by
// refetching; they never appear here.
type Transition struct {
	Action   Action
	Target   Status
	Endpoint string // path suffix under /auctions/:id
}

// TransitionFor resolves a seller action against the current status. It
// returns an error when the action is not allowed in that status; the caller
// must not issue any service request in that case.
func TransitionFor(status Status, action Action) (Transition, error) {
	switch action {
	case ActionActivateNow:
		if status != StatusScheduled {
			return Transition{}, notAllowed(status, action)
		}
		return Transition{Action: action, Target: StatusActive, Endpoint: "activate-now"}, nil
	case ActionPause:
		if status != StatusActive {
			return Transition{}, notAllowed(status, action)
		}
		return Transition{Action: action, Target: StatusPaused, Endpoint: "pause"}, nil
	case ActionResume:
		if status != StatusPaused {
			return Transition{}, notAllowed(status, action)
		}
		return Transition{Action: action, Target: StatusActive, Endpoint: "resume"}, nil
	case ActionCancel:
		if status != StatusActive && status != StatusPaused {
			return Transition{}, notAllowed(status, action)
		}
		return Transition{Action: action, Target: StatusCancelled, Endpoint: "cancel"}, nil
	}
	return Transition{}, fmt.Errorf("%q is not a lifecycle transition", action)
}

// CanTransition reports whether the seller action is allowed in the given
// status.
func CanTransition(status Status, action Action) bool {
	_, err := TransitionFor(status, action)
	return err == nil
}

func notAllowed(status Status, action Action) error {
	return fmt.Errorf("cannot %s an auction in status %q", action, status)
}
