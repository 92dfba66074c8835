package core

// Action is a seller-facing dashboard action.
type Action string

const (
	ActionEdit        Action = "edit"
	ActionActivateNow Action = "activate-now"
	ActionPause       Action = "pause"
	ActionResume      Action = "resume"
	ActionCancel      Action = "cancel"
	ActionViewBids    Action = "view-bids"
	ActionViewResults Action = "view-results"
)

// Label returns the display text for an action.
func (a Action) Label() string {
	switch a {
	case ActionEdit:
		return "Edit"
	case ActionActivateNow:
		return "Activate Now"
	case ActionPause:
		return "Pause"
	case ActionResume:
		return "Resume"
	case ActionCancel:
		return "Cancel"
	case ActionViewBids:
		return "View Bids"
	case ActionViewResults:
		return "View Results"
	}
	return string(a)
}

// EditPolicy configures which non-scheduled, non-terminal statuses still
// offer the Edit action. Which fields the service accepts post-activation is
// a server-side rule; the policy only gates whether the action is shown.
type EditPolicy struct {
	AllowWhileActive bool
	AllowWhilePaused bool
}

// DefaultEditPolicy matches the service's observed behavior: schedule and
// price edits stay available while an auction is active or paused.
var DefaultEditPolicy = EditPolicy{AllowWhileActive: true, AllowWhilePaused: true}

// ActionsFor maps a raw status string to the ordered action set the seller
// sees. It is total: a value that parses to no known status yields
// {View Bids}, never an empty set, so the seller always has some recourse.
// Callers evaluate it fresh on every render; the result is never cached.
func ActionsFor(rawStatus string, policy EditPolicy) []Action {
	status, ok := ParseStatus(rawStatus)
	if !ok {
		return []Action{ActionViewBids}
	}
	return StatusActions(status, policy)
}

// StatusActions is ActionsFor for an already parsed Status. The Edit action
// is suppressed for cancelled auctions regardless of policy.
func StatusActions(status Status, policy EditPolicy) []Action {
	switch status {
	case StatusScheduled:
		return []Action{ActionEdit, ActionActivateNow}
	case StatusActive:
		actions := []Action{ActionViewBids, ActionPause, ActionCancel}
		if policy.AllowWhileActive {
			actions = append(actions, ActionEdit)
		}
		return actions
	case StatusPaused:
		actions := []Action{ActionViewBids, ActionResume, ActionCancel}
		if policy.AllowWhilePaused {
			actions = append(actions, ActionEdit)
		}
		return actions
	case StatusEnded, StatusSettled:
		return []Action{ActionViewResults}
	case StatusCancelled:
		return []Action{ActionViewBids}
	}
	return []Action{ActionViewBids}
}
