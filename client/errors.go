package client

import (
	"errors"
	"fmt"
)

// ErrUnsupported marks a service endpoint the deployment does not provide
// yet (a 404 on bid history, pause, or resume). Callers render a "feature
// not available yet" notice and keep the rest of the dashboard usable.
var ErrUnsupported = errors.New("feature not available yet")

// APIError is a non-2xx response or a {success:false} envelope from the
// auction service. Message carries the server's text verbatim when the
// server provided one; the action it answered is considered not-applied.
type APIError struct {
	StatusCode int
	Message    string

	// Stale is set when the server rejected a transition because the status
	// had already changed underneath the seller (another tab, or the clock
	// crossing a boundary). Callers refetch so the view self-corrects.
	Stale bool
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("auction service returned HTTP %d", e.StatusCode)
}
