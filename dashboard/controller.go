package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/marketbay/auctiondesk/client"
	"github.com/marketbay/auctiondesk/core"
)

// Service is the seller surface of the auction service, satisfied by
// *client.Client.
type Service interface {
	ListMyAuctions(ctx context.Context, status string) ([]core.Auction, error)
	GetAuction(ctx context.Context, auctionID string) (core.Auction, error)
	ListBids(ctx context.Context, auctionID string) ([]core.Bid, error)
	UpdateAuction(ctx context.Context, auctionID string, edit core.ValidatedEdit) (core.Auction, error)
	Transition(ctx context.Context, auctionID string, action core.Action) error
}

// ErrNotEditable is returned when the seller opens the edit flow on a
// cancelled auction.
var ErrNotEditable = errors.New("a cancelled auction cannot be edited")

// Controller is the only writer of auction state. Every seller intent maps
// to exactly one service request, and local state only ever changes from a
// service response: a successful transition is followed by a full refetch,
// never by mutating the status locally, because the same status can also
// move under the clock on the server.
type Controller struct {
	api Service
	log zerolog.Logger
}

// NewController builds a Controller over the auction service.
func NewController(api Service, log zerolog.Logger) *Controller {
	return &Controller{api: api, log: log}
}

// Apply performs one seller-initiated lifecycle transition. On success it
// returns the refetched auction. On failure the input auction comes back
// unchanged alongside the error, except for a stale-state rejection, where
// the refetched record comes back with the error so the view self-corrects.
// No request is issued when the transition is not allowed in the current
// status.
func (c *Controller) Apply(ctx context.Context, auction core.Auction, action core.Action) (core.Auction, error) {
	tr, err := core.TransitionFor(auction.Status, action)
	if err != nil {
		return auction, err
	}

	if err := c.api.Transition(ctx, auction.AuctionID, action); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Stale {
			transitionTotal.WithLabelValues(string(action), outcomeStale).Inc()
			c.log.Warn().
				Str("auction", auction.AuctionID).
				Str("action", string(action)).
				Msg("transition rejected as stale, refetching")
			if fresh, ferr := c.api.GetAuction(ctx, auction.AuctionID); ferr == nil {
				return fresh, err
			}
			return auction, err
		}
		transitionTotal.WithLabelValues(string(action), outcomeError).Inc()
		return auction, err
	}

	transitionTotal.WithLabelValues(string(action), outcomeOK).Inc()
	c.log.Info().
		Str("auction", auction.AuctionID).
		Str("action", string(action)).
		Str("target", string(tr.Target)).
		Msg("transition applied")

	fresh, err := c.api.GetAuction(ctx, auction.AuctionID)
	if err != nil {
		return auction, fmt.Errorf("transition applied but refetch failed: %w", err)
	}
	return fresh, nil
}

// SubmitEdit validates a seller edit and, only if every rule passes,
// submits it. A validation failure blocks the submission entirely; nothing
// reaches the service. The returned record is the service's updated copy.
func (c *Controller) SubmitEdit(ctx context.Context, auction core.Auction, form core.EditForm) (core.Auction, error) {
	if !auction.IsEditable() {
		return auction, ErrNotEditable
	}

	validated, err := core.ValidateEdit(form)
	if err != nil {
		return auction, err
	}

	updated, err := c.api.UpdateAuction(ctx, auction.AuctionID, validated)
	if err != nil {
		return auction, err
	}

	c.log.Info().Str("auction", auction.AuctionID).Msg("edit applied")
	return updated, nil
}
