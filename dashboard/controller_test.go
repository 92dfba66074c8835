package dashboard

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/marketbay/auctiondesk/client"
	"github.com/marketbay/auctiondesk/core"
)

// fakeService scripts the auction service for controller and poller tests.
type fakeService struct {
	mu sync.Mutex

	auctions []core.Auction
	bids     map[string][]core.Bid

	listErr       error
	getResult     core.Auction
	getErr        error
	updateResult  core.Auction
	updateErr     error
	transitionErr error

	listGate chan struct{} // when set, ListMyAuctions blocks until closed

	listCalls       int
	getCalls        int
	updateCalls     int
	transitionCalls []string
}

func (f *fakeService) ListMyAuctions(ctx context.Context, status string) ([]core.Auction, error) {
	f.mu.Lock()
	f.listCalls++
	gate := f.listGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]core.Auction, len(f.auctions))
	copy(out, f.auctions)
	return out, nil
}

func (f *fakeService) GetAuction(ctx context.Context, auctionID string) (core.Auction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	return f.getResult, f.getErr
}

func (f *fakeService) ListBids(ctx context.Context, auctionID string) ([]core.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bids[auctionID], nil
}

func (f *fakeService) UpdateAuction(ctx context.Context, auctionID string, edit core.ValidatedEdit) (core.Auction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	return f.updateResult, f.updateErr
}

func (f *fakeService) Transition(ctx context.Context, auctionID string, action core.Action) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transitionCalls = append(f.transitionCalls, auctionID+"/"+string(action))
	return f.transitionErr
}

func (f *fakeService) snapshotCalls() (list, get, update int, transitions []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.getCalls, f.updateCalls, append([]string(nil), f.transitionCalls...)
}

func activeAuction() core.Auction {
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	return core.Auction{
		AuctionID:    "a-1",
		Item:         core.ItemRef{Title: "Vintage camera"},
		StartPrice:   decimal.NewFromInt(100),
		ReservePrice: decimal.NewFromInt(150),
		MinIncrement: decimal.NewFromInt(5),
		StartAt:      start,
		EndAt:        start.Add(48 * time.Hour),
		Status:       core.StatusActive,
	}
}

func TestApply_SuccessRefetches(t *testing.T) {
	paused := activeAuction()
	paused.Status = core.StatusPaused
	svc := &fakeService{getResult: paused}
	ctrl := NewController(svc, zerolog.Nop())

	fresh, err := ctrl.Apply(context.Background(), activeAuction(), core.ActionPause)

	assert.Nil(t, err)
	// The new status comes from the refetch, never from a local mutation.
	check.Equal(t, core.StatusPaused, fresh.Status)
	_, gets, _, transitions := svc.snapshotCalls()
	check.Equal(t, 1, gets)
	check.Equal(t, []string{"a-1/pause"}, transitions)
}

func TestApply_DisallowedTransitionIssuesNoRequest(t *testing.T) {
	svc := &fakeService{}
	ctrl := NewController(svc, zerolog.Nop())

	_, err := ctrl.Apply(context.Background(), activeAuction(), core.ActionActivateNow)

	check.Error(t, err)
	_, gets, _, transitions := svc.snapshotCalls()
	check.Equal(t, 0, gets)
	check.Equal(t, 0, len(transitions))
}

func TestApply_FailureLeavesStateUnchanged(t *testing.T) {
	svc := &fakeService{
		transitionErr: &client.APIError{StatusCode: http.StatusBadRequest, Message: "cannot pause right now"},
	}
	ctrl := NewController(svc, zerolog.Nop())
	before := activeAuction()

	after, err := ctrl.Apply(context.Background(), before, core.ActionPause)

	check.Error(t, err)
	check.Equal(t, "cannot pause right now", err.Error())
	check.Equal(t, before, after)
	_, gets, _, _ := svc.snapshotCalls()
	check.Equal(t, 0, gets)
}

func TestApply_StaleRejectionSelfCorrects(t *testing.T) {
	ended := activeAuction()
	ended.Status = core.StatusEnded
	svc := &fakeService{
		transitionErr: &client.APIError{StatusCode: http.StatusConflict, Message: "status already changed", Stale: true},
		getResult:     ended,
	}
	ctrl := NewController(svc, zerolog.Nop())

	after, err := ctrl.Apply(context.Background(), activeAuction(), core.ActionCancel)

	check.Error(t, err)
	// The rejection surfaces, and the refetched record replaces the stale one.
	check.Equal(t, core.StatusEnded, after.Status)
	_, gets, _, _ := svc.snapshotCalls()
	check.Equal(t, 1, gets)
}

func TestSubmitEdit_ValidationBlocksBeforeAnyRequest(t *testing.T) {
	svc := &fakeService{}
	ctrl := NewController(svc, zerolog.Nop())

	form := core.EditForm{
		StartPrice:   "100",
		ReservePrice: "50",
		MinIncrement: "5",
		StartAt:      "2026-04-01T09:00",
		EndAt:        "2026-04-03T18:30",
	}
	_, err := ctrl.SubmitEdit(context.Background(), activeAuction(), form)

	check.Equal(t, core.ErrReserveBelowStart, err, cmpopts.EquateErrors())
	_, _, updates, _ := svc.snapshotCalls()
	check.Equal(t, 0, updates)
}

func TestSubmitEdit_CancelledAuctionRefused(t *testing.T) {
	svc := &fakeService{}
	ctrl := NewController(svc, zerolog.Nop())
	cancelled := activeAuction()
	cancelled.Status = core.StatusCancelled

	_, err := ctrl.SubmitEdit(context.Background(), cancelled, core.EditForm{})

	check.True(t, errors.Is(err, ErrNotEditable))
	_, _, updates, _ := svc.snapshotCalls()
	check.Equal(t, 0, updates)
}

func TestSubmitEdit_ReturnsServiceRecord(t *testing.T) {
	updated := activeAuction()
	updated.ReservePrice = decimal.NewFromInt(200)
	svc := &fakeService{updateResult: updated}
	ctrl := NewController(svc, zerolog.Nop())

	form := core.EditForm{
		StartPrice:   "100",
		ReservePrice: "200",
		MinIncrement: "5",
		StartAt:      "2026-04-01T09:00",
		EndAt:        "2026-04-03T18:30",
	}
	after, err := ctrl.SubmitEdit(context.Background(), activeAuction(), form)

	assert.Nil(t, err)
	check.Equal(t, "200", after.ReservePrice.String())
	_, _, updates, _ := svc.snapshotCalls()
	check.Equal(t, 1, updates)
}
