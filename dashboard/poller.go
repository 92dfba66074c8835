package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/marketbay/auctiondesk/core"
)

const defaultInterval = time.Second

// CountdownRow pairs a visible auction with its countdown at one shared
// instant.
type CountdownRow struct {
	AuctionID string
	Status    core.Status
	Countdown core.Countdown
}

// Hooks receive poller output. Callbacks run on the poller's goroutine;
// keep them short so ticks are not delayed.
type Hooks struct {
	OnTick  func(now time.Time, rows []CountdownRow)
	OnList  func(auctions []core.Auction)
	OnBids  func(auctionID string, bids []core.Bid)
	OnError func(err error)
}

// Poller drives the periodic re-evaluation of countdowns for the visible
// auction list. It runs only between Start and Stop, mirroring the view
// being mounted and unmounted, so no timer outlives the view. Every tick
// takes a single clock snapshot and evaluates all rows against it, keeping
// the rows mutually consistent within the tick.
//
// Network fetches never block the tick loop: each one runs on its own
// goroutine, tagged with the generation current at launch. Stop (or a
// restart) moves the generation forward, so a response that arrives after
// the view navigated away is discarded instead of resurrecting stale state.
type Poller struct {
	api      Service
	hooks    Hooks
	interval time.Duration
	now      func() time.Time
	log      zerolog.Logger

	mu       sync.Mutex
	running  bool
	gen      uuid.UUID
	stop     chan struct{}
	auctions []core.Auction
	bids     map[string][]core.Bid
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithInterval overrides the one-second tick period.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) { p.interval = d }
}

// WithClock injects the tick clock, for tests.
func WithClock(now func() time.Time) PollerOption {
	return func(p *Poller) { p.now = now }
}

// WithPollerLogger sets the poller's logger.
func WithPollerLogger(log zerolog.Logger) PollerOption {
	return func(p *Poller) { p.log = log }
}

// NewPoller builds a stopped Poller.
func NewPoller(api Service, hooks Hooks, opts ...PollerOption) *Poller {
	p := &Poller{
		api:      api,
		hooks:    hooks,
		interval: defaultInterval,
		now:      time.Now,
		log:      zerolog.Nop(),
		bids:     make(map[string][]core.Bid),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins ticking and kicks off an initial list refresh. Calling Start
// on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.gen = uuid.New()
	p.stop = make(chan struct{})
	stop := p.stop
	p.mu.Unlock()

	p.log.Debug().Msg("poller started")
	go p.run(stop)
	p.Refresh(ctx)
}

// Stop halts the tick loop and invalidates every in-flight fetch. Calling
// Stop on a stopped poller is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.gen = uuid.New() // in-flight responses no longer match
	close(p.stop)
	p.mu.Unlock()

	p.log.Debug().Msg("poller stopped")
}

func (p *Poller) run(stop chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

// tick re-evaluates the countdown engine for every cached auction against
// one shared clock snapshot.
func (p *Poller) tick() {
	now := p.now()

	p.mu.Lock()
	rows := make([]CountdownRow, len(p.auctions))
	for i, a := range p.auctions {
		rows[i] = CountdownRow{
			AuctionID: a.AuctionID,
			Status:    a.Status,
			Countdown: core.ComputePhase(now, a.StartAt, a.EndAt),
		}
	}
	p.mu.Unlock()

	tickTotal.Inc()
	if p.hooks.OnTick != nil {
		p.hooks.OnTick(now, rows)
	}
}

// Refresh fetches the auction list without blocking the tick loop. The
// response is dropped if the poller was stopped or restarted while the
// request was in flight.
func (p *Poller) Refresh(ctx context.Context) {
	p.mu.Lock()
	gen := p.gen
	p.mu.Unlock()

	listFetchInFlight.Inc()
	go func() {
		defer listFetchInFlight.Dec()

		auctions, err := p.api.ListMyAuctions(ctx, "")

		p.mu.Lock()
		if p.gen != gen {
			p.mu.Unlock()
			discardedResponseTotal.Inc()
			p.log.Debug().Msg("discarding stale auction list response")
			return
		}
		if err == nil {
			p.auctions = auctions
		}
		p.mu.Unlock()

		if err != nil {
			listRefreshTotal.WithLabelValues(outcomeError).Inc()
			if p.hooks.OnError != nil {
				p.hooks.OnError(err)
			}
			return
		}
		listRefreshTotal.WithLabelValues(outcomeOK).Inc()
		if p.hooks.OnList != nil {
			p.hooks.OnList(auctions)
		}
	}()
}

// FetchBids loads and caches an auction's bid history, generation-guarded
// like Refresh. Unsupported deployments surface through OnError.
func (p *Poller) FetchBids(ctx context.Context, auctionID string) {
	p.mu.Lock()
	gen := p.gen
	p.mu.Unlock()

	go func() {
		bids, err := p.api.ListBids(ctx, auctionID)

		p.mu.Lock()
		if p.gen != gen {
			p.mu.Unlock()
			discardedResponseTotal.Inc()
			return
		}
		if err == nil {
			p.bids[auctionID] = bids
		}
		p.mu.Unlock()

		if err != nil {
			if p.hooks.OnError != nil {
				p.hooks.OnError(err)
			}
			return
		}
		if p.hooks.OnBids != nil {
			p.hooks.OnBids(auctionID, bids)
		}
	}()
}

// SetAuction replaces one cached auction record, as returned by the
// transition controller's refetch.
func (p *Poller) SetAuction(auction core.Auction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, a := range p.auctions {
		if a.AuctionID == auction.AuctionID {
			p.auctions[i] = auction
			return
		}
	}
	p.auctions = append(p.auctions, auction)
}

// Auctions returns a copy of the cached auction list.
func (p *Poller) Auctions() []core.Auction {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]core.Auction, len(p.auctions))
	copy(out, p.auctions)
	return out
}

// Bids returns the cached bid history for an auction, ranked.
func (p *Poller) Bids(auctionID string) ([]core.Bid, bool) {
	p.mu.Lock()
	bids, ok := p.bids[auctionID]
	p.mu.Unlock()
	if !ok {
		return nil, false
	}
	return core.RankBids(bids), true
}

// Snapshot captures the cached state for persistence.
func (p *Poller) Snapshot() *Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := &Snapshot{
		SavedAt:  p.now(),
		Auctions: make([]core.Auction, len(p.auctions)),
		Bids:     make(map[string][]core.Bid, len(p.bids)),
	}
	copy(s.Auctions, p.auctions)
	for id, bids := range p.bids {
		cp := make([]core.Bid, len(bids))
		copy(cp, bids)
		s.Bids[id] = cp
	}
	return s
}

// Restore seeds the cache from a persisted snapshot, typically before the
// first live fetch lands. A nil snapshot is ignored.
func (p *Poller) Restore(s *Snapshot) {
	if s == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.auctions = make([]core.Auction, len(s.Auctions))
	copy(p.auctions, s.Auctions)
	p.bids = make(map[string][]core.Bid, len(s.Bids))
	for id, bids := range s.Bids {
		cp := make([]core.Bid, len(bids))
		copy(cp, bids)
		p.bids[id] = cp
	}
}
