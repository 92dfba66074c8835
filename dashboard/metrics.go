package dashboard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tickTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auctiondesk_poller_ticks_total",
		Help: "Countdown ticks evaluated while the auction list is visible.",
	})

	listRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auctiondesk_list_refreshes_total",
		Help: "Auction list fetches by outcome.",
	}, []string{"outcome"})

	listFetchInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "auctiondesk_list_fetches_in_flight",
		Help: "Auction list fetches currently awaiting a response.",
	})

	discardedResponseTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auctiondesk_discarded_responses_total",
		Help: "Fetch responses discarded because the view had navigated away.",
	})

	transitionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auctiondesk_transitions_total",
		Help: "Seller-initiated lifecycle transitions by action and outcome.",
	}, []string{"action", "outcome"})
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
	outcomeStale = "stale"
)
