package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pageHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gavel_page_hits_total",
			Help: "Counter for page renders by page name.",
		},
		[]string{"page"},
	)
	bidsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gavel_bids_accepted_total",
			Help: "Counter for accepted bids.",
		})
	usersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gavel_users_registered_total",
			Help: "Counter for completed registrations.",
		})
)
