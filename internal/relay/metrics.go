package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	connectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "relay_connected_clients",
			Help: "Number of users with a registered live connection",
		},
	)

	eventsPushed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_events_pushed_total",
			Help: "Events queued for delivery, by event name",
		},
		[]string{"event"},
	)

	eventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_events_dropped_total",
			Help: "Events dropped because the user was offline or the send buffer was full",
		},
		[]string{"event"},
	)
)
