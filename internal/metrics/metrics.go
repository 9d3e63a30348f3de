package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "courier_connections_active",
		Help: "Number of live websocket connections.",
	})

	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courier_events_total",
		Help: "Inbound websocket events by type.",
	}, []string{"type"})

	MessagesPersisted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "courier_messages_persisted_total",
		Help: "Messages written to the store by scope.",
	}, []string{"scope"})

	BroadcastsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "courier_broadcasts_total",
		Help: "Room and global fan-outs performed by the hub.",
	})
)
