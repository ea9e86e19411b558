package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "faithconnect_messages_sent_total",
			Help: "Total chat messages sent",
		},
	)

	NotificationsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faithconnect_notifications_dispatched_total",
			Help: "Total notifications dispatched by type",
		},
		[]string{"type"},
	)

	NotificationDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faithconnect_notification_deliveries_total",
			Help: "Notification delivery attempts by channel and outcome",
		},
		[]string{"channel", "outcome"}, // channel: "live" or "push"
	)

	SignalsRelayed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "faithconnect_signals_relayed_total",
			Help: "Total opaque signaling payloads relayed",
		},
	)

	LiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "faithconnect_live_connections",
			Help: "Currently registered websocket sessions",
		},
	)

	ConferenceJoins = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "faithconnect_conference_joins_total",
			Help: "Total conference room joins",
		},
	)
)
