package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuoteRequestsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_quote_requests_created_total",
		Help: "Total number of quote requests successfully created.",
	})

	QuotesIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_quotes_issued_total",
		Help: "Total number of quotes issued by staff.",
	})

	QuotesConvertedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_quotes_converted_total",
		Help: "Total number of accepted quotes converted into shipments.",
	})

	TrackingEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_tracking_events_total",
		Help: "Total number of tracking events appended to shipments.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	NotificationsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_notifications_dropped_total",
		Help: "Total number of notification messages dropped by the best-effort dispatcher.",
	})

	SessionCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "portal_session_cache_items",
		Help: "Current number of items in the session cache.",
	})
)
