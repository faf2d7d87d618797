package metrics

import "github.com/prometheus/client_golang/prometheus"

// Storefront Prometheus metrics: hybrid search and the order pipeline.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nomura",
			Name:      "search_requests_total",
			Help:      "Total number of inventory search requests",
		},
		[]string{"status"}, // "ok" / "empty" / "error"
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "nomura",
			Name:      "search_duration_seconds",
			Help:      "Inventory search duration in seconds, embedding call included",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	SearchResultsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "nomura",
			Name:      "search_results_returned",
			Help:      "Number of results returned per search after the score cutoff",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	OrdersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "nomura",
			Name:      "orders_created_total",
			Help:      "Total number of completed checkouts",
		},
	)

	ItemsSoldTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "nomura",
			Name:      "items_sold_total",
			Help:      "Total number of item units sold",
		},
	)

	CartsPromotedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "nomura",
			Name:      "carts_promoted_total",
			Help:      "Total number of carts promoted to permanent on login",
		},
	)
)

var storefrontMetricsRegistered bool

// RegisterStorefrontMetrics registers search and order metrics. Must be called once from main.
func RegisterStorefrontMetrics() {
	if storefrontMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResultsReturned)
	prometheus.MustRegister(OrdersCreatedTotal)
	prometheus.MustRegister(ItemsSoldTotal)
	prometheus.MustRegister(CartsPromotedTotal)
	storefrontMetricsRegistered = true
}
