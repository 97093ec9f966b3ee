package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	GatewayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemma_site_gateway_requests_total",
			Help: "Requests handled by the offline gateway, by class",
		},
		[]string{"class"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemma_site_cache_hits_total",
			Help: "Total cache hits per namespace",
		},
		[]string{"namespace"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemma_site_cache_misses_total",
			Help: "Total cache misses per namespace",
		},
		[]string{"namespace"},
	)

	PrecachedURLs = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gemma_site_precached_urls_total",
			Help: "URLs precached via warmup or CACHE_URLS messages",
		},
	)

	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemma_site_recommendations_total",
			Help: "Recommendation requests processed",
		},
		[]string{"use_case"},
	)

	RecommendationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gemma_site_recommendation_duration_seconds",
			Help:    "Recommendation scoring duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	ChatRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemma_site_chat_requests_total",
			Help: "Chat demo generations, by backend",
		},
		[]string{"backend"},
	)

	ChatTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemma_site_chat_tokens_total",
			Help: "Chat demo token usage",
		},
		[]string{"type"},
	)
)

func Init() {
	prometheus.MustRegister(GatewayRequests)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
	prometheus.MustRegister(PrecachedURLs)
	prometheus.MustRegister(RecommendationsTotal)
	prometheus.MustRegister(RecommendationDuration)
	prometheus.MustRegister(ChatRequests)
	prometheus.MustRegister(ChatTokens)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
