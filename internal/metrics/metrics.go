package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, route pattern, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simplifai_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "route", "status"})

	// RelayTotal counts relay operations by outcome (ok, missing_key, invalid, provider_error).
	RelayTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simplifai_relay_total",
		Help: "Relay operations by operation and outcome.",
	}, []string{"operation", "outcome"})

	// ProviderDuration tracks Gemini call latency per operation.
	ProviderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "simplifai_provider_duration_seconds",
		Help:    "Time spent waiting on the Gemini API.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"operation"})

	// InputChars tracks the distribution of input text lengths.
	InputChars = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "simplifai_input_chars",
		Help:    "Characters in the text or message relayed to the model.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"operation"})

	// ChatHistoryTurns tracks how many prior turns are replayed per chat.
	ChatHistoryTurns = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "simplifai_chat_history_turns",
		Help:    "Prior turns replayed per chat request.",
		Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
	})

	// RateLimited counts requests rejected by the rate limiter.
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "simplifai_rate_limited_total",
		Help: "Requests rejected by the rate limiter.",
	})
)
