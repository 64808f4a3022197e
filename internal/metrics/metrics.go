package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_requests_total",
			Help: "Total number of classified utterances by primary intent",
		},
		[]string{"intent"},
	)

	FallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nlu_fallback_total",
			Help: "Total number of utterances that matched no intent pattern",
		},
	)

	EntitiesExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_entities_extracted_total",
			Help: "Total number of extracted entities",
		},
		[]string{"entity", "estimated"},
	)

	RequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nlu_request_duration_seconds",
			Help:    "Duration of classification and extraction in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)

	FeedbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_feedback_total",
			Help: "Total number of intent feedback submissions",
		},
		[]string{"correct"},
	)
)

// ObserveEntity counts one extracted entity
func ObserveEntity(name string, estimated *bool) {
	label := "false"
	if estimated != nil {
		label = strconv.FormatBool(*estimated)
	}
	EntitiesExtracted.WithLabelValues(name, label).Inc()
}
