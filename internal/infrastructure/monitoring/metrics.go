package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ModeOnline = "online"
	ModeBatch  = "batch"

	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultError   = "error"
)

var (
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "churn_predictions_total",
		Help: "Total number of scored customers by mode and predicted label.",
	}, []string{"mode", "label"})

	BatchRows = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "churn_batch_rows",
		Help:    "Number of rows per batch prediction request.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	AuthAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "churn_auth_attempts_total",
		Help: "Registration and login attempts by outcome.",
	}, []string{"operation", "result"})

	ModelReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "churn_model_reloads_total",
		Help: "Model artifact reload attempts by outcome.",
	}, []string{"result"})
)

func RecordPrediction(mode, label string) {
	PredictionsTotal.WithLabelValues(mode, label).Inc()
}

func ObserveBatchRows(n int) {
	BatchRows.Observe(float64(n))
}

func RecordAuthAttempt(operation, result string) {
	AuthAttemptsTotal.WithLabelValues(operation, result).Inc()
}

func RecordModelReload(result string) {
	ModelReloadsTotal.WithLabelValues(result).Inc()
}
