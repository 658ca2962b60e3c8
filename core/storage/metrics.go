package storage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var mediaUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "travel_media_uploads_total",
		Help: "Media uploads by backend, kind and result",
	},
	[]string{"backend", "kind", "result"},
)

// ObserveUpload counts one finished upload attempt.
func ObserveUpload(backend, kind string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	mediaUploadsTotal.WithLabelValues(backend, kind, result).Inc()
}
