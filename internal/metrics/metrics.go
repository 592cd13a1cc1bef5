package metrics

import (
	"fieldrep/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission results
const (
	ResultCreated         = "created"
	ResultInvalid         = "invalid"
	ResultIdentityMissing = "identity_missing"
	ResultRemoteError     = "remote_error"
	ResultInFlight        = "in_flight"
)

var (
	submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fieldrep",
		Subsystem: "forms",
		Name:      "submissions_total",
		Help:      "Form submissions broken down by record kind and result.",
	}, []string{"kind", "result"})

	fetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fieldrep",
		Subsystem: "records",
		Name:      "fetches_total",
		Help:      "Owner-scoped record fetches broken down by record kind and result.",
	}, []string{"kind", "result"})
)

func RecordSubmission(kind model.Kind, result string) {
	submissions.With(prometheus.Labels{"kind": string(kind), "result": result}).Inc()
}

func RecordFetch(kind model.Kind, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	fetches.With(prometheus.Labels{"kind": string(kind), "result": result}).Inc()
}
