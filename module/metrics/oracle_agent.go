package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/onflow/flight-surety/module"
)

type OracleAgentCollector struct {
	requestsObserved   prometheus.Counter
	responsesSubmitted prometheus.Counter
	responsesRejected  *prometheus.CounterVec
	processedHeight    prometheus.Gauge
	queueLength        prometheus.Gauge
}

var _ module.OracleAgentMetrics = (*OracleAgentCollector)(nil)

func NewOracleAgentCollector(registerer prometheus.Registerer) *OracleAgentCollector {
	factory := promauto.With(registerer)
	return &OracleAgentCollector{
		requestsObserved: factory.NewCounter(prometheus.CounterOpts{
			Name:      "requests_observed_total",
			Namespace: namespaceSurety,
			Subsystem: subsystemOracleAgent,
			Help:      "number of oracle requests read from the event log",
		}),
		responsesSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name:      "responses_submitted_total",
			Namespace: namespaceSurety,
			Subsystem: subsystemOracleAgent,
			Help:      "number of oracle responses accepted by the contract",
		}),
		responsesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name:      "responses_rejected_total",
			Namespace: namespaceSurety,
			Subsystem: subsystemOracleAgent,
			Help:      "number of oracle responses rejected by the contract",
		}, []string{LabelCode}),
		processedHeight: factory.NewGauge(prometheus.GaugeOpts{
			Name:      "processed_height",
			Namespace: namespaceSurety,
			Subsystem: subsystemOracleAgent,
			Help:      "the last event log height processed by the agent",
		}),
		queueLength: factory.NewGauge(prometheus.GaugeOpts{
			Name:      "request_queue_length",
			Namespace: namespaceSurety,
			Subsystem: subsystemOracleAgent,
			Help:      "number of requests waiting to be answered",
		}),
	}
}

func (ac *OracleAgentCollector) OracleRequestObserved() {
	ac.requestsObserved.Inc()
}

func (ac *OracleAgentCollector) OracleResponseSubmitted() {
	ac.responsesSubmitted.Inc()
}

func (ac *OracleAgentCollector) OracleResponseRejected(code string) {
	ac.responsesRejected.WithLabelValues(code).Inc()
}

func (ac *OracleAgentCollector) ProcessedHeight(height uint64) {
	ac.processedHeight.Set(float64(height))
}

func (ac *OracleAgentCollector) RequestQueueLength(length int) {
	ac.queueLength.Set(float64(length))
}
