package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/onflow/flight-surety/module"
)

// ContractCollector the metrics for the contract coordinator
type ContractCollector struct {
	executed      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	rejected      *prometheus.CounterVec
	failed        *prometheus.CounterVec
	eventsEmitted prometheus.Counter
	resolved      prometheus.Counter
	winningVotes  prometheus.Histogram
}

// interface check
var _ module.ContractMetrics = (*ContractCollector)(nil)

func NewContractCollector(registerer prometheus.Registerer) *ContractCollector {
	factory := promauto.With(registerer)
	return &ContractCollector{
		executed: factory.NewCounterVec(prometheus.CounterOpts{
			Name:      "operations_executed_total",
			Namespace: namespaceSurety,
			Subsystem: subsystemContract,
			Help:      "counter for the committed operations",
		}, []string{LabelOperation}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:      "operation_duration_seconds",
			Namespace: namespaceSurety,
			Subsystem: subsystemContract,
			Help:      "execution time of committed operations, including retries",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{LabelOperation}),
		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name:      "operations_rejected_total",
			Namespace: namespaceSurety,
			Subsystem: subsystemContract,
			Help:      "counter for the operations rejected with a coded error",
		}, []string{LabelOperation, LabelCode}),
		failed: factory.NewCounterVec(prometheus.CounterOpts{
			Name:      "operations_failed_total",
			Namespace: namespaceSurety,
			Subsystem: subsystemContract,
			Help:      "counter for the operations aborted by an unexpected failure",
		}, []string{LabelOperation}),
		eventsEmitted: factory.NewCounter(prometheus.CounterOpts{
			Name:      "events_emitted_total",
			Namespace: namespaceSurety,
			Subsystem: subsystemContract,
			Help:      "counter for the events appended to the event log",
		}),
		resolved: factory.NewCounter(prometheus.CounterOpts{
			Name:      "status_requests_resolved_total",
			Namespace: namespaceSurety,
			Subsystem: subsystemConsensus,
			Help:      "counter for the flight status requests reaching consensus",
		}),
		winningVotes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:      "winning_votes",
			Namespace: namespaceSurety,
			Subsystem: subsystemConsensus,
			Help:      "number of votes for the winning status at resolution",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),
	}
}

func (cc *ContractCollector) OperationExecuted(operation string, duration time.Duration) {
	cc.executed.WithLabelValues(operation).Inc()
	cc.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (cc *ContractCollector) OperationRejected(operation string, code string) {
	cc.rejected.WithLabelValues(operation, code).Inc()
}

func (cc *ContractCollector) OperationFailed(operation string) {
	cc.failed.WithLabelValues(operation).Inc()
}

func (cc *ContractCollector) EventsEmitted(count int) {
	cc.eventsEmitted.Add(float64(count))
}

func (cc *ContractCollector) StatusRequestResolved(votes int) {
	cc.resolved.Inc()
	cc.winningVotes.Observe(float64(votes))
}
