package metrics

import (
	"time"

	"github.com/onflow/flight-surety/module"
)

type NoopCollector struct{}

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

var _ module.CacheMetrics = (*NoopCollector)(nil)
var _ module.ContractMetrics = (*NoopCollector)(nil)
var _ module.OracleAgentMetrics = (*NoopCollector)(nil)
var _ module.AdminMetrics = (*NoopCollector)(nil)

func (nc *NoopCollector) CacheEntries(resource string, entries uint)                 {}
func (nc *NoopCollector) CacheHit(resource string)                                   {}
func (nc *NoopCollector) CacheNotFound(resource string)                              {}
func (nc *NoopCollector) CacheMiss(resource string)                                  {}
func (nc *NoopCollector) OperationExecuted(operation string, duration time.Duration) {}
func (nc *NoopCollector) OperationRejected(operation string, code string)            {}
func (nc *NoopCollector) OperationFailed(operation string)                           {}
func (nc *NoopCollector) EventsEmitted(count int)                                    {}
func (nc *NoopCollector) StatusRequestResolved(votes int)                            {}
func (nc *NoopCollector) OracleRequestObserved()                                     {}
func (nc *NoopCollector) OracleResponseSubmitted()                                   {}
func (nc *NoopCollector) OracleResponseRejected(code string)                         {}
func (nc *NoopCollector) ProcessedHeight(height uint64)                              {}
func (nc *NoopCollector) RequestQueueLength(length int)                              {}
func (nc *NoopCollector) AdminCommandHandled(command string, success bool)           {}
