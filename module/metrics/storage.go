package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StorageCollector counts storage level retries. It is
// a process wide singleton because the storage operations are free functions.
type StorageCollector struct {
	retryOnConflict prometheus.Counter
}

var (
	storageCollector *StorageCollector
	once             sync.Once
)

// GetStorageCollector returns the process wide storage collector, registered
// with the default prometheus registry on first use.
func GetStorageCollector() *StorageCollector {
	once.Do(func() {
		storageCollector = &StorageCollector{
			retryOnConflict: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: namespaceSurety,
				Subsystem: subsystemBadger,
				Name:      "retry_on_conflict_total",
				Help:      "number of transactions re-executed after an optimistic conflict",
			}),
		}
	})
	return storageCollector
}

func (sc *StorageCollector) RetryOnConflict() {
	sc.retryOnConflict.Inc()
}
