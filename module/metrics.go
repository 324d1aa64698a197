package module

import (
	"time"
)

type CacheMetrics interface {
	// CacheEntries report the total number of cached items
	CacheEntries(resource string, entries uint)
	// CacheHit report the number of times the queried item is found in the cache
	CacheHit(resource string)
	// CacheNotFound records the number of times the queried item was not found in either cache or database.
	CacheNotFound(resource string)
	// CacheMiss report the number of times the queried item is not found in the cache, but found in the database.
	CacheMiss(resource string)
}

// ContractMetrics tracks the operations executed by the contract coordinator.
type ContractMetrics interface {
	// OperationExecuted records a committed operation and its execution time.
	OperationExecuted(operation string, duration time.Duration)
	// OperationRejected records an operation rejected with a coded error.
	OperationRejected(operation string, code string)
	// OperationFailed records an operation aborted by an unexpected failure.
	OperationFailed(operation string)
	// EventsEmitted records the number of events appended by a committed operation.
	EventsEmitted(count int)
	// StatusRequestResolved records a status request reaching consensus with the
	// given number of votes for the winning status.
	StatusRequestResolved(votes int)
}

// OracleAgentMetrics tracks the oracle simulation agent.
type OracleAgentMetrics interface {
	// OracleRequestObserved records an OracleRequest event read from the log.
	OracleRequestObserved()
	// OracleResponseSubmitted records a response accepted by the contract.
	OracleResponseSubmitted()
	// OracleResponseRejected records a response rejected by the contract.
	OracleResponseRejected(code string)
	// ProcessedHeight reports the event log height processed by the agent.
	ProcessedHeight(height uint64)
	// RequestQueueLength reports the number of requests waiting for dispatch.
	RequestQueueLength(length int)
}

// AdminMetrics tracks operator commands.
type AdminMetrics interface {
	AdminCommandHandled(command string, success bool)
}
