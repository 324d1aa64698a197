package metrics

// Prometheus metric namespaces
const (
	namespaceSurety = "surety"
)

// Contract subsystems
const (
	subsystemContract  = "contract"
	subsystemConsensus = "status_consensus"
)

// Infrastructure subsystems
const (
	subsystemBadger      = "badger"
	subsystemCache       = "cache"
	subsystemOracleAgent = "oracle_agent"
	subsystemAdmin       = "admin"
)
