package metrics

const (
	LabelResource  = "resource"
	LabelOperation = "operation"
	LabelCode      = "code"
	LabelCommand   = "command"
	LabelSuccess   = "success"
)

const (
	ResourceUndefined     = "undefined"
	ResourceEvent         = "event"
	ResourceOracle        = "oracle"
	ResourceSeenRequest   = "seen_oracle_request"  // oracle agent
	ResourceOracleRequest = "oracle_request_queue" // oracle agent
)
