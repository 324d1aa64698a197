package storage

// ConsumerProgress persists the cursor of an event log consumer, i.e. the
// height of the last event it processed.
type ConsumerProgress interface {
	// ProcessedIndex returns the last processed height.
	// Errors:
	// storage.ErrNotFound if the consumer has not been initialized
	// No errors are expected during normal operation
	ProcessedIndex() (uint64, error)

	// InitProcessedIndex inserts the starting height of the consumer.
	// It should only be called once.
	// Errors:
	// storage.ErrAlreadyExists is the consumer has already been initialized
	// No other errors are expected during normal operation
	InitProcessedIndex(defaultIndex uint64) error

	// SetProcessedIndex updates the processed height.
	// It will return a generic error if InitProcessedIndex was never called.
	// No errors are expected during normal operation.
	SetProcessedIndex(processed uint64) error

	// Consumer returns the consumer's name
	Consumer() string
}
