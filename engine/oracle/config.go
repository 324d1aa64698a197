package oracle

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/onflow/flight-surety/model/surety"
)

// Config configures the simulated oracles.
type Config struct {
	// Oracles are the accounts registered and operated by the agent. Each must
	// hold at least the registration fee unless it is registered already.
	Oracles []surety.Address
	// Status is reported by every oracle unless RandomStatus is set.
	Status surety.FlightStatus
	// RandomStatus makes each oracle draw a status per response.
	RandomStatus bool

	PollInterval time.Duration
	// BatchSize is the maximum number of events read per poll.
	BatchSize uint64
	// Workers bounds the number of concurrent response submissions.
	Workers int
	// QueueCapacity bounds the number of requests waiting for dispatch.
	// Requests beyond it are dropped.
	QueueCapacity int
	// SeenCacheSize is the number of processed events remembered to skip
	// replays.
	SeenCacheSize int
	// SubmitRetries is the number of retries of a submission failing for
	// reasons other than a rejection by the contract.
	SubmitRetries uint64
	RetryBase     time.Duration
}

func DefaultConfig() Config {
	return Config{
		Status:        surety.StatusLateAirline,
		PollInterval:  500 * time.Millisecond,
		BatchSize:     100,
		Workers:       8,
		QueueCapacity: 1000,
		SeenCacheSize: 10_000,
		SubmitRetries: 3,
		RetryBase:     50 * time.Millisecond,
	}
}

func (c Config) Validate() error {
	var result *multierror.Error
	if !c.RandomStatus && !c.Status.Valid() {
		result = multierror.Append(result, fmt.Errorf("invalid status code %d", c.Status))
	}
	if c.PollInterval <= 0 {
		result = multierror.Append(result, fmt.Errorf("poll interval must be positive"))
	}
	if c.BatchSize == 0 {
		result = multierror.Append(result, fmt.Errorf("batch size must be positive"))
	}
	if c.Workers <= 0 {
		result = multierror.Append(result, fmt.Errorf("workers must be positive"))
	}
	if c.QueueCapacity <= 0 {
		result = multierror.Append(result, fmt.Errorf("queue capacity must be positive"))
	}
	if c.SeenCacheSize <= 0 {
		result = multierror.Append(result, fmt.Errorf("seen cache size must be positive"))
	}
	if c.RetryBase <= 0 {
		result = multierror.Append(result, fmt.Errorf("retry base must be positive"))
	}
	seen := make(map[surety.Address]struct{}, len(c.Oracles))
	for _, address := range c.Oracles {
		if _, ok := seen[address]; ok {
			result = multierror.Append(result, fmt.Errorf("duplicate oracle %s", address))
		}
		seen[address] = struct{}{}
	}
	return result.ErrorOrNil()
}
