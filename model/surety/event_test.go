package surety_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flight-surety/model/surety"
)

func TestDecodePayload(t *testing.T) {
	candidate := surety.Uint64ToAddress(7)

	t.Run("airline events decode into their payload types", func(t *testing.T) {
		payloads := map[surety.EventType]interface{}{
			surety.EventAirlineVoted:      &surety.AirlineVotedEvent{Candidate: candidate, Name: "Surety Air", VoteCount: 2},
			surety.EventAirlineRegistered: &surety.AirlineRegisteredEvent{Airline: candidate, Name: "Surety Air"},
			surety.EventAirlineFunded:     &surety.AirlineFundedEvent{Airline: candidate, Amount: surety.MustParseAmount("10")},
		}

		for eventType, expected := range payloads {
			data, err := surety.EncodePayload(expected)
			require.NoError(t, err)

			decoded, err := surety.Event{Type: eventType, Payload: data}.DecodePayload()
			require.NoError(t, err)
			assert.Equal(t, expected, decoded, eventType)
		}
	})

	t.Run("airline state is independent of the event payloads", func(t *testing.T) {
		airline := surety.Airline{Address: candidate, State: surety.AirlineVoted}
		assert.Equal(t, "voted", airline.State.String())
	})

	t.Run("unknown event type", func(t *testing.T) {
		_, err := surety.Event{Type: "Unknown"}.DecodePayload()
		require.Error(t, err)
	})
}
