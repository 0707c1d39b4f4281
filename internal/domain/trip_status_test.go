package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to TripStatus }{
		{TripPending, TripActive},
		{TripActive, TripCompleted},
		{TripPending, TripCancelled},
		{TripActive, TripCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	statuses := []TripStatus{TripPending, TripActive, TripCompleted, TripCancelled}

	// Terminal states admit no outgoing transition at all.
	for _, from := range []TripStatus{TripCompleted, TripCancelled} {
		for _, to := range statuses {
			assert.False(t, CanTransition(from, to), "%s -> %s must be rejected", from, to)
		}
	}

	// Nothing transitions back into pending, and pending can't skip to completed.
	for _, from := range statuses {
		assert.False(t, CanTransition(from, TripPending))
	}
	assert.False(t, CanTransition(TripPending, TripCompleted))

	// No self-transitions.
	for _, s := range statuses {
		assert.False(t, CanTransition(s, s))
	}
}

func TestAllowedSourcesMatchesCanTransition(t *testing.T) {
	statuses := []TripStatus{TripPending, TripActive, TripCompleted, TripCancelled}
	for _, to := range statuses {
		for _, from := range statuses {
			want := CanTransition(from, to)
			got := false
			for _, s := range AllowedSources(to) {
				if s == from {
					got = true
				}
			}
			assert.Equal(t, want, got, "%s -> %s", from, to)
		}
	}
	assert.Empty(t, AllowedSources(TripPending))
}

func TestParseTripStatus(t *testing.T) {
	for _, s := range []string{"pending", "active", "completed", "cancelled"} {
		st, ok := ParseTripStatus(s)
		require.True(t, ok)
		assert.Equal(t, TripStatus(s), st)
	}
	_, ok := ParseTripStatus("done")
	assert.False(t, ok)
	_, ok = ParseTripStatus("")
	assert.False(t, ok)
}

func TestTerminal(t *testing.T) {
	assert.False(t, TripPending.Terminal())
	assert.False(t, TripActive.Terminal())
	assert.True(t, TripCompleted.Terminal())
	assert.True(t, TripCancelled.Terminal())
}
