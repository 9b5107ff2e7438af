package debate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusActive, true},
		{StatusActive, StatusCompleted, true},
		{StatusPending, StatusArchived, true},
		{StatusActive, StatusArchived, true},
		{StatusCompleted, StatusArchived, true},

		{StatusPending, StatusCompleted, false},
		{StatusActive, StatusPending, false},
		{StatusCompleted, StatusActive, false},
		{StatusCompleted, StatusPending, false},
		{StatusArchived, StatusArchived, false},
		{StatusArchived, StatusActive, false},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to),
			"transition %s -> %s", tc.from, tc.to)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusActive, StatusCompleted, StatusArchived} {
		require.True(t, s.Valid())
	}
	require.False(t, Status("deleted").Valid())
	require.False(t, Status("").Valid())
}
