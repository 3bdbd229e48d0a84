package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecalculateTaskID(t *testing.T) {
	const debounce = 5 * time.Second

	first := time.Date(2026, 3, 4, 10, 0, 1, 0, time.UTC)

	testCases := []struct {
		name string
		at   time.Time
		same bool
	}{
		{name: "Same window", at: first.Add(3 * time.Second), same: true},
		{name: "While first task runs", at: first.Add(debounce), same: false},
		{name: "Next window", at: first.Add(4 * time.Second), same: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			id := recalculateTaskID("sub", first, debounce)
			other := recalculateTaskID("sub", tc.at, debounce)

			if tc.same {
				rq.Equal(id, other)
			} else {
				rq.NotEqual(id, other)
			}
		})
	}
}

func TestRecalculateTaskIDWithoutDebounce(t *testing.T) {
	rq := require.New(t)

	at := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

	rq.NotEqual(
		recalculateTaskID("sub", at, 0),
		recalculateTaskID("sub", at.Add(time.Millisecond), 0),
	)
	rq.NotEqual(
		recalculateTaskID("first", at, time.Minute),
		recalculateTaskID("second", at, time.Minute),
	)
}
