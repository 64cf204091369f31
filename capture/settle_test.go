package capture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedScroller replays a fixed sequence of height measurements.
type scriptedScroller struct {
	heights []int64
	reads   int
	scrolls int
	err     error
}

func (s *scriptedScroller) ScrollHeight() (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	h := s.heights[s.reads]
	if s.reads < len(s.heights)-1 {
		s.reads++
	}
	return h, nil
}

func (s *scriptedScroller) ScrollByViewport() error {
	s.scrolls++
	return nil
}

func TestSettleStopsOnStableHeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		heights     []int64
		wantScrolls int
	}{
		{
			name:        "static_page_stops_after_first_comparison",
			heights:     []int64{1000, 1000},
			wantScrolls: 1,
		},
		{
			name:        "grows_then_stabilizes",
			heights:     []int64{1000, 2000, 3000, 3000},
			wantScrolls: 3,
		},
		{
			name:        "shrinking_height_is_not_stable",
			heights:     []int64{3000, 2000, 2000},
			wantScrolls: 2,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sc := &scriptedScroller{heights: tt.heights}
			s := Settler{MaxScrolls: 30, Pause: time.Millisecond, Sleep: func(time.Duration) {}}
			require.NoError(t, s.Settle(sc))
			assert.Equal(t, tt.wantScrolls, sc.scrolls)
		})
	}
}

func TestSettleHitsIterationCap(t *testing.T) {
	t.Parallel()

	// Height grows forever; the cap bounds total work.
	heights := make([]int64, 64)
	for i := range heights {
		heights[i] = int64(1000 * (i + 1))
	}
	sc := &scriptedScroller{heights: heights}
	s := Settler{MaxScrolls: 30, Sleep: func(time.Duration) {}}
	require.NoError(t, s.Settle(sc))
	assert.Equal(t, 30, sc.scrolls)
}

func TestSettlePropagatesMeasurementError(t *testing.T) {
	t.Parallel()

	sc := &scriptedScroller{err: assert.AnError}
	s := Settler{MaxScrolls: 30, Sleep: func(time.Duration) {}}
	require.ErrorIs(t, s.Settle(sc), assert.AnError)
	assert.Zero(t, sc.scrolls)
}

func TestSettleCountsPauses(t *testing.T) {
	t.Parallel()

	var slept []time.Duration
	sc := &scriptedScroller{heights: []int64{1000, 2000, 2000}}
	s := Settler{MaxScrolls: 30, Pause: time.Second, Sleep: func(d time.Duration) { slept = append(slept, d) }}
	require.NoError(t, s.Settle(sc))
	assert.Equal(t, []time.Duration{time.Second, time.Second}, slept)
}
