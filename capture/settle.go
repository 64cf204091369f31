package capture

import "time"

// Scroller is the slice of a browsing context the settling strategy needs.
type Scroller interface {
	ScrollHeight() (int64, error)
	ScrollByViewport() error
}

// Settler surfaces lazily-loaded content by scrolling in viewport-height
// increments until the scrollable height stops changing.
type Settler struct {
	MaxScrolls int
	Pause      time.Duration
	Sleep      func(time.Duration)
}

// Settle scrolls until two consecutive height measurements are equal or the
// iteration cap is hit. A page whose height never changes terminates after
// the first comparison. The break condition is strict equality, so a
// shrinking height keeps the loop going with the new baseline.
func (s Settler) Settle(sc Scroller) error {
	sleep := s.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	last, err := sc.ScrollHeight()
	if err != nil {
		return err
	}
	for i := 0; i < s.MaxScrolls; i++ {
		if err := sc.ScrollByViewport(); err != nil {
			return err
		}
		sleep(s.Pause)

		height, err := sc.ScrollHeight()
		if err != nil {
			return err
		}
		if height == last {
			return nil
		}
		last = height
	}
	return nil
}
