package scheduler

import (
	"fmt"
	"time"
)

// Trigger computes when a job fires next.
type Trigger interface {
	// Next returns the first fire time strictly after after, or the zero time if there is none.
	Next(after time.Time) time.Time
	String() string
}

// IntervalTrigger fires at a fixed period.
type IntervalTrigger struct {
	Every time.Duration
}

func Every(d time.Duration) IntervalTrigger {
	return IntervalTrigger{Every: d}
}

func (t IntervalTrigger) Next(after time.Time) time.Time {
	if t.Every <= 0 {
		return time.Time{}
	}
	return after.Add(t.Every)
}

func (t IntervalTrigger) String() string {
	return fmt.Sprintf("interval[%s]", t.Every)
}
