package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// CronTrigger fires on a standard 5-field cron schedule evaluated in a fixed location.
// When both day-of-month and day-of-week are restricted, a day matching either fires.
type CronTrigger struct {
	expr     string
	loc      *time.Location
	schedule cron.Schedule
}

// ParseCron parses "minute hour day-of-month month day-of-week" or a descriptor such as
// "@daily". The location comes from loc, never from the expression. A nil loc means UTC.
func ParseCron(expr string, loc *time.Location) (*CronTrigger, error) {
	if loc == nil {
		loc = time.UTC
	}
	expr = strings.Join(strings.Fields(expr), " ")
	if strings.Contains(expr, "TZ=") {
		return nil, fmt.Errorf("cron %q: time zone belongs in the configured location", expr)
	}

	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("cron %q: %w", expr, err)
	}
	return &CronTrigger{expr: expr, loc: loc, schedule: schedule}, nil
}

func (c *CronTrigger) String() string {
	return fmt.Sprintf("cron[%s]", c.expr)
}

// Next returns the first matching minute after after, or the zero time when nothing
// matches within five years.
func (c *CronTrigger) Next(after time.Time) time.Time {
	return c.schedule.Next(after.In(c.loc))
}
