package model

import "time"

type JobResult string

const (
	JobResultNone    JobResult = ""
	JobResultOK      JobResult = "ok"
	JobResultFailed  JobResult = "failed"
	JobResultSkipped JobResult = "skipped"
)

// JobStatus is a point-in-time view of a scheduled job.
type JobStatus struct {
	ID         string
	Name       string
	Trigger    string
	Paused     bool
	Running    bool
	NextRun    *time.Time
	LastRun    *time.Time
	LastRunID  string
	LastResult JobResult
	LastError  string
	Runs       int
	Misses     int
}
