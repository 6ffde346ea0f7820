package model

import "time"

// HostLimit is an operator-defined minimum spacing between requests to one host.
type HostLimit struct {
	ID              int64
	Host            string
	IntervalSeconds int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
