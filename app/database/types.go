package database

import (
	"time"
)

// Run is one recorded pipeline result.
type Run struct {
	ID        int64
	Set       string
	State     string
	Success   bool
	FailedAt  string // step that was running when the run failed
	Error     string
	Warnings  int
	StartedAt time.Time
	Duration  time.Duration
	Outputs   []RunOutput
}

type RunOutput struct {
	Name       string `json:"name"`
	Icons      int    `json:"icons"`
	Categories int    `json:"categories"`
	Tags       int    `json:"tags"`
}
