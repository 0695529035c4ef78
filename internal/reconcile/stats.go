package reconcile

import "time"

// PassStats counts what one pass did. A counter is incremented exactly once
// per successful apply call; failed applies count as errors instead.
type PassStats struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// PassResult is the outcome of one pass, returned to the Runner's caller.
type PassResult struct {
	Success   bool          `json:"success"`
	Stats     PassStats     `json:"stats"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
}

// Stats accumulates across passes. It is the only state that outlives a
// pass, survives partial failures, and resets only on explicit operator
// action (the daemon's /stats/reset endpoint).
type Stats struct {
	Passes        int       `json:"passes"`
	LastPassStart time.Time `json:"last_pass_start"`
	Created       int       `json:"created"`
	Updated       int       `json:"updated"`
	Errors        int       `json:"errors"`
}

func (s *Stats) record(res *PassResult) {
	s.Passes++
	s.LastPassStart = res.StartedAt
	s.Created += res.Stats.Created
	s.Updated += res.Stats.Updated
	s.Errors += res.Stats.Errors
}
