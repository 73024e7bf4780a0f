package prober

import (
	"fmt"
	"os"
	"time"

	"github.com/drblury/pingurl/jsonutil"
	"github.com/drblury/pingurl/probe"
)

// State is the terminal state of a probe run.
type State string

const (
	StateSuccess    State = "success"
	StateInvalidURL State = "invalid_url"
	StateExhausted  State = "exhausted"
	StateCanceled   State = "canceled"
)

// Attempt records one request and its classified outcome.
type Attempt struct {
	Number     int           `json:"number"`
	Outcome    probe.Outcome `json:"outcome"`
	StatusCode int           `json:"status_code,omitempty"`
	Error      string        `json:"error,omitempty"`
	DurationMS int64         `json:"duration_ms"`
}

// Report is the full record of a probe run.
type Report struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	Reachable    bool      `json:"reachable"`
	State        State     `json:"state"`
	MaxAttempts  int       `json:"max_attempts"`
	DelaySeconds float64   `json:"delay_seconds"`
	Sleeps       int       `json:"sleeps"`
	Attempts     []Attempt `json:"attempts"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}

// Elapsed is the wall time of the run.
func (r Report) Elapsed() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// LastAttempt returns the final attempt, if any were made.
func (r Report) LastAttempt() (Attempt, bool) {
	if len(r.Attempts) == 0 {
		return Attempt{}, false
	}
	return r.Attempts[len(r.Attempts)-1], true
}

// WriteFile stores the report as indented JSON at path.
func (r Report) WriteFile(path string) error {
	data, err := jsonutil.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
