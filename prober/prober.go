package prober

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/drblury/pingurl/probe"
)

// Target describes one probe run.
type Target struct {
	URL         string
	Delay       time.Duration
	MaxAttempts int
	// Timeout bounds each request. Zero disables the bound.
	Timeout time.Duration
}

// Prober runs bounded retry loops against a single URL.
type Prober struct {
	client    probe.HTTPDoer
	log       *slog.Logger
	sleep     SleepFunc
	now       func() time.Time
	probeOpts []probe.HTTPProbeOption
}

// New constructs a Prober with a plain http.Client, the default slog logger
// and a context-aware sleep.
func New(opts ...Option) *Prober {
	p := &Prober{
		client: &http.Client{},
		log:    slog.Default(),
		sleep:  sleepContext,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Reachable reports whether target answered with an expected status within
// its attempt budget.
func (p *Prober) Reachable(ctx context.Context, target Target) bool {
	return p.Probe(ctx, target).Reachable
}

// Probe polls target until it succeeds, the URL proves invalid, the budget is
// spent or ctx is done. Retryable failures are always followed by a sleep of
// target.Delay, including the last one.
func (p *Prober) Probe(ctx context.Context, target Target) Report {
	if ctx == nil {
		ctx = context.Background()
	}

	started := p.now()
	report := Report{
		ID:           NewRunID(started),
		URL:          target.URL,
		MaxAttempts:  target.MaxAttempts,
		DelaySeconds: target.Delay.Seconds(),
		StartedAt:    started,
	}
	log := p.log.With("probe_id", report.ID, "url", target.URL)
	check := p.buildProbe(target.URL)
	delay := max(target.Delay, 0)

	for number := 0; number < target.MaxAttempts; number++ {
		attempt := p.attempt(ctx, log, check, number, target.Timeout)
		report.Attempts = append(report.Attempts, attempt)

		switch attempt.Outcome {
		case probe.OutcomeSuccess:
			log.Info("Website is available", "attempt", number+1)
			return p.finish(report, StateSuccess)
		case probe.OutcomeInvalidURL:
			log.Error("Invalid URL format, make sure it starts with http:// or https://", "error", attempt.Error)
			return p.finish(report, StateInvalidURL)
		}

		if ctx.Err() != nil {
			log.Warn("Probe cancelled", "attempt", number+1, "error", ctx.Err())
			return p.finish(report, StateCanceled)
		}

		attrs := []any{
			"attempt", number + 1,
			"max_attempts", target.MaxAttempts,
			"retry_in", delay,
		}
		if attempt.StatusCode != 0 {
			attrs = append(attrs, "status", attempt.StatusCode)
			log.Warn("Website returned an unexpected response, retrying", attrs...)
		} else {
			log.Warn("Website is unreachable, retrying", attrs...)
		}

		report.Sleeps++
		if err := p.sleep(ctx, delay); err != nil {
			log.Warn("Probe cancelled while waiting", "attempt", number+1, "error", err)
			return p.finish(report, StateCanceled)
		}
	}

	log.Error("Attempt budget exhausted", "attempts", len(report.Attempts))
	return p.finish(report, StateExhausted)
}

func (p *Prober) attempt(ctx context.Context, log *slog.Logger, check probe.Func, number int, timeout time.Duration) Attempt {
	attemptCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := p.now()
	err := check(attemptCtx)
	result := Attempt{
		Number:     number,
		Outcome:    probe.Classify(err),
		StatusCode: probe.StatusCode(err),
		DurationMS: p.now().Sub(start).Milliseconds(),
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("attempt %d timed out after %s: %w", number+1, timeout, err)
		}
		result.Error = err.Error()
		log.Debug("Attempt failed", "attempt", number+1, "outcome", result.Outcome, "error", err)
	}
	return result
}

func (p *Prober) buildProbe(target string) probe.Func {
	return probe.NewHTTPProbe("target", http.MethodGet, target, p.client, p.probeOpts...)
}

func (p *Prober) finish(report Report, state State) Report {
	report.State = state
	report.Reachable = state == StateSuccess
	report.FinishedAt = p.now()
	return report
}
