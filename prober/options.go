package prober

import (
	"context"
	"log/slog"
	"time"

	"github.com/drblury/pingurl/probe"
)

// SleepFunc blocks for d or until ctx is done, returning ctx.Err() in the latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Option follows the functional options pattern used by New.
type Option func(*Prober)

// WithHTTPClient overrides the client used for every attempt.
func WithHTTPClient(client probe.HTTPDoer) Option {
	return func(p *Prober) {
		if client != nil {
			p.client = client
		}
	}
}

// WithLogger injects the logger that receives progress lines.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prober) {
		if logger != nil {
			p.log = logger
		}
	}
}

// WithSleeper replaces the wait between attempts. Tests use it to observe
// delays without sleeping.
func WithSleeper(sleep SleepFunc) Option {
	return func(p *Prober) {
		if sleep != nil {
			p.sleep = sleep
		}
	}
}

// WithClock replaces the time source used for report timestamps and durations.
func WithClock(now func() time.Time) Option {
	return func(p *Prober) {
		if now != nil {
			p.now = now
		}
	}
}

// WithProbeOptions forwards options to every probe.NewHTTPProbe call, for
// example probe.WithHTTPAllowedStatuses or request mutators.
func WithProbeOptions(opts ...probe.HTTPProbeOption) Option {
	return func(p *Prober) {
		p.probeOpts = append(p.probeOpts, opts...)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
