// Package action wires configuration, the prober and the workflow outputs
// into a single run of the availability check.
package action

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/drblury/pingurl/config"
	"github.com/drblury/pingurl/probe"
	"github.com/drblury/pingurl/prober"
	"github.com/drblury/pingurl/workflow"
)

const (
	// OutputReachable is the step output carrying the boolean result.
	OutputReachable = "url-reachable"
	// UserAgent is sent with every probe request.
	UserAgent = "pingurl"
)

// ErrUnreachable is matched by the error Run returns when the target was not reachable.
var ErrUnreachable = errors.New("website is malformed or unreachable")

// UnreachableError describes a failed run.
type UnreachableError struct {
	URL      string
	State    prober.State
	Attempts int
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("website %s is malformed or unreachable (%s after %d attempt(s))", e.URL, e.State, e.Attempts)
}

// Is makes errors.Is(err, ErrUnreachable) match an UnreachableError.
func (e *UnreachableError) Is(target error) bool {
	return target == ErrUnreachable
}

// Option configures Run.
type Option func(*runner)

type runner struct {
	log        *slog.Logger
	proberOpts []prober.Option
	onReport   func(prober.Report)
}

// WithLogger injects the logger used for progress and result lines.
func WithLogger(logger *slog.Logger) Option {
	return func(r *runner) {
		if logger != nil {
			r.log = logger
		}
	}
}

// WithProberOptions appends options to the prober built by Run, for example a
// custom HTTP client or sleeper.
func WithProberOptions(opts ...prober.Option) Option {
	return func(r *runner) {
		r.proberOpts = append(r.proberOpts, opts...)
	}
}

// WithReportHook receives the report once probing has finished.
func WithReportHook(hook func(prober.Report)) Option {
	return func(r *runner) {
		r.onReport = hook
	}
}

// Run probes cfg.TargetURL, records url-reachable in the output file and
// returns an error wrapping ErrUnreachable when the target never answered
// with an expected status.
func Run(ctx context.Context, cfg *config.Config, opts ...Option) error {
	if cfg == nil {
		return errors.New("action: config is nil")
	}

	r := &runner{log: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	base := []prober.Option{
		prober.WithLogger(r.log),
		prober.WithProbeOptions(
			probe.WithHTTPAllowedStatuses(cfg.ExpectedStatuses...),
			probe.WithHTTPHeader("User-Agent", UserAgent),
		),
	}
	p := prober.New(append(base, r.proberOpts...)...)

	report := p.Probe(ctx, prober.Target{
		URL:         cfg.TargetURL,
		Delay:       cfg.Delay,
		MaxAttempts: cfg.MaxAttempts,
		Timeout:     cfg.Timeout,
	})
	if r.onReport != nil {
		r.onReport(report)
	}

	if err := workflow.NewOutputFile(cfg.OutputPath).SetBool(OutputReachable, report.Reachable); err != nil {
		if !errors.Is(err, workflow.ErrNoOutputFile) {
			return fmt.Errorf("action: set %s output: %w", OutputReachable, err)
		}
		r.log.Warn("No output file configured, skipping step output", "env", config.EnvOutputPath, "output", OutputReachable, "value", report.Reachable)
	}

	if cfg.ReportPath != "" {
		if err := report.WriteFile(cfg.ReportPath); err != nil {
			r.log.Warn("Could not write probe report", "path", cfg.ReportPath, "error", err)
		}
	}
	if err := workflow.AppendSummary(cfg.SummaryPath, Summary(report)); err != nil {
		r.log.Warn("Could not write step summary", "path", cfg.SummaryPath, "error", err)
	}

	if !report.Reachable {
		return &UnreachableError{URL: cfg.TargetURL, State: report.State, Attempts: len(report.Attempts)}
	}

	r.log.Info("Website is reachable", "url", cfg.TargetURL, "attempts", len(report.Attempts), "elapsed", report.Elapsed())
	return nil
}
