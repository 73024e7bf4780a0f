// Package pingurl checks that a URL becomes reachable, retrying with a fixed
// delay, and reports the result to the CI runner as a step output and as the
// process exit status.
//
// # Packages
//
//   - probe: a single GET against the target, classified as success,
//     connection failure, invalid URL or unexpected response.
//   - prober: the bounded retry loop with per-request timeouts and a Report
//     of every attempt.
//   - config: the explicit Config read once from INPUT_* and runner variables.
//   - workflow: step outputs, job summary and ::error:: annotations.
//   - action: one end-to-end run, from Config to url-reachable output.
//   - jsonutil: sonic helpers used for the JSON report.
//   - logging: slog text handler for progress lines.
//
// # Quick Start
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := action.Run(ctx, cfg, action.WithLogger(logger)); err != nil {
//	    // url-reachable=false has already been written
//	    os.Exit(1)
//	}
//
// The binary in cmd/pingurl does exactly this and also loads a .env file for
// local runs.
package pingurl
