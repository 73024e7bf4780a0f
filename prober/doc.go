// Package prober polls a URL until it answers with an expected status or the
// attempt budget runs out.
//
// Each attempt is a single probe.Func call bounded by a per-request timeout.
// Connection failures and unexpected responses are retried after a fixed
// delay; an invalid URL ends the run immediately. The outcome of every attempt
// is recorded in a Report whose Reachable field is the overall result.
//
//	p := prober.New(prober.WithLogger(logger))
//	report := p.Probe(ctx, prober.Target{
//	    URL:         "https://example.com/health",
//	    Delay:       5 * time.Second,
//	    MaxAttempts: 10,
//	    Timeout:     10 * time.Second,
//	})
//	if !report.Reachable {
//	    // escalate
//	}
package prober
