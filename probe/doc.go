// Package probe performs a single availability check against an HTTP
// endpoint and classifies the result into an Outcome. Retrying lives in the
// prober package; see ExampleNewHTTPProbe and ExampleClassify for quick-start
// patterns.
package probe
