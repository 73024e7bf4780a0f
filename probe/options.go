package probe

import (
	"fmt"
	"net/http"
	"slices"
)

// StatusExpectation reports whether a status code counts as success.
type StatusExpectation func(status int) bool

// RequestMutator adjusts the outbound request, for example to add headers.
type RequestMutator func(req *http.Request) error

// ResponseValidator inspects a response whose status already matched and can
// veto it. A veto is classified as OutcomeUnexpectedResponse.
type ResponseValidator func(resp *http.Response) error

// HTTPProbeOption configures NewHTTPProbe.
type HTTPProbeOption func(*attemptConfig)

type attemptConfig struct {
	client     HTTPDoer
	expect     StatusExpectation
	mutators   []RequestMutator
	validators []ResponseValidator
	drain      bool
}

func newAttemptConfig(client HTTPDoer, opts ...HTTPProbeOption) *attemptConfig {
	cfg := &attemptConfig{
		client: client,
		expect: defaultHTTPStatusExpectation,
		drain:  true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.client == nil {
		cfg.client = http.DefaultClient
	}
	if cfg.expect == nil {
		cfg.expect = defaultHTTPStatusExpectation
	}
	return cfg
}

func (c *attemptConfig) prepare(req *http.Request) error {
	for _, mutate := range c.mutators {
		if mutate == nil {
			continue
		}
		if err := mutate(req); err != nil {
			return err
		}
	}
	return nil
}

func (c *attemptConfig) check(resp *http.Response) error {
	if !c.expect(resp.StatusCode) {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	for _, validate := range c.validators {
		if validate == nil {
			continue
		}
		if err := validate(resp); err != nil {
			return fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
		}
	}
	return nil
}

// WithHTTPStatusExpectation installs a custom success predicate.
func WithHTTPStatusExpectation(expect StatusExpectation) HTTPProbeOption {
	return func(cfg *attemptConfig) {
		cfg.expect = expect
	}
}

// WithHTTPAllowedStatuses makes the listed codes, and only those, count as
// success. An empty list keeps the default of 200.
func WithHTTPAllowedStatuses(statuses ...int) HTTPProbeOption {
	allowed := slices.Clone(statuses)
	return func(cfg *attemptConfig) {
		if len(allowed) == 0 {
			cfg.expect = defaultHTTPStatusExpectation
			return
		}
		cfg.expect = func(status int) bool {
			return slices.Contains(allowed, status)
		}
	}
}

// WithHTTPRequestMutator registers a mutator that runs before the request is sent.
func WithHTTPRequestMutator(mutator RequestMutator) HTTPProbeOption {
	return func(cfg *attemptConfig) {
		cfg.mutators = append(cfg.mutators, mutator)
	}
}

// WithHTTPHeader sets a request header on every attempt.
func WithHTTPHeader(key, value string) HTTPProbeOption {
	return WithHTTPRequestMutator(func(req *http.Request) error {
		req.Header.Set(key, value)
		return nil
	})
}

// WithHTTPResponseValidator registers a validator that runs after the status check.
func WithHTTPResponseValidator(validator ResponseValidator) HTTPProbeOption {
	return func(cfg *attemptConfig) {
		cfg.validators = append(cfg.validators, validator)
	}
}

// WithHTTPDrainResponseBody toggles draining of the response body before it is closed.
func WithHTTPDrainResponseBody(enabled bool) HTTPProbeOption {
	return func(cfg *attemptConfig) {
		cfg.drain = enabled
	}
}
