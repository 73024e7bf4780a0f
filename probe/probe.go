package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxDrainBytes bounds how much of a response body is read before closing.
const maxDrainBytes = 64 << 10

// Func performs one check and returns an error when the target is unavailable.
// Use Classify to map the error to an Outcome.
type Func func(ctx context.Context) error

// HTTPDoer represents the subset of *http.Client required by the HTTP probe helper.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPProbe creates a Func that performs an HTTP request against the supplied endpoint.
// The probe succeeds when the response status code is 200 unless the expectation
// is overridden with WithHTTPAllowedStatuses or WithHTTPStatusExpectation.
func NewHTTPProbe(name, method, target string, client HTTPDoer, opts ...HTTPProbeOption) Func {
	return func(ctx context.Context) error {
		endpoint, err := ValidateURL(target)
		if err != nil {
			return fmt.Errorf("%s probe: %w", name, err)
		}

		verb := strings.ToUpper(strings.TrimSpace(method))
		if verb == "" {
			verb = http.MethodGet
		}

		ctx = contextOrBackground(ctx)

		req, err := http.NewRequestWithContext(ctx, verb, endpoint, nil)
		if err != nil {
			return fmt.Errorf("%s probe: failed to build request: %w: %w", name, ErrInvalidURL, err)
		}

		cfg := newAttemptConfig(client, opts...)

		if err := cfg.prepare(req); err != nil {
			return fmt.Errorf("%s probe: request mutation failed: %w", name, err)
		}

		resp, err := cfg.client.Do(req)
		if err != nil {
			return fmt.Errorf("%s probe request failed: %w: %w", name, ErrConnection, err)
		}
		defer resp.Body.Close()

		checkErr := cfg.check(resp)

		// Drain on every status so retries against an erroring server reuse the connection.
		if cfg.drain {
			_, drainErr := io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))
			if checkErr == nil && drainErr != nil {
				return fmt.Errorf("%s probe: failed to drain response body: %w: %w", name, ErrConnection, drainErr)
			}
		}

		if checkErr != nil {
			return fmt.Errorf("%s probe: %w", name, checkErr)
		}
		return nil
	}
}

// ValidateURL trims target and checks that it is an absolute http or https URL
// with a host. The returned error wraps ErrInvalidURL.
func ValidateURL(target string) (string, error) {
	trimmed := strings.TrimSpace(target)
	if trimmed == "" {
		return "", fmt.Errorf("%w: target URL is required", ErrInvalidURL)
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	case "":
		return "", fmt.Errorf("%w: %q has no scheme, make sure it starts with http:// or https://", ErrInvalidURL, trimmed)
	default:
		return "", fmt.Errorf("%w: unsupported scheme %q in %q", ErrInvalidURL, u.Scheme, trimmed)
	}

	if u.Host == "" {
		return "", fmt.Errorf("%w: %q has no host", ErrInvalidURL, trimmed)
	}
	return trimmed, nil
}
