package probe

import (
	"errors"
	"fmt"
	"net/http"
)

// Outcome is the classified result of a single check.
type Outcome string

const (
	OutcomeSuccess            Outcome = "success"
	OutcomeConnectionFailure  Outcome = "connection_failure"
	OutcomeInvalidURL         Outcome = "invalid_url"
	OutcomeUnexpectedResponse Outcome = "unexpected_response"
)

var (
	// ErrInvalidURL marks a target that can never succeed; retrying is pointless.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrConnection marks transport-level failures such as refused connections,
	// DNS errors and timeouts.
	ErrConnection = errors.New("connection failure")
	// ErrUnexpectedResponse marks a response that did not meet the expectation.
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// StatusError reports a status code outside the expected set.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is makes errors.Is(err, ErrUnexpectedResponse) match a StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedResponse
}

// Retryable reports whether another attempt may change the outcome.
func (o Outcome) Retryable() bool {
	return o == OutcomeConnectionFailure || o == OutcomeUnexpectedResponse
}

// Classify maps an error returned by a Func to an Outcome. Errors that carry
// no known sentinel are treated as connection failures.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrInvalidURL):
		return OutcomeInvalidURL
	case errors.Is(err, ErrUnexpectedResponse):
		return OutcomeUnexpectedResponse
	default:
		return OutcomeConnectionFailure
	}
}

// StatusCode extracts the response status carried by err, or 0 when no
// response was received.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
