package probe

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubHTTPClient struct {
	resp    *http.Response
	err     error
	lastReq *http.Request
	calls   int
}

func (s *stubHTTPClient) Do(req *http.Request) (*http.Response, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

// trackingBody records how much of the body was read and whether it was closed.
type trackingBody struct {
	r      *strings.Reader
	read   int
	closed bool
	err    error
}

func newTrackingBody(content string) *trackingBody {
	return &trackingBody{r: strings.NewReader(content)}
}

func (b *trackingBody) Read(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	n, err := b.r.Read(p)
	b.read += n
	return n, err
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

func newResponse(status int) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader("body")),
	}
}

func TestNewHTTPProbe(t *testing.T) {
	t.Run("requires target", func(t *testing.T) {
		client := &stubHTTPClient{resp: newResponse(http.StatusOK)}
		probeFunc := NewHTTPProbe("site", http.MethodGet, "", client)
		err := probeFunc(context.Background())
		if !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("expected ErrInvalidURL, got %v", err)
		}
		if client.calls != 0 {
			t.Fatalf("expected no request, got %d", client.calls)
		}
	})

	t.Run("missing scheme is invalid", func(t *testing.T) {
		client := &stubHTTPClient{resp: newResponse(http.StatusOK)}
		probeFunc := NewHTTPProbe("site", http.MethodGet, "not-a-url", client)
		err := probeFunc(context.Background())
		if Classify(err) != OutcomeInvalidURL {
			t.Fatalf("expected invalid_url outcome, got %v (%v)", Classify(err), err)
		}
		if client.calls != 0 {
			t.Fatalf("expected no request, got %d", client.calls)
		}
	})

	t.Run("success with default client", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("expected GET request, got %s", r.Method)
			}
			io.WriteString(w, "ok")
		}))
		defer server.Close()

		probeFunc := NewHTTPProbe("site", "", server.URL, nil)
		if err := probeFunc(nil); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	})

	t.Run("2xx other than 200 fails by default", func(t *testing.T) {
		client := &stubHTTPClient{resp: newResponse(http.StatusNoContent)}
		probeFunc := NewHTTPProbe("site", http.MethodGet, "https://example.invalid", client)

		err := probeFunc(context.Background())
		if !errors.Is(err, ErrUnexpectedResponse) {
			t.Fatalf("expected ErrUnexpectedResponse, got %v", err)
		}
		if code := StatusCode(err); code != http.StatusNoContent {
			t.Fatalf("expected status 204 in error, got %d", code)
		}
	})

	t.Run("non success status fails", func(t *testing.T) {
		client := &stubHTTPClient{resp: newResponse(http.StatusServiceUnavailable)}
		probeFunc := NewHTTPProbe("site", http.MethodHead, "https://example.invalid", client)

		err := probeFunc(context.Background())
		if Classify(err) != OutcomeUnexpectedResponse {
			t.Fatalf("expected unexpected_response, got %v", err)
		}
		if client.lastReq == nil || client.lastReq.Method != http.MethodHead {
			t.Fatalf("expected HEAD request, got %+v", client.lastReq)
		}
	})

	t.Run("request failure is a connection failure", func(t *testing.T) {
		sentinel := errors.New("network down")
		client := &stubHTTPClient{err: sentinel}
		probeFunc := NewHTTPProbe("site", http.MethodGet, "https://example.invalid", client)

		err := probeFunc(context.Background())
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped sentinel, got %v", err)
		}
		if !errors.Is(err, ErrConnection) {
			t.Fatalf("expected ErrConnection, got %v", err)
		}
		if Classify(err) != OutcomeConnectionFailure {
			t.Fatalf("expected connection_failure, got %v", Classify(err))
		}
	})

	t.Run("refused connection against a closed server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		target := server.URL
		server.Close()

		err := NewHTTPProbe("site", http.MethodGet, target, nil)(context.Background())
		if Classify(err) != OutcomeConnectionFailure {
			t.Fatalf("expected connection_failure, got %v", err)
		}
	})

	t.Run("allowed statuses override the default", func(t *testing.T) {
		client := &stubHTTPClient{resp: newResponse(http.StatusAccepted)}
		probeFunc := NewHTTPProbe("site", http.MethodGet, "https://example.invalid", client,
			WithHTTPAllowedStatuses(http.StatusOK, http.StatusAccepted))
		if err := probeFunc(context.Background()); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	})

	t.Run("headers are applied", func(t *testing.T) {
		client := &stubHTTPClient{resp: newResponse(http.StatusOK)}
		probeFunc := NewHTTPProbe("site", http.MethodGet, "https://example.invalid", client,
			WithHTTPHeader("User-Agent", "pingurl"))
		if err := probeFunc(context.Background()); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if got := client.lastReq.Header.Get("User-Agent"); got != "pingurl" {
			t.Fatalf("expected User-Agent pingurl, got %q", got)
		}
	})

	t.Run("validator veto is an unexpected response", func(t *testing.T) {
		client := &stubHTTPClient{resp: newResponse(http.StatusOK)}
		probeFunc := NewHTTPProbe("site", http.MethodGet, "https://example.invalid", client,
			WithHTTPResponseValidator(func(*http.Response) error { return errors.New("maintenance page") }))
		err := probeFunc(context.Background())
		if Classify(err) != OutcomeUnexpectedResponse {
			t.Fatalf("expected unexpected_response, got %v", err)
		}
		if StatusCode(err) != 0 {
			t.Fatalf("expected no status code for a validator veto, got %d", StatusCode(err))
		}
	})
}

func TestNewHTTPProbe_BodyHandling(t *testing.T) {
	t.Run("unexpected status body is drained before close", func(t *testing.T) {
		body := newTrackingBody("service unavailable")
		client := &stubHTTPClient{resp: &http.Response{StatusCode: http.StatusServiceUnavailable, Body: body}}

		err := NewHTTPProbe("site", http.MethodGet, "https://example.invalid", client)(context.Background())
		if StatusCode(err) != http.StatusServiceUnavailable {
			t.Fatalf("expected 503 status error, got %v", err)
		}
		if body.read != len("service unavailable") || !body.closed {
			t.Fatalf("expected body drained and closed, read=%d closed=%v", body.read, body.closed)
		}
	})

	t.Run("drain failure after a bad status keeps the status error", func(t *testing.T) {
		body := newTrackingBody("")
		body.err = errors.New("connection reset")
		client := &stubHTTPClient{resp: &http.Response{StatusCode: http.StatusBadGateway, Body: body}}

		err := NewHTTPProbe("site", http.MethodGet, "https://example.invalid", client)(context.Background())
		if Classify(err) != OutcomeUnexpectedResponse || StatusCode(err) != http.StatusBadGateway {
			t.Fatalf("expected 502 unexpected_response, got %v", err)
		}
	})

	t.Run("drain failure after success is a connection failure", func(t *testing.T) {
		body := newTrackingBody("")
		body.err = errors.New("connection reset")
		client := &stubHTTPClient{resp: &http.Response{StatusCode: http.StatusOK, Body: body}}

		err := NewHTTPProbe("site", http.MethodGet, "https://example.invalid", client)(context.Background())
		if !errors.Is(err, ErrConnection) {
			t.Fatalf("expected ErrConnection, got %v", err)
		}
	})

	t.Run("draining can be disabled", func(t *testing.T) {
		body := newTrackingBody("large payload")
		client := &stubHTTPClient{resp: &http.Response{StatusCode: http.StatusOK, Body: body}}

		err := NewHTTPProbe("site", http.MethodGet, "https://example.invalid", client,
			WithHTTPDrainResponseBody(false))(context.Background())
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if body.read != 0 || !body.closed {
			t.Fatalf("expected body closed unread, read=%d closed=%v", body.read, body.closed)
		}
	})
}

func TestWithHTTPStatusExpectation(t *testing.T) {
	below500 := WithHTTPStatusExpectation(func(status int) bool { return status < 500 })

	client := &stubHTTPClient{resp: newResponse(http.StatusNotFound)}
	if err := NewHTTPProbe("site", http.MethodGet, "https://example.invalid", client, below500)(context.Background()); err != nil {
		t.Fatalf("expected 404 to satisfy the expectation, got %v", err)
	}

	client = &stubHTTPClient{resp: newResponse(http.StatusInternalServerError)}
	err := NewHTTPProbe("site", http.MethodGet, "https://example.invalid", client, below500)(context.Background())
	if StatusCode(err) != http.StatusInternalServerError {
		t.Fatalf("expected 500 status error, got %v", err)
	}

	client = &stubHTTPClient{resp: newResponse(http.StatusNoContent)}
	if err := NewHTTPProbe("site", http.MethodGet, "https://example.invalid", client, WithHTTPStatusExpectation(nil))(context.Background()); StatusCode(err) != http.StatusNoContent {
		t.Fatalf("expected nil expectation to fall back to 200 only, got %v", err)
	}
}

func TestValidateURL(t *testing.T) {
	cases := []struct {
		name    string
		target  string
		wantErr bool
	}{
		{name: "http", target: "http://ok.test"},
		{name: "https with path", target: " https://ok.test/health?x=1 "},
		{name: "uppercase scheme", target: "HTTP://ok.test"},
		{name: "empty", target: "  ", wantErr: true},
		{name: "no scheme", target: "not-a-url", wantErr: true},
		{name: "host only", target: "ok.test:8080", wantErr: true},
		{name: "ftp", target: "ftp://ok.test", wantErr: true},
		{name: "no host", target: "http://", wantErr: true},
		{name: "bad escape", target: "http://ok.test/%zz", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateURL(tc.target)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidURL) {
					t.Fatalf("expected ErrInvalidURL for %q, got %v", tc.target, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected nil error for %q, got %v", tc.target, err)
			}
			if got != strings.TrimSpace(tc.target) {
				t.Fatalf("expected trimmed target, got %q", got)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	if got := Classify(nil); got != OutcomeSuccess {
		t.Fatalf("expected success, got %s", got)
	}
	if got := Classify(context.DeadlineExceeded); got != OutcomeConnectionFailure {
		t.Fatalf("expected unknown errors to be connection failures, got %s", got)
	}
	if OutcomeInvalidURL.Retryable() || OutcomeSuccess.Retryable() {
		t.Fatal("expected terminal outcomes to be non-retryable")
	}
	if !OutcomeConnectionFailure.Retryable() || !OutcomeUnexpectedResponse.Retryable() {
		t.Fatal("expected transient outcomes to be retryable")
	}
}
