package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		status int
		want   OutcomeKind
	}{
		{200, OutcomeSuccess},
		{204, OutcomeOtherStatus},
		{301, OutcomeOtherStatus},
		{400, OutcomeOtherStatus},
		{401, OutcomeClientRejected},
		{403, OutcomeClientRejected},
		{404, OutcomeOtherStatus},
		{429, OutcomeRateLimited},
		{500, OutcomeFailure},
		{502, OutcomeFailure},
		{503, OutcomeFailure},
	}

	for _, tt := range tests {
		if got := Classify(tt.status); got != tt.want {
			t.Errorf("Classify(%d) = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestHTTPProber_Probe(t *testing.T) {
	var calls atomic.Int32
	var userAgent atomic.Value

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		userAgent.Store(r.UserAgent())
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"serverTime":1}`))
		case "/auth":
			w.WriteHeader(http.StatusUnauthorized)
		case "/limited":
			w.WriteHeader(http.StatusTooManyRequests)
		case "/down":
			w.WriteHeader(http.StatusServiceUnavailable)
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 10000)))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	prober := NewHTTPProber(Options{Timeout: time.Second})

	tests := []struct {
		path string
		want OutcomeKind
		code int
	}{
		{"/ok", OutcomeSuccess, 200},
		{"/auth", OutcomeClientRejected, 401},
		{"/limited", OutcomeRateLimited, 429},
		{"/down", OutcomeFailure, 503},
		{"/missing", OutcomeOtherStatus, 404},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			out := prober.Probe(context.Background(), *TimeEndpoint(server.URL + tt.path))
			if out.Kind != tt.want {
				t.Errorf("expected %s, got %s", tt.want, out.Kind)
			}
			if out.StatusCode != tt.code {
				t.Errorf("expected status %d, got %d", tt.code, out.StatusCode)
			}
		})
	}

	if got := calls.Load(); got != int32(len(tests)) {
		t.Errorf("expected exactly one request per probe (%d), got %d", len(tests), got)
	}
	if ua, _ := userAgent.Load().(string); ua != DefaultUserAgent {
		t.Errorf("expected user agent %q, got %q", DefaultUserAgent, ua)
	}

	out := prober.Probe(context.Background(), *TimeEndpoint(server.URL + "/big"))
	if len(out.Body) != DefaultMaxBodyBytes {
		t.Errorf("expected body capped at %d bytes, got %d", DefaultMaxBodyBytes, len(out.Body))
	}
}

func TestHTTPProber_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	prober := NewHTTPProber(Options{Timeout: 100 * time.Millisecond})

	start := time.Now()
	out := prober.Probe(context.Background(), *TimeEndpoint(server.URL))
	elapsed := time.Since(start)

	if out.Kind != OutcomeFailure {
		t.Errorf("expected failure, got %s", out.Kind)
	}
	if !out.Timeout {
		t.Error("expected timeout flag")
	}
	if out.Canceled {
		t.Error("expected per-call timeout not to be reported as cancellation")
	}
	if elapsed > time.Second {
		t.Errorf("expected probe to give up near its timeout, took %v", elapsed)
	}
	if out.Detail() != "timeout" {
		t.Errorf("expected detail %q, got %q", "timeout", out.Detail())
	}
}

func TestHTTPProber_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	out := NewHTTPProber(Options{Timeout: time.Second}).Probe(context.Background(), *TimeEndpoint(url))
	if out.Kind != OutcomeFailure {
		t.Errorf("expected failure, got %s", out.Kind)
	}
	if out.Err == nil {
		t.Error("expected transport error")
	}
}

func TestHTTPProber_CallerCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	out := NewHTTPProber(Options{Timeout: 5 * time.Second}).Probe(ctx, *TimeEndpoint(server.URL))
	if !out.Canceled {
		t.Error("expected outcome to be marked canceled")
	}
}

func TestHTTPProber_BodyCutOff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":`))
	}))
	defer server.Close()

	out := NewHTTPProber(Options{Timeout: time.Second}).Probe(context.Background(), *TimeEndpoint(server.URL))
	if out.Kind != OutcomeFailure {
		t.Fatalf("expected failure for truncated body, got %s", out.Kind)
	}
	if out.StatusCode != http.StatusOK || out.Err == nil {
		t.Errorf("expected status 200 with read error, got status=%d err=%v", out.StatusCode, out.Err)
	}
	if out.Timeout || out.Canceled {
		t.Errorf("expected neither timeout nor canceled, got %+v", out)
	}
}

func TestHTTPProber_BodyStallsUntilCallerCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	out := NewHTTPProber(Options{Timeout: 5 * time.Second}).Probe(ctx, *TimeEndpoint(server.URL))
	if out.Kind != OutcomeFailure || out.StatusCode != http.StatusOK {
		t.Fatalf("expected failure with status 200, got kind=%s status=%d", out.Kind, out.StatusCode)
	}
	if !out.Canceled {
		t.Error("expected outcome to be marked canceled")
	}
}
