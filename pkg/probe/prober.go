package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Default prober settings.
const (
	DefaultTimeout      = 3 * time.Second
	DefaultUserAgent    = "swapers/healthcheck"
	DefaultMaxBodyBytes = 4096
)

// OutcomeKind classifies a probe.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeClientRejected
	OutcomeRateLimited
	OutcomeFailure
	OutcomeOtherStatus
)

// String implements fmt.Stringer.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeClientRejected:
		return "client_rejected"
	case OutcomeRateLimited:
		return "rate_limited"
	case OutcomeFailure:
		return "failure"
	default:
		return "other_status"
	}
}

// Outcome is the classified result of a single probe.
type Outcome struct {
	Kind OutcomeKind

	// StatusCode is the HTTP status, 0 when no response was received.
	StatusCode int

	// Body holds at most the prober's MaxBodyBytes of the response.
	Body []byte

	// Err is the transport or body read error of a failure.
	Err error

	// Timeout is set when the per-call deadline expired.
	Timeout bool

	// Canceled is set when the caller's context ended before the probe
	// finished. The outcome then says nothing about the provider.
	Canceled bool

	Elapsed time.Duration
}

// Detail returns a short human-readable reason for the outcome.
func (o Outcome) Detail() string {
	switch {
	case o.Timeout:
		return "timeout"
	case o.Err != nil:
		return o.Err.Error()
	case o.StatusCode != 0:
		return fmt.Sprintf("HTTP %d", o.StatusCode)
	default:
		return o.Kind.String()
	}
}

// Classify maps an HTTP status code to an outcome kind.
func Classify(status int) OutcomeKind {
	switch {
	case status == http.StatusOK:
		return OutcomeSuccess
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return OutcomeClientRejected
	case status == http.StatusTooManyRequests:
		return OutcomeRateLimited
	case status >= 500 && status <= 599:
		return OutcomeFailure
	default:
		return OutcomeOtherStatus
	}
}

// Prober probes a single endpoint.
type Prober interface {
	Probe(ctx context.Context, ep Endpoint) Outcome
}

// Options configures an HTTPProber.
type Options struct {
	// Timeout bounds each call. Default: 3s.
	Timeout time.Duration

	// UserAgent is sent with every request. Default: "swapers/healthcheck".
	UserAgent string

	// MaxBodyBytes caps how much of the response body is kept. Default: 4096.
	MaxBodyBytes int64

	// Transport overrides the HTTP transport. Nil uses a pooled transport.
	Transport http.RoundTripper
}

// HTTPProber implements Prober over net/http.
type HTTPProber struct {
	client *http.Client
	opts   Options
	logger *slog.Logger
}

// NewHTTPProber creates a prober with a pooled transport.
func NewHTTPProber(opts Options) *HTTPProber {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	transport := opts.Transport
	if transport == nil {
		transport = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: opts.Timeout,
			ForceAttemptHTTP2:   true,
		}
	}

	return &HTTPProber{
		// Deadlines come from the per-call context, so the client itself
		// has no timeout.
		client: &http.Client{Transport: transport},
		opts:   opts,
		logger: slog.Default().With("component", "probe"),
	}
}

// Probe performs one GET against ep. It never retries and never returns an
// error; every failure is described by the Outcome.
func (p *HTTPProber) Probe(ctx context.Context, ep Endpoint) Outcome {
	callCtx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	start := time.Now()
	out := p.do(callCtx, ep)
	out.Elapsed = time.Since(start)

	if out.Kind == OutcomeFailure && ctx.Err() != nil {
		out.Canceled = true
	}

	p.logger.Debug("probe finished",
		"url", ep.URL,
		"probe", string(ep.Kind),
		"outcome", out.Kind.String(),
		"status", out.StatusCode,
		"elapsed_ms", out.Elapsed.Milliseconds(),
	)
	return out
}

func (p *HTTPProber) do(ctx context.Context, ep Endpoint) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ep.URL, nil)
	if err != nil {
		return Outcome{Kind: OutcomeFailure, Err: err}
	}
	req.Header.Set("User-Agent", p.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return Outcome{Kind: OutcomeFailure, Err: err, Timeout: isTimeout(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.opts.MaxBodyBytes))
	if err != nil {
		// Headers arrived but the body was cut off.
		return Outcome{Kind: OutcomeFailure, StatusCode: resp.StatusCode, Err: err, Timeout: isTimeout(err)}
	}

	return Outcome{
		Kind:       Classify(resp.StatusCode),
		StatusCode: resp.StatusCode,
		Body:       body,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
