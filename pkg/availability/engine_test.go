package availability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"swapers-hq/lpmon/pkg/probe"
	"swapers-hq/lpmon/pkg/provider"
)

// fakeProber returns canned outcomes keyed by URL and counts calls.
type fakeProber struct {
	mu       sync.Mutex
	outcomes map[string]probe.Outcome
	calls    map[string]int
}

func newFakeProber(outcomes map[string]probe.Outcome) *fakeProber {
	return &fakeProber{outcomes: outcomes, calls: make(map[string]int)}
}

func (f *fakeProber) Probe(ctx context.Context, ep probe.Endpoint) probe.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[ep.URL]++
	out, ok := f.outcomes[ep.URL]
	if !ok {
		return probe.Outcome{Kind: probe.OutcomeFailure, Err: errors.New("connection refused")}
	}
	return out
}

func (f *fakeProber) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeProber) count(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

const (
	statusURL = "https://ex.example/status"
	timeURL   = "https://ex.example/time"
)

func TestCheck_AlwaysAvailableKindsNeverProbe(t *testing.T) {
	prober := newFakeProber(nil) // every probe would fail
	reg := probe.MustRegistry(
		probe.Entry{Provider: "P", Status: probe.StatusEndpoint(statusURL, probe.Keywords("x")), Time: probe.TimeEndpoint(timeURL)},
	)
	engine := NewEngine(reg, prober)

	tests := []struct {
		kind provider.Kind
		code Code
	}{
		{provider.KindCash, CodeSkippedManual},
		{provider.KindPSP, "SKIPPED_PSP"},
		{provider.KindWallet, "SKIPPED_WALLET"},
		{provider.KindNode, "SKIPPED_NODE"},
		{provider.KindBank, "SKIPPED_BANK"},
		{provider.KindExchanger, "SKIPPED_EXCHANGER"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			res, err := engine.Check(context.Background(), provider.Record{ID: "P", Kind: tt.kind})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.Available {
				t.Error("expected available=true")
			}
			if res.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, res.Code)
			}
			if res.Path != PathSkipped {
				t.Errorf("expected path skipped, got %s", res.Path)
			}
			if res.ElapsedMS != 0 {
				t.Errorf("expected zero elapsed, got %d", res.ElapsedMS)
			}
		})
	}

	if n := prober.total(); n != 0 {
		t.Errorf("expected no probes, got %d", n)
	}
}

func TestCheck_MaintenanceShortCircuits(t *testing.T) {
	prober := newFakeProber(map[string]probe.Outcome{
		statusURL: {Kind: probe.OutcomeSuccess, StatusCode: 200, Body: []byte(`{"status":0}`), Elapsed: 40 * time.Millisecond},
		timeURL:   {Kind: probe.OutcomeSuccess, StatusCode: 200},
	})
	reg := probe.MustRegistry(probe.Entry{
		Provider: "WHITEBIT",
		Status:   probe.StatusEndpoint(statusURL, probe.WhiteBIT),
		Time:     probe.TimeEndpoint(timeURL),
	})

	res, err := NewEngine(reg, prober).Check(context.Background(), provider.Record{ID: "WHITEBIT", Kind: provider.KindCEX})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Available || res.Code != CodeMaintenance || res.Path != PathStatus {
		t.Errorf("expected unavailable/MAINTENANCE/status, got %+v", res)
	}
	if res.ElapsedMS != 40 {
		t.Errorf("expected 40ms, got %d", res.ElapsedMS)
	}
	if n := prober.count(timeURL); n != 0 {
		t.Errorf("expected time endpoint never called, got %d calls", n)
	}
	if n := prober.count(statusURL); n != 1 {
		t.Errorf("expected one status call, got %d", n)
	}
}

func TestCheck_MaintenanceFromOtherStatus(t *testing.T) {
	prober := newFakeProber(map[string]probe.Outcome{
		statusURL: {Kind: probe.OutcomeOtherStatus, StatusCode: 418},
		timeURL:   {Kind: probe.OutcomeSuccess, StatusCode: 200},
	})
	reg := probe.MustRegistry(probe.Entry{
		Provider: "DEXY",
		Status:   probe.StatusEndpoint(statusURL, probe.StatusCodes(418)),
		Time:     probe.TimeEndpoint(timeURL),
	})

	res, _ := NewEngine(reg, prober).Check(context.Background(), provider.Record{ID: "DEXY", Kind: provider.KindDEX})
	if res.Code != CodeMaintenance {
		t.Errorf("expected MAINTENANCE, got %s", res.Code)
	}
	if prober.count(timeURL) != 0 {
		t.Error("expected time endpoint never called")
	}
}

func TestCheck_InconclusiveStatusFallsThrough(t *testing.T) {
	tests := []struct {
		name   string
		status probe.Outcome
	}{
		{"status failed", probe.Outcome{Kind: probe.OutcomeFailure, StatusCode: 503}},
		{"status garbage", probe.Outcome{Kind: probe.OutcomeSuccess, StatusCode: 200, Body: []byte("<html>")}},
		{"status operational", probe.Outcome{Kind: probe.OutcomeSuccess, StatusCode: 200, Body: []byte(`{"status":1}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prober := newFakeProber(map[string]probe.Outcome{
				statusURL: tt.status,
				timeURL:   {Kind: probe.OutcomeSuccess, StatusCode: 200},
			})
			reg := probe.MustRegistry(probe.Entry{
				Provider: "WHITEBIT",
				Status:   probe.StatusEndpoint(statusURL, probe.WhiteBIT),
				Time:     probe.TimeEndpoint(timeURL),
			})

			res, err := NewEngine(reg, prober).Check(context.Background(), provider.Record{ID: "WHITEBIT", Kind: provider.KindCEX})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.Available || res.Code != CodeOK || res.Path != PathStatusTime {
				t.Errorf("expected available/OK/status+time, got %+v", res)
			}
			if prober.count(timeURL) != 1 {
				t.Error("expected one time probe")
			}
		})
	}
}

func TestCheck_TimeOutcomes(t *testing.T) {
	tests := []struct {
		name      string
		outcome   probe.Outcome
		available bool
		code      Code
	}{
		{"200", probe.Outcome{Kind: probe.OutcomeSuccess, StatusCode: 200}, true, CodeOK},
		{"401", probe.Outcome{Kind: probe.OutcomeClientRejected, StatusCode: 401}, false, CodeAuthError},
		{"403", probe.Outcome{Kind: probe.OutcomeClientRejected, StatusCode: 403}, false, CodeAuthError},
		{"429", probe.Outcome{Kind: probe.OutcomeRateLimited, StatusCode: 429}, false, CodeRateLimit},
		{"503", probe.Outcome{Kind: probe.OutcomeFailure, StatusCode: 503}, false, CodeNetworkDown},
		{"timeout", probe.Outcome{Kind: probe.OutcomeFailure, Timeout: true}, false, CodeNetworkDown},
		{"404", probe.Outcome{Kind: probe.OutcomeOtherStatus, StatusCode: 404}, false, CodeUnknown},
	}

	reg := probe.MustRegistry(probe.Entry{Provider: "KUCOIN", Time: probe.TimeEndpoint(timeURL)})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prober := newFakeProber(map[string]probe.Outcome{timeURL: tt.outcome})
			res, err := NewEngine(reg, prober).Check(context.Background(), provider.Record{ID: "KUCOIN", Kind: provider.KindCEX})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Available != tt.available {
				t.Errorf("expected available=%v, got %v", tt.available, res.Available)
			}
			if res.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, res.Code)
			}
			if res.Path != PathTime {
				t.Errorf("expected path time, got %s", res.Path)
			}
		})
	}
}

func TestCheck_NoEndpoints(t *testing.T) {
	prober := newFakeProber(nil)
	engine := NewEngine(probe.MustRegistry(), prober)

	for _, kind := range []provider.Kind{provider.KindCEX, provider.KindDEX} {
		res, err := engine.Check(context.Background(), provider.Record{ID: "UNISWAP", Kind: kind})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Available || res.Code != CodeSkippedNoProbe || res.Path != PathSkipped {
			t.Errorf("expected available/SKIPPED_NO_PROBE/skipped, got %+v", res)
		}
		if res.ElapsedMS != 0 {
			t.Errorf("expected zero elapsed, got %d", res.ElapsedMS)
		}
	}
	if prober.total() != 0 {
		t.Error("expected no probes")
	}
}

func TestCheck_StatusOnly(t *testing.T) {
	reg := probe.MustRegistry(probe.Entry{Provider: "BINANCE", Status: probe.StatusEndpoint(statusURL, probe.Binance)})

	tests := []struct {
		name string
		body string
		code Code
	}{
		{"operational", `{"status":0}`, CodeOK},
		{"inconclusive", `nope`, CodeSkippedNoProbe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prober := newFakeProber(map[string]probe.Outcome{
				statusURL: {Kind: probe.OutcomeSuccess, StatusCode: 200, Body: []byte(tt.body)},
			})
			res, _ := NewEngine(reg, prober).Check(context.Background(), provider.Record{ID: "BINANCE", Kind: provider.KindCEX})
			if !res.Available || res.Code != tt.code || res.Path != PathStatus {
				t.Errorf("expected available/%s/status, got %+v", tt.code, res)
			}
		})
	}
}

func TestCheck_UnknownKind(t *testing.T) {
	engine := NewEngine(probe.MustRegistry(), newFakeProber(nil))

	_, err := engine.Check(context.Background(), provider.Record{ID: "ODD", Kind: "FOREX"})
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if cfgErr.Provider != "ODD" {
		t.Errorf("expected provider ODD, got %q", cfgErr.Provider)
	}
}

func TestCheck_PolicyOverride(t *testing.T) {
	reg := probe.MustRegistry(probe.Entry{Provider: "CHANGENOW", Time: probe.TimeEndpoint(timeURL)})
	prober := newFakeProber(map[string]probe.Outcome{timeURL: {Kind: probe.OutcomeRateLimited, StatusCode: 429}})

	engine := NewEngine(reg, prober, WithPolicies(DefaultPolicies().With(provider.KindExchanger, ProbeChain{})))
	res, _ := engine.Check(context.Background(), provider.Record{ID: "CHANGENOW", Kind: provider.KindExchanger})
	if res.Code != CodeRateLimit {
		t.Errorf("expected RATE_LIMIT, got %s", res.Code)
	}
}

func TestCheck_WithHTTPProber(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/auth":
			w.WriteHeader(http.StatusUnauthorized)
		case "/limited":
			w.WriteHeader(http.StatusTooManyRequests)
		case "/down":
			w.WriteHeader(http.StatusServiceUnavailable)
		case "/hang":
			<-r.Context().Done()
		}
	}))
	defer server.Close()

	reg := probe.MustRegistry(
		probe.Entry{Provider: "OK", Time: probe.TimeEndpoint(server.URL + "/ok")},
		probe.Entry{Provider: "AUTH", Time: probe.TimeEndpoint(server.URL + "/auth")},
		probe.Entry{Provider: "LIMITED", Time: probe.TimeEndpoint(server.URL + "/limited")},
		probe.Entry{Provider: "DOWN", Time: probe.TimeEndpoint(server.URL + "/down")},
		probe.Entry{Provider: "HANG", Time: probe.TimeEndpoint(server.URL + "/hang")},
	)
	engine := NewEngine(reg, probe.NewHTTPProber(probe.Options{Timeout: 100 * time.Millisecond}))

	want := map[string]Code{
		"OK":      CodeOK,
		"AUTH":    CodeAuthError,
		"LIMITED": CodeRateLimit,
		"DOWN":    CodeNetworkDown,
		"HANG":    CodeNetworkDown,
	}
	for id, code := range want {
		res, err := engine.Check(context.Background(), provider.Record{ID: id, Kind: provider.KindCEX})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", id, err)
		}
		if res.Code != code {
			t.Errorf("%s: expected %s, got %s", id, code, res.Code)
		}
	}
}

func TestCheck_CallerCanceled(t *testing.T) {
	reg := probe.MustRegistry(probe.Entry{Provider: "X", Time: probe.TimeEndpoint(timeURL)})
	prober := newFakeProber(map[string]probe.Outcome{timeURL: {Kind: probe.OutcomeFailure, Canceled: true}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(reg, prober).Check(ctx, provider.Record{ID: "X", Kind: provider.KindCEX})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResult_Via(t *testing.T) {
	tests := []struct {
		res  Result
		want string
	}{
		{Result{Code: "SKIPPED_PSP", Path: PathSkipped}, "SKIPPED_PSP"},
		{Result{Code: CodeSkippedNoProbe}, "SKIPPED_NO_PROBE"},
		{Result{Code: CodeDeadlineExceeded, Path: PathSkipped}, "DEADLINE_EXCEEDED"},
		{Result{Code: CodeMaintenance, Path: PathStatus}, "status/time"},
		{Result{Code: CodeOK, Path: PathStatusTime}, "status/time"},
		{Result{Code: CodeOK, Path: PathTime}, "time"},
	}
	for _, tt := range tests {
		if got := tt.res.Via(); got != tt.want {
			t.Errorf("Via() for %+v = %q, want %q", tt.res, got, tt.want)
		}
	}
}

func TestCode_Skipped(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{CodeSkippedManual, true},
		{SkippedCode(provider.KindBank), true},
		{CodeOK, false},
		{CodeDeadlineExceeded, false},
		{"SKIPPED", false},
	}
	for _, tt := range tests {
		if got := tt.code.Skipped(); got != tt.want {
			t.Errorf("%s.Skipped() = %v, want %v", tt.code, got, tt.want)
		}
	}
}

type countingObserver struct {
	mu    sync.Mutex
	kinds []probe.Kind
}

func (o *countingObserver) ObserveProbe(_ string, kind probe.Kind, _ probe.Outcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.kinds = append(o.kinds, kind)
}

func TestCheck_ObserverSeesEachProbe(t *testing.T) {
	reg := probe.MustRegistry(probe.Entry{
		Provider: "BYBIT",
		Status:   probe.StatusEndpoint(statusURL, probe.Bybit),
		Time:     probe.TimeEndpoint(timeURL),
	})
	prober := newFakeProber(map[string]probe.Outcome{
		statusURL: {Kind: probe.OutcomeSuccess, StatusCode: 200, Body: []byte(`{"retCode":0}`)},
		timeURL:   {Kind: probe.OutcomeSuccess, StatusCode: 200},
	})
	obs := &countingObserver{}

	_, _ = NewEngine(reg, prober, WithObserver(obs)).Check(context.Background(), provider.Record{ID: "BYBIT", Kind: provider.KindCEX})
	if len(obs.kinds) != 2 || obs.kinds[0] != probe.KindStatus || obs.kinds[1] != probe.KindTime {
		t.Errorf("expected [status time], got %v", obs.kinds)
	}
}
