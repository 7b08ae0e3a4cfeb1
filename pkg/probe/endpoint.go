package probe

import (
	"fmt"
	"net/url"
)

// Kind identifies the role of an endpoint.
type Kind string

const (
	// KindStatus endpoints report planned downtime.
	KindStatus Kind = "status"

	// KindTime endpoints are lightweight pings used for reachability.
	KindTime Kind = "time"
)

// Endpoint is a single probe target.
type Endpoint struct {
	Kind Kind
	URL  string

	// Maintenance interprets status probe outcomes. Ignored for time
	// endpoints. A nil predicate never reports maintenance.
	Maintenance MaintenancePredicate
}

// StatusEndpoint returns a status endpoint using pred to detect maintenance.
func StatusEndpoint(rawURL string, pred MaintenancePredicate) *Endpoint {
	return &Endpoint{Kind: KindStatus, URL: rawURL, Maintenance: pred}
}

// TimeEndpoint returns a time endpoint.
func TimeEndpoint(rawURL string) *Endpoint {
	return &Endpoint{Kind: KindTime, URL: rawURL}
}

// Verdict applies the endpoint's maintenance predicate to out.
func (e *Endpoint) Verdict(out Outcome) Verdict {
	if e == nil || e.Maintenance == nil {
		return VerdictInconclusive
	}
	return e.Maintenance(out)
}

func (e *Endpoint) validate(want Kind) error {
	if e.Kind != want {
		return fmt.Errorf("expected %s endpoint, got %q", want, e.Kind)
	}
	u, err := url.Parse(e.URL)
	if err != nil {
		return fmt.Errorf("invalid %s url %q: %w", want, e.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s url %q must use http or https", want, e.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("%s url %q has no host", want, e.URL)
	}
	return nil
}
