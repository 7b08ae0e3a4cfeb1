package probe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Verdict is the interpretation of a status probe.
type Verdict int

const (
	// VerdictInconclusive means the status probe says nothing reliable; the
	// engine falls through to the time endpoint.
	VerdictInconclusive Verdict = iota

	// VerdictOperational means the provider explicitly reports normal operation.
	VerdictOperational

	// VerdictMaintenance means the provider reports planned downtime or a halt.
	VerdictMaintenance
)

// String implements fmt.Stringer.
func (v Verdict) String() string {
	switch v {
	case VerdictOperational:
		return "operational"
	case VerdictMaintenance:
		return "maintenance"
	default:
		return "inconclusive"
	}
}

// MaintenancePredicate turns a status probe outcome into a verdict.
type MaintenancePredicate func(Outcome) Verdict

// WhiteBIT reads an integer "status" (top level or under "result"); 1 is
// operational, anything else is maintenance. Without a numeric status the
// body is scanned for "maintenance".
func WhiteBIT(out Outcome) Verdict {
	if out.Kind != OutcomeSuccess {
		return VerdictInconclusive
	}
	doc := decodeJSON(out.Body)
	status, ok := intAt(doc, "status")
	if !ok {
		status, ok = intAt(doc, "result", "status")
	}
	if ok {
		if status == 1 {
			return VerdictOperational
		}
		return VerdictMaintenance
	}
	if containsAny(out.Body, "maintenance") {
		return VerdictMaintenance
	}
	return VerdictInconclusive
}

// Bybit scans for maintenance keywords and otherwise trusts retCode == 0.
func Bybit(out Outcome) Verdict {
	if out.Kind != OutcomeSuccess {
		return VerdictInconclusive
	}
	if containsAny(out.Body, "mainten", "shutdown") {
		return VerdictMaintenance
	}
	if code, ok := intAt(decodeJSON(out.Body), "retCode"); ok && code == 0 {
		return VerdictOperational
	}
	return VerdictInconclusive
}

// Binance reads {"status": 0|1}; 1 is system maintenance.
func Binance(out Outcome) Verdict {
	if out.Kind != OutcomeSuccess {
		return VerdictInconclusive
	}
	status, ok := intAt(decodeJSON(out.Body), "status")
	switch {
	case !ok:
		return VerdictInconclusive
	case status == 0:
		return VerdictOperational
	default:
		return VerdictMaintenance
	}
}

// Bitfinex reads the platform status array: [1] operative, [0] maintenance.
func Bitfinex(out Outcome) Verdict {
	if out.Kind != OutcomeSuccess {
		return VerdictInconclusive
	}
	arr, ok := decodeJSON(out.Body).([]any)
	if !ok || len(arr) == 0 {
		return VerdictInconclusive
	}
	n, ok := arr[0].(float64)
	switch {
	case !ok:
		return VerdictInconclusive
	case n == 1:
		return VerdictOperational
	default:
		return VerdictMaintenance
	}
}

// HTX reads data.marketStatus: 1 normal, 2 halted, 3 cancel-only.
func HTX(out Outcome) Verdict {
	if out.Kind != OutcomeSuccess {
		return VerdictInconclusive
	}
	status, ok := intAt(decodeJSON(out.Body), "data", "marketStatus")
	switch {
	case !ok:
		return VerdictInconclusive
	case status == 1:
		return VerdictOperational
	default:
		return VerdictMaintenance
	}
}

// OKX reports maintenance when any announced event is in state "ongoing".
func OKX(out Outcome) Verdict {
	if out.Kind != OutcomeSuccess {
		return VerdictInconclusive
	}
	doc, ok := decodeJSON(out.Body).(map[string]any)
	if !ok {
		return VerdictInconclusive
	}
	events, _ := doc["data"].([]any)
	for _, ev := range events {
		if m, ok := ev.(map[string]any); ok && m["state"] == "ongoing" {
			return VerdictMaintenance
		}
	}
	if code, ok := doc["code"].(string); ok && code == "0" {
		return VerdictOperational
	}
	return VerdictInconclusive
}

// Keywords returns a predicate reporting maintenance when a successful body
// contains any of words (case-insensitive).
func Keywords(words ...string) MaintenancePredicate {
	return func(out Outcome) Verdict {
		if out.Kind == OutcomeSuccess && containsAny(out.Body, words...) {
			return VerdictMaintenance
		}
		return VerdictInconclusive
	}
}

// StatusCodes returns a predicate reporting maintenance when the status probe
// answered with one of codes.
func StatusCodes(codes ...int) MaintenancePredicate {
	return func(out Outcome) Verdict {
		if out.StatusCode != 0 && slices.Contains(codes, out.StatusCode) {
			return VerdictMaintenance
		}
		return VerdictInconclusive
	}
}

// FirstOf combines predicates; the first non-inconclusive verdict wins.
func FirstOf(preds ...MaintenancePredicate) MaintenancePredicate {
	return func(out Outcome) Verdict {
		for _, p := range preds {
			if p == nil {
				continue
			}
			if v := p(out); v != VerdictInconclusive {
				return v
			}
		}
		return VerdictInconclusive
	}
}

var namedPredicates = map[string]MaintenancePredicate{
	"whitebit": WhiteBIT,
	"bybit":    Bybit,
	"binance":  Binance,
	"bitfinex": Bitfinex,
	"htx":      HTX,
	"okx":      OKX,
}

// PredicateNames returns the names accepted by NamedPredicate.
func PredicateNames() []string {
	names := make([]string, 0, len(namedPredicates))
	for n := range namedPredicates {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// NamedPredicate assembles a predicate from configuration: an optional
// built-in parser name plus optional keywords and status codes.
func NamedPredicate(name string, keywords []string, codes []int) (MaintenancePredicate, error) {
	var preds []MaintenancePredicate
	if name != "" {
		p, ok := namedPredicates[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown maintenance predicate %q", name)
		}
		preds = append(preds, p)
	}
	if len(codes) > 0 {
		preds = append(preds, StatusCodes(codes...))
	}
	if len(keywords) > 0 {
		preds = append(preds, Keywords(keywords...))
	}
	switch len(preds) {
	case 0:
		return nil, nil
	case 1:
		return preds[0], nil
	default:
		return FirstOf(preds...), nil
	}
}

func decodeJSON(body []byte) any {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil
	}
	return doc
}

// intAt walks object keys and returns an integral number at the end.
func intAt(doc any, path ...string) (int, bool) {
	cur := doc
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return 0, false
		}
		cur = m[key]
	}
	n, ok := cur.(float64)
	if !ok || n != float64(int(n)) {
		return 0, false
	}
	return int(n), true
}

func containsAny(body []byte, words ...string) bool {
	lower := bytes.ToLower(body)
	for _, w := range words {
		if w != "" && bytes.Contains(lower, []byte(strings.ToLower(w))) {
			return true
		}
	}
	return false
}
