package probe

import "testing"

func ok(body string) Outcome {
	return Outcome{Kind: OutcomeSuccess, StatusCode: 200, Body: []byte(body)}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		pred MaintenancePredicate
		out  Outcome
		want Verdict
	}{
		{"whitebit ok", WhiteBIT, ok(`{"status":1}`), VerdictOperational},
		{"whitebit nested ok", WhiteBIT, ok(`{"result":{"status":1}}`), VerdictOperational},
		{"whitebit maintenance", WhiteBIT, ok(`{"status":0}`), VerdictMaintenance},
		{"whitebit keyword", WhiteBIT, ok(`Scheduled MAINTENANCE in progress`), VerdictMaintenance},
		{"whitebit garbage", WhiteBIT, ok(`<html></html>`), VerdictInconclusive},
		{"whitebit non-200", WhiteBIT, Outcome{Kind: OutcomeFailure, StatusCode: 503}, VerdictInconclusive},

		{"bybit ok", Bybit, ok(`{"retCode":0,"result":{"list":[]}}`), VerdictOperational},
		{"bybit maintenance", Bybit, ok(`{"retCode":0,"result":{"list":[{"maintainType":"planned maintenance"}]}}`), VerdictMaintenance},
		{"bybit shutdown", Bybit, ok(`{"state":"shutdown"}`), VerdictMaintenance},
		{"bybit error code", Bybit, ok(`{"retCode":10001}`), VerdictInconclusive},

		{"binance normal", Binance, ok(`{"status":0,"msg":"normal"}`), VerdictOperational},
		{"binance system maintenance", Binance, ok(`{"status":1,"msg":"system_maintenance"}`), VerdictMaintenance},
		{"binance missing", Binance, ok(`{}`), VerdictInconclusive},

		{"bitfinex operative", Bitfinex, ok(`[1]`), VerdictOperational},
		{"bitfinex maintenance", Bitfinex, ok(`[0]`), VerdictMaintenance},
		{"bitfinex empty", Bitfinex, ok(`[]`), VerdictInconclusive},

		{"htx normal", HTX, ok(`{"code":200,"data":{"marketStatus":1}}`), VerdictOperational},
		{"htx halted", HTX, ok(`{"code":200,"data":{"marketStatus":2}}`), VerdictMaintenance},

		{"okx ok", OKX, ok(`{"code":"0","data":[]}`), VerdictOperational},
		{"okx scheduled", OKX, ok(`{"code":"0","data":[{"state":"scheduled"}]}`), VerdictOperational},
		{"okx ongoing", OKX, ok(`{"code":"0","data":[{"state":"ongoing"}]}`), VerdictMaintenance},

		{"keywords", Keywords("closed"), ok(`market CLOSED`), VerdictMaintenance},
		{"keywords miss", Keywords("closed"), ok(`open`), VerdictInconclusive},
		{"status codes", StatusCodes(503), Outcome{Kind: OutcomeFailure, StatusCode: 503}, VerdictMaintenance},
		{"status codes transport", StatusCodes(503), Outcome{Kind: OutcomeFailure}, VerdictInconclusive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred(tt.out); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNamedPredicate(t *testing.T) {
	pred, err := NamedPredicate("", nil, nil)
	if err != nil || pred != nil {
		t.Fatalf("expected nil predicate without error, got %v", err)
	}

	if _, err := NamedPredicate("kraken", nil, nil); err == nil {
		t.Error("expected error for unknown predicate")
	}

	pred, err = NamedPredicate("Binance", []string{"halt"}, []int{418})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := pred(ok(`{"status":1}`)); got != VerdictMaintenance {
		t.Errorf("expected binance parser to win, got %s", got)
	}
	if got := pred(Outcome{Kind: OutcomeOtherStatus, StatusCode: 418}); got != VerdictMaintenance {
		t.Errorf("expected status code match, got %s", got)
	}
	if got := pred(ok(`trading halt`)); got != VerdictMaintenance {
		t.Errorf("expected keyword match, got %s", got)
	}
}

func TestEndpointVerdict_NilPredicate(t *testing.T) {
	ep := StatusEndpoint("https://x.example/status", nil)
	if got := ep.Verdict(ok(`maintenance`)); got != VerdictInconclusive {
		t.Errorf("expected inconclusive, got %s", got)
	}
}
