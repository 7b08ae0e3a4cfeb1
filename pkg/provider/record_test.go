package provider

import (
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"CEX", KindCEX, false},
		{" dex ", KindDEX, false},
		{"exchanger", KindExchanger, false},
		{"MANUAL", KindCash, false},
		{"cash", KindCash, false},
		{"FOREX", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	records := []Record{
		{ID: "OKX", Kind: KindCEX, HomeVisible: true},
		{ID: "BINANCE", Kind: KindCEX},
		{ID: "UNISWAP", Kind: KindDEX, HomeVisible: true},
		{ID: "PAYPAL", Kind: KindPSP, HomeVisible: true},
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter sorts by id", Filter{}, []string{"BINANCE", "OKX", "PAYPAL", "UNISWAP"}},
		{"by ids", Filter{IDs: []string{"OKX", "PAYPAL"}}, []string{"OKX", "PAYPAL"}},
		{"empty id set matches nothing", Filter{IDs: []string{}}, []string{}},
		{"by kind", Filter{Kinds: []Kind{KindCEX}}, []string{"BINANCE", "OKX"}},
		{"only home", Filter{OnlyHome: true}, []string{"OKX", "PAYPAL", "UNISWAP"}},
		{
			"conjunctive",
			Filter{IDs: []string{"OKX", "BINANCE", "UNISWAP"}, Kinds: []Kind{KindCEX}, OnlyHome: true},
			[]string{"OKX"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(records)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d records, got %d", len(tt.want), len(got))
			}
			for i, r := range got {
				if r.ID != tt.want[i] {
					t.Errorf("position %d: expected %q, got %q", i, tt.want[i], r.ID)
				}
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	entries := Catalog()
	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.ID] {
			t.Errorf("duplicate catalog id %q", e.ID)
		}
		seen[e.ID] = true
		if !e.Kind.Valid() {
			t.Errorf("%s: invalid kind %q", e.ID, e.Kind)
		}
	}

	e, ok := Lookup(" binance ")
	if !ok {
		t.Fatal("expected BINANCE in catalog")
	}
	if e.Name != "Binance" || e.Kind != KindCEX {
		t.Errorf("unexpected entry %+v", e)
	}
	if Known("NOPE") {
		t.Error("expected NOPE to be unknown")
	}

	rec := e.Record()
	if !rec.IsAvailable || !rec.CanReceive || !rec.CanSend {
		t.Errorf("expected new record to default to enabled, got %+v", rec)
	}
}
