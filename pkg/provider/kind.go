package provider

import (
	"fmt"
	"strings"
)

// Kind is the category of a provider. It selects the availability policy.
type Kind string

const (
	KindCEX       Kind = "CEX"
	KindDEX       Kind = "DEX"
	KindPSP       Kind = "PSP"
	KindWallet    Kind = "WALLET"
	KindNode      Kind = "NODE"
	KindExchanger Kind = "EXCHANGER"
	KindBank      Kind = "BANK"
	KindCash      Kind = "CASH"
)

// kindAliases maps legacy spellings to their canonical kind.
var kindAliases = map[string]Kind{
	"MANUAL": KindCash,
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindCEX, KindDEX, KindPSP, KindWallet, KindNode, KindExchanger, KindBank, KindCash}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}

// ParseKind normalises s (trimmed, upper-cased) and returns the matching kind.
// "MANUAL" is accepted as an alias of CASH.
func ParseKind(s string) (Kind, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	if alias, ok := kindAliases[norm]; ok {
		return alias, nil
	}
	k := Kind(norm)
	if !k.Valid() {
		return "", fmt.Errorf("unknown provider kind %q", s)
	}
	return k, nil
}
