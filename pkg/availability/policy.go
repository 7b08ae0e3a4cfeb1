package availability

import "swapers-hq/lpmon/pkg/provider"

// Policy decides how a kind is checked. It is either AlwaysAvailable or
// ProbeChain.
type Policy interface {
	isPolicy()
}

// AlwaysAvailable reports the provider available with Code, without probing.
type AlwaysAvailable struct {
	Code Code
}

// ProbeChain runs the status-then-time probe chain.
type ProbeChain struct{}

func (AlwaysAvailable) isPolicy() {}
func (ProbeChain) isPolicy()      {}

// PolicyTable maps kinds to policies.
type PolicyTable map[provider.Kind]Policy

// DefaultPolicies returns the standard table. EXCHANGER uses the placeholder
// stub like the other non-exchange kinds until real probes exist for it.
func DefaultPolicies() PolicyTable {
	return PolicyTable{
		provider.KindCash:      AlwaysAvailable{Code: CodeSkippedManual},
		provider.KindPSP:       AlwaysAvailable{Code: SkippedCode(provider.KindPSP)},
		provider.KindWallet:    AlwaysAvailable{Code: SkippedCode(provider.KindWallet)},
		provider.KindNode:      AlwaysAvailable{Code: SkippedCode(provider.KindNode)},
		provider.KindBank:      AlwaysAvailable{Code: SkippedCode(provider.KindBank)},
		provider.KindExchanger: AlwaysAvailable{Code: SkippedCode(provider.KindExchanger)},
		provider.KindCEX:       ProbeChain{},
		provider.KindDEX:       ProbeChain{},
	}
}

// With returns a copy of t with kind mapped to p.
func (t PolicyTable) With(kind provider.Kind, p Policy) PolicyTable {
	out := make(PolicyTable, len(t)+1)
	for k, v := range t {
		out[k] = v
	}
	out[kind] = p
	return out
}
