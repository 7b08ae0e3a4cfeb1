package provider

// EffectiveModes are the operations actually permitted after combining
// automated availability with the manual flags.
type EffectiveModes struct {
	CanReceive bool `json:"can_receive_effective"`
	CanSend    bool `json:"can_send_effective"`
}

// ComputeModes derives the effective flags. It is pure.
func ComputeModes(isAvailable, canReceive, canSend bool) EffectiveModes {
	return EffectiveModes{
		CanReceive: isAvailable && canReceive,
		CanSend:    isAvailable && canSend,
	}
}
