package auth

import (
	"crypto/subtle"
	"errors"
)

var (
	// ErrMissingKey is returned when a request carries no API key.
	ErrMissingKey = errors.New("no API key found")

	// ErrInvalidKey is returned when the key matches no enabled entry.
	ErrInvalidKey = errors.New("invalid API key")
)

// Key is a named API key.
type Key struct {
	Name     string
	Secret   string
	Disabled bool
}

// Validator checks presented keys against a fixed set.
type Validator struct {
	keys []Key
}

// NewValidator creates a validator. Entries with an empty secret are ignored.
func NewValidator(keys []Key) *Validator {
	v := &Validator{}
	for _, k := range keys {
		if k.Secret != "" {
			v.keys = append(v.keys, k)
		}
	}
	return v
}

// Len returns the number of usable keys.
func (v *Validator) Len() int {
	return len(v.keys)
}

// Validate returns the key matching secret. Every configured key is compared
// in constant time.
func (v *Validator) Validate(secret string) (Key, error) {
	if secret == "" {
		return Key{}, ErrMissingKey
	}
	var (
		match Key
		found bool
	)
	for _, k := range v.keys {
		if subtle.ConstantTimeCompare([]byte(k.Secret), []byte(secret)) == 1 {
			match, found = k, true
		}
	}
	if !found || match.Disabled {
		return Key{}, ErrInvalidKey
	}
	return match, nil
}
