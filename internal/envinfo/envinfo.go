// Package envinfo reads the environment collaborators supplied by the
// invoking driver: the live activation signal and the current CE-DPS
// phase. Both are external inputs — the persisted state mirrors them but
// never overrides them.
package envinfo

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Environment holds the driver-supplied signals.
type Environment struct {
	// Skynet is the raw live activation flag. Empty when unset.
	Skynet string `env:"SKYNET"`
	// Phase is the current CE-DPS phase label. Empty when unset.
	Phase string `env:"CE_DPS_PHASE"`

	// skynetSet distinguishes an absent SKYNET variable from one set
	// to the empty string. Both count as "not active", but reports
	// render them differently.
	skynetSet bool
}

// Load parses the process environment.
func Load() (Environment, error) {
	var e Environment
	opts := env.Options{
		OnSet: func(tag string, value any, isDefault bool) {
			if tag == "SKYNET" && !isDefault {
				e.skynetSet = true
			}
		},
	}
	if err := env.ParseWithOptions(&e, opts); err != nil {
		return Environment{}, fmt.Errorf("parse environment: %w", err)
	}
	return e, nil
}

// Active interprets the raw activation flag. Only "true", "1" and "yes"
// (case-insensitive) count as active; empty and absent both do not.
func (e Environment) Active() bool {
	return ParseFlag(e.Skynet)
}

// LiveFlag returns the activation signal in the three-valued form the
// interruption detector consumes: nil when the variable is entirely
// absent, otherwise its parsed boolean value.
func (e Environment) LiveFlag() *bool {
	if !e.skynetSet {
		return nil
	}
	v := ParseFlag(e.Skynet)
	return &v
}

// ParseFlag interprets common boolean representations.
// "true", "1", "yes" (case-insensitive) return true; everything else
// returns false.
func ParseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
