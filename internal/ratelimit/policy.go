package ratelimit

import "time"

// LimitConfig is a single rate limit: at most Max requests per Window.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// Policy maps scopes to the limits enforced for each.
type Policy struct {
	Limits map[Scope][]LimitConfig
}

// DefaultPolicy returns the default limits: a broad global ceiling, relaxed
// read limits, and tighter write limits. Endpoints can override via metadata.
func DefaultPolicy() *Policy {
	return &Policy{
		Limits: map[Scope][]LimitConfig{
			ScopeGlobal: {
				{Window: time.Minute, Max: 300},
			},
			ScopeRead: {
				{Window: time.Minute, Max: 240},
			},
			ScopeWrite: {
				{Window: time.Minute, Max: 60},
				{Window: time.Hour, Max: 600},
			},
		},
	}
}
