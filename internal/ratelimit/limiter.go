// Package ratelimit implements fixed-window attempt counters keyed by
// client IP and action name. Counter expiry is left to the store.
package ratelimit

import (
	"context"
	"time"
)

// Actions limited by the API.
const (
	ActionLogin         = "login"
	ActionRegister      = "register"
	ActionGoogle        = "google"
	ActionBooking       = "booking"
	ActionCustomRequest = "custom-request"
)

// Record is one counter window.
type Record struct {
	IP      string    `bson:"ip"`
	Action  string    `bson:"action"`
	Count   int       `bson:"count"`
	ResetAt time.Time `bson:"resetAt"`
}

// Store persists counters. Find returns (nil, nil) when no live window exists.
type Store interface {
	Find(ctx context.Context, ip, action string) (*Record, error)
	Create(ctx context.Context, ip, action string, resetAt time.Time) error
	Increment(ctx context.Context, ip, action string) error
}

// Result is the outcome of one attempt.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter counts attempts against a Store.
type Limiter struct {
	store Store
	now   func() time.Time
}

// New creates a limiter over store.
func New(store Store) *Limiter {
	return &Limiter{store: store, now: time.Now}
}

// Consume records one attempt. The lookup and the write are separate
// store calls, so concurrent bursts may admit a few more than limit.
func (l *Limiter) Consume(ctx context.Context, ip, action string, limit int, window time.Duration) (Result, error) {
	rec, err := l.store.Find(ctx, ip, action)
	if err != nil {
		return Result{}, err
	}

	if rec == nil {
		resetAt := l.now().Add(window)
		if err := l.store.Create(ctx, ip, action, resetAt); err != nil {
			return Result{}, err
		}
		return Result{Allowed: true, Remaining: nonNegative(limit - 1), ResetAt: resetAt}, nil
	}

	if rec.Count >= limit {
		return Result{Allowed: false, Remaining: 0, ResetAt: rec.ResetAt}, nil
	}

	if err := l.store.Increment(ctx, ip, action); err != nil {
		return Result{}, err
	}
	return Result{Allowed: true, Remaining: nonNegative(limit - rec.Count - 1), ResetAt: rec.ResetAt}, nil
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
