// Package routing holds the value objects and store interfaces that make
// round-robin fairness and daily caps observable to the assignment engine.
package routing

import (
	"context"
	"fmt"
	"strings"
)

// Key identifies which fairness pointer governs a selection: either a
// per-state key ("state:maharashtra") or the literal "global".
type Key string

const globalKey Key = "global"

// NormalizeState trims whitespace and lowercases a state name so that
// "Maharashtra" and "maharashtra " are treated as the same state both for
// routing-key derivation and for caller-state matching.
func NormalizeState(state string) string {
	return strings.ToLower(strings.TrimSpace(state))
}

// StateKey normalizes a state name into its routing key.
func StateKey(state string) Key {
	return Key(fmt.Sprintf("state:%s", NormalizeState(state)))
}

// GlobalKey is the single routing key used for the global fallback pointer.
func GlobalKey() Key {
	return globalKey
}

func (k Key) String() string {
	return string(k)
}

// FairnessStore is the persistent map from a routing key to the identifier
// of the last caller that received a lead under that key.
type FairnessStore interface {
	// LockAndRead acquires a row-level exclusive lock on the pointer row
	// (creating it implicitly if absent), and returns the previous
	// last-assigned caller id. A nil return means no prior assignment
	// exists under this key.
	LockAndRead(ctx context.Context, key Key) (*uint, error)

	// Write updates the pointer under the already-held lock acquired by
	// LockAndRead within the same transaction.
	Write(ctx context.Context, key Key, callerID uint) error
}

// DailyCounterStore is the persistent map from (caller, business date) to
// an integer count of committed assignments.
type DailyCounterStore interface {
	// LockAndRead acquires a row-level lock on the (caller, date) row,
	// creating it with count zero if absent, and returns the current count.
	LockAndRead(ctx context.Context, callerID uint, businessDate string) (int, error)

	// Increment sets count := count + 1 under the already-held lock.
	Increment(ctx context.Context, callerID uint, businessDate string) error

	// Decrement sets count := count - 1 under the already-held lock. Used
	// only by manual reassignment when undoing same-day counter effects.
	Decrement(ctx context.Context, callerID uint, businessDate string) error
}
