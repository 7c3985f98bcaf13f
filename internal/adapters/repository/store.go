// Package repository persists whole datasets as string blobs keyed by
// dataset name.
package repository

import "context"

// Dataset keys. One serialized collection per key, written back whole on
// every mutation.
const (
	KeyLeaders  = "accountable_leaders"
	KeyPromises = "accountable_promises"
)

// KV is the persistence contract: get, set and remove of one string
// value per dataset key. No transactions, no schema versioning.
type KV interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
