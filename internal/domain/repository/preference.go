package repository

import "context"

// PreferenceRepository is an opaque durable key-value store for user
// preferences. Values are stored as strings; callers own the encoding.
type PreferenceRepository interface {
	// Get retrieves the value stored under key.
	// Returns found=false with a nil error if the key was never written.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
