package storage

// Storage is the durable key-value capability consumed by the stores.
// Each store serializes its full state under a single fixed key; the
// persisted copy is a best-effort mirror for restart recovery, not a
// synchronization point.
type Storage interface {
	// Get returns the value stored under key. The boolean reports
	// whether the key was present.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes the value stored under key. Deleting an absent
	// key is a no-op.
	Delete(key string) error
}
