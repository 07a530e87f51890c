package cache

import "strings"

const (
	GlobalKeyPrefix = "qbank"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// CounterKey is the sorted set holding the members of one namespace.
func CounterKey(namespaceKey string) string {
	return GenerateCacheKey("counter", "ns", namespaceKey)
}

// CounterSeededKey is the set of namespaces whose sorted set is authoritative.
func CounterSeededKey() string {
	return strings.Join([]string{GlobalKeyPrefix, "counter", "seeded"}, ":")
}

// HierarchyKey holds the serialized taxonomy hierarchy view.
func HierarchyKey() string {
	return GenerateCacheKey("taxonomy", "hierarchy", "all")
}

// MigrationRunKey is the status hash of one migration run.
func MigrationRunKey(handle string) string {
	return GenerateCacheKey("migration", "run", handle)
}

// MigrationCursorKey stores the last committed cursor for resumable runs.
func MigrationCursorKey() string {
	return GenerateCacheKey("migration", "cursor", "last")
}

// MigrationLockKey guards a single active migration run.
func MigrationLockKey() string {
	return strings.Join([]string{GlobalKeyPrefix, "migration", "lock"}, ":")
}
