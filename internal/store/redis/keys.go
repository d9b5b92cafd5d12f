package redis

// Key layout. Everything lives under the outlink: prefix so an
// instance can share a DB with other tools.
const (
	keyPrefix = "outlink:"
	usageKey  = keyPrefix + "usage" // hash: provider id -> counter
)

// CacheKey returns the key caching the encoded candidate token for one
// normalized resolution input.
func CacheKey(input string) string {
	return keyPrefix + "cache:" + input
}
