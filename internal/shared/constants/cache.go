package constants

import "time"

// Redis cache keys and TTLs.
// Key pattern: concertly:{module}:{operation}:{identifier}

const CACHE_PREFIX = "concertly"

// TTLs
const (
	TTL_CONCERT_LIST   = 15 * time.Minute
	TTL_CONCERT_DETAIL = 1 * time.Hour
	TTL_ZONE_LIST      = 1 * time.Minute // zone prices feed totals, keep this short
)

// Keys
const (
	CACHE_KEY_CONCERTS_LIST  = CACHE_PREFIX + ":concerts:list"
	CACHE_KEY_CONCERT_DETAIL = CACHE_PREFIX + ":concerts:detail:" // + concert-id
	CACHE_KEY_ZONE_LIST      = CACHE_PREFIX + ":catalog:zones:"   // + concert-id
)

// Invalidation patterns
const (
	PATTERN_INVALIDATE_CONCERTS = CACHE_PREFIX + ":concerts:*"
	PATTERN_INVALIDATE_CATALOG  = CACHE_PREFIX + ":catalog:*"
)

func BuildConcertDetailKey(concertID string) string {
	return CACHE_KEY_CONCERT_DETAIL + concertID
}

func BuildZoneListKey(concertID string) string {
	return CACHE_KEY_ZONE_LIST + concertID
}
