package constants

import "time"

// Redis Cache Configuration
// Pattern: cineseat:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_MEDIUM  = 12 * time.Hour   // showtime metadata
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // seat availability maps
	TTL_REALTIME_SHORT = 30 * time.Second // live seat counts
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "cineseat"
)

// ================== SHOWTIMES MODULE ==================

const (
	CACHE_KEY_SHOWTIME_DETAIL = CACHE_PREFIX + ":showtimes:detail:uuid:"  // + showtime-id
	CACHE_KEY_SEAT_MAP        = CACHE_PREFIX + ":showtimes:seatmap:uuid:" // + showtime-id
)

const (
	TTL_SHOWTIME_DETAIL = TTL_STATIC_MEDIUM
	TTL_SEAT_MAP        = TTL_DYNAMIC_SHORT
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_SHOWTIMES_ALL = CACHE_PREFIX + ":showtimes:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildSeatMapKey(showtimeID string) string {
	return CACHE_KEY_SEAT_MAP + showtimeID
}

func BuildShowtimeDetailKey(showtimeID string) string {
	return CACHE_KEY_SHOWTIME_DETAIL + showtimeID
}
