package domain

import "time"

const (
	DatetimeLayout = "2006-01-02T15:04:05Z"
)

// NowMillis returns the current wall-clock time as epoch milliseconds,
// the unit session expiries are stored in.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// ExpiryFrom computes the expiry instant for a write issued at nowMillis
// with the given lifetime in seconds.
func ExpiryFrom(nowMillis int64, ttlSeconds int) int64 {
	return nowMillis + int64(ttlSeconds)*1000
}

// MillisToTime converts an epoch-millisecond timestamp to time.Time.
func MillisToTime(millis int64) time.Time {
	return time.UnixMilli(millis)
}
