package domain

// DefaultTTLSeconds is used when no policy is configured and the payload
// carries no usable cookie.maxAge.
const DefaultTTLSeconds = 86400

// TTL interface - Time-to-live policy
// A policy computes the lifetime in seconds for a session about to be
// written. The two variants are a fixed number of seconds and a function
// deriving the value from the payload (for example a remember-me flag).
type TTL interface {
	Seconds(sess SessionData, sid string) int
}

// FixedTTL is a constant time-to-live in seconds.
type FixedTTL int

// Seconds func
func (t FixedTTL) Seconds(_ SessionData, _ string) int {
	return int(t)
}

// TTLFunc derives the time-to-live from the session payload. The sid is
// empty when the caller has none to offer (touch).
type TTLFunc func(sess SessionData, sid string) int

// Seconds func
func (f TTLFunc) Seconds(sess SessionData, sid string) int {
	return f(sess, sid)
}

// ResolveTTL computes the lifetime for a write. A configured policy wins;
// otherwise cookie.maxAge (milliseconds) is floored to seconds; otherwise
// the one-day default applies. Recomputed on every set and touch.
func ResolveTTL(policy TTL, sess SessionData, sid string) int {
	if policy != nil {
		return policy.Seconds(sess, sid)
	}
	if maxAge, ok := sess.CookieMaxAge(); ok {
		return int(maxAge / 1000)
	}
	return DefaultTTLSeconds
}
