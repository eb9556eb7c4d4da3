package domain

// DTOs (Data Transfer Objects) - Domain layer payload structures

// SessionData is the decoded form of a session payload. The store treats
// it as opaque apart from the cookie metadata consulted by the TTL policy;
// it round-trips through JSON unchanged.
type SessionData map[string]interface{}

// CookieMaxAge extracts cookie.maxAge (milliseconds) from the payload.
// Returns false when the cookie block or the field is absent or not numeric.
func (d SessionData) CookieMaxAge() (int64, bool) {
	cookie, ok := d["cookie"].(map[string]interface{})
	if !ok {
		return 0, false
	}
	switch v := cookie["maxAge"].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

// WithID returns a copy of the payload with the session id merged in
// under the "id" key, as produced by the enumeration use case.
func (d SessionData) WithID(sid string) SessionData {
	merged := make(SessionData, len(d)+1)
	for k, v := range d {
		merged[k] = v
	}
	merged["id"] = sid
	return merged
}
