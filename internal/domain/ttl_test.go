package domain

import "testing"

// TestResolveTTLFixedPolicyOverridesCookie tests that a fixed policy wins
// over cookie-derived values
func TestResolveTTLFixedPolicyOverridesCookie(t *testing.T) {
	sess := SessionData{"cookie": map[string]interface{}{"maxAge": float64(3600000)}}

	if got := ResolveTTL(FixedTTL(60), sess, "sid"); got != 60 {
		t.Errorf("expected fixed ttl 60 to override cookie maxAge, got %d", got)
	}
}

// TestResolveTTLDerivationFunction tests that a function policy receives
// the payload and sid and its result is returned unchanged
func TestResolveTTLDerivationFunction(t *testing.T) {
	var gotSid string
	policy := TTLFunc(func(sess SessionData, sid string) int {
		gotSid = sid
		if remember, _ := sess["rememberMe"].(bool); remember {
			return 7 * 86400
		}
		return 300
	})

	sess := SessionData{"rememberMe": true}
	if got := ResolveTTL(policy, sess, "sid-9"); got != 7*86400 {
		t.Errorf("expected derived ttl %d, got %d", 7*86400, got)
	}
	if gotSid != "sid-9" {
		t.Errorf("expected policy to receive sid-9, got %q", gotSid)
	}

	if got := ResolveTTL(policy, SessionData{}, ""); got != 300 {
		t.Errorf("expected derived ttl 300 without rememberMe, got %d", got)
	}
}

// TestResolveTTLCookieMaxAgeFloorsToSeconds tests the maxAge fallback
func TestResolveTTLCookieMaxAgeFloorsToSeconds(t *testing.T) {
	sess := SessionData{"cookie": map[string]interface{}{"maxAge": float64(61500)}}

	if got := ResolveTTL(nil, sess, "sid"); got != 61 {
		t.Errorf("expected floor(61500/1000)=61, got %d", got)
	}
}

// TestResolveTTLDefaultsToOneDay tests the default for payloads without
// cookie metadata
func TestResolveTTLDefaultsToOneDay(t *testing.T) {
	if got := ResolveTTL(nil, SessionData{}, "sid"); got != 86400 {
		t.Errorf("expected default ttl 86400, got %d", got)
	}

	// Empty cookie block is tolerated, not an error
	sess := SessionData{"cookie": map[string]interface{}{}}
	if got := ResolveTTL(nil, sess, "sid"); got != 86400 {
		t.Errorf("expected default ttl 86400 for empty cookie block, got %d", got)
	}
}
