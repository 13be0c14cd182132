package tokens

import (
	"time"
)

const (
	// ExpiredMargin is how far ahead of the actual expiry a token is already
	// treated as expired.
	ExpiredMargin = 5 * time.Minute
	// ExpiringSoonWindow is the advisory look-ahead for proactive refresh.
	ExpiringSoonWindow = 10 * time.Minute
)

// IsExpired reports whether a token with the given expiry should be treated
// as expired. A nil expiry counts as expired.
func IsExpired(expire *time.Time) bool {
	return IsExpiredAt(expire, time.Now())
}

// IsExpiredAt is IsExpired evaluated against an explicit clock.
func IsExpiredAt(expire *time.Time, now time.Time) bool {
	if expire == nil {
		return true
	}
	return !expire.After(now.Add(ExpiredMargin))
}

// IsExpiringSoon reports whether a token will expire within the advisory
// window. A nil expiry returns false.
func IsExpiringSoon(expire *time.Time) bool {
	return IsExpiringSoonAt(expire, time.Now())
}

// IsExpiringSoonAt is IsExpiringSoon evaluated against an explicit clock.
func IsExpiringSoonAt(expire *time.Time, now time.Time) bool {
	if expire == nil {
		return false
	}
	return expire.Before(now.Add(ExpiringSoonWindow))
}

// ParseExpire parses an RFC3339 expiry string from the wire. Empty or
// unparseable input yields nil, which IsExpired treats conservatively.
func ParseExpire(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

// FormatExpire renders an expiry for the wire. Nil becomes the empty string.
func FormatExpire(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
