// Package admin decides whether the mutating UI is shown.
//
// The gate compares a token embedded in a pasted page link against a value
// compiled into the binary. This is a visibility affordance only. The token
// ships inside every build, so it provides no real access control and is not
// meant to.
package admin

import (
	"net/url"
	"regexp"
	"strings"
)

// Token unlocks the admin UI. Change it per deployment.
const Token = "1234"

var fragmentRe = regexp.MustCompile(`(?i)admin=([^&]+)`)

// TokenFromFragment extracts the admin token from a URL fragment. The input
// may be a full page link, a bare "#admin=..." fragment, or empty; the key
// is matched case-insensitively and the value is percent-decoded.
func TokenFromFragment(s string) string {
	if i := strings.LastIndex(s, "#"); i >= 0 {
		s = s[i+1:]
	}
	m := fragmentRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	v, err := url.PathUnescape(m[1])
	if err != nil {
		return m[1]
	}
	return v
}

// IsAdmin reports whether the fragment carries the compiled-in token.
// Evaluated once at startup, never re-checked.
func IsAdmin(fragment string) bool {
	return TokenFromFragment(fragment) == Token
}
