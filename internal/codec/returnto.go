package codec

import "strings"

// ValidateReturnTo validates the returnTo redirect target. Unlike the
// outbound allow-list this controls in-app navigation, so the rule is
// simpler: only site-relative paths are accepted. A "//"-prefixed value
// is a protocol-relative URL and an open-redirect vector (browsers
// resolve "//evil.com" as "https://evil.com"), so it is rejected along
// with absolute URLs, javascript: values and everything else that does
// not start with a single "/".
//
// Returns s unchanged when valid, "" otherwise.
func ValidateReturnTo(s string) string {
	if !strings.HasPrefix(s, "/") || strings.HasPrefix(s, "//") {
		return ""
	}
	return s
}
