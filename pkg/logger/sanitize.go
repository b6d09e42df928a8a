package logger

import (
	"net/url"
	"strings"
)

// SanitizedEmail masks an email address for logging (e.g., "u***@*******.com")
func SanitizedEmail(email string) string {
	username, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return "[invalid-email]"
	}

	// Keep the first character of the local part
	runes := []rune(username)
	if len(runes) > 1 {
		username = string(runes[0]) + strings.Repeat("*", len(runes)-1)
	}

	// Keep only the TLD of the domain
	labels := strings.Split(domain, ".")
	if len(labels) > 1 {
		for i := 0; i < len(labels)-1; i++ {
			labels[i] = strings.Repeat("*", len([]rune(labels[i])))
		}
		domain = strings.Join(labels, ".")
	}

	return username + "@" + domain
}

var sensitiveParams = []string{
	"password",
	"token",
	"secret",
	"email",
	"auth",
}

// SensitiveQuery reports whether a raw query string names or searches a
// sensitive field and should be redacted as a whole
func SensitiveQuery(rawQuery string) bool {
	if rawQuery == "" {
		return false
	}

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		// Unparseable queries are redacted rather than logged verbatim
		return true
	}

	for key, vals := range values {
		if isSensitive(key) {
			return true
		}
		for _, v := range vals {
			if isSensitive(v) {
				return true
			}
		}
	}
	return false
}

func isSensitive(s string) bool {
	s = strings.ToLower(s)
	for _, param := range sensitiveParams {
		if strings.Contains(s, param) {
			return true
		}
	}
	return false
}
