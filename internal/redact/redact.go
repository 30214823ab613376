// Package redact scrubs secrets and personal data out of error text before it
// reaches a log line. Session tokens, connection strings with credentials,
// SQL statements and email addresses are replaced with placeholders.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	Placeholder           = "[REDACTED]"
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_JWT]"
	SecretPlaceholder     = "[REDACTED_SECRET]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	PathPlaceholder       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Order matters: connection strings go before emails so the user@host part
// is consumed as a credential, and tokens go before generic secrets.
var rules = []rule{
	{
		regexp.MustCompile(`(?i)\b(postgres(?:ql)?|redis|rediss)://[^@\s]+@`),
		CredentialPlaceholder,
	},
	{
		regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*`),
		TokenPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret|jwt_secret|token)(\s*[=:]\s*['"]?)[^'"&\s,]{3,}`),
		"${1}${2}" + SecretPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\b[^;]*?\b(FROM|INTO|SET)\b[^;]*`),
		SQLPlaceholder,
	},
	{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		EmailPlaceholder,
	},
	{
		regexp.MustCompile(`(?:/[\w.-]+){3,}\.go(?::\d+)?`),
		PathPlaceholder,
	},
}

// String returns input with every sensitive fragment replaced.
func String(input string) string {
	if input == "" {
		return input
	}
	out := input
	for _, r := range rules {
		out = r.pattern.ReplaceAllString(out, r.placeholder)
	}
	return out
}

// Error redacts err.Error(). A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
