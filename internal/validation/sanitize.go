package validation

import "strings"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Sanitize trims s and HTML-escapes it.
func Sanitize(s string) string {
	return escaper.Replace(strings.TrimSpace(s))
}

// SanitizeKeepSlash is Sanitize with forward slashes left readable.
func SanitizeKeepSlash(s string) string {
	return strings.ReplaceAll(Sanitize(s), "&#x2F;", "/")
}

func SanitizeAll(in []string, fn func(string) string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = fn(s)
	}
	return out
}
