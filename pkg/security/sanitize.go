package security

import "strings"

// htmlEscaper maps the five HTML-significant characters to named entities.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// SanitizeInput escapes HTML-significant characters so the string can be
// safely injected into an HTML text context.
func SanitizeInput(s string) string {
	return htmlEscaper.Replace(s)
}
