package wordpress

import (
	"regexp"
	"strconv"
	"strings"
)

// excerptMaxChars is the excerpt truncation boundary. Truncation is not
// word-boundary aware and can split mid-word; that is long-standing
// observable behavior, not something to correct here.
const excerptMaxChars = 160

var (
	numericEntityRe = regexp.MustCompile(`&#(\d+);`)
	tagRe           = regexp.MustCompile(`<[^>]+>`)
)

// DecodeEntities replaces numeric entities (&#NNN;) with their code-point
// character and the four named entities &amp; &lt; &gt; &quot; with their
// literals. Anything else passes through unchanged. Named entities are
// replaced sequentially after the numeric pass, so double-escaped input
// like "&amp;lt;" decodes all the way to "<".
func DecodeEntities(s string) string {
	if s == "" {
		return ""
	}

	decoded := numericEntityRe.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.Atoi(m[2 : len(m)-1])
		if err != nil {
			return m
		}
		return string(rune(n))
	})

	decoded = strings.ReplaceAll(decoded, "&amp;", "&")
	decoded = strings.ReplaceAll(decoded, "&lt;", "<")
	decoded = strings.ReplaceAll(decoded, "&gt;", ">")
	decoded = strings.ReplaceAll(decoded, "&quot;", `"`)
	return decoded
}

// SanitizeExcerpt strips all tag spans from html, decodes entities, then
// truncates to the first 160 characters and appends a literal ellipsis
// whether or not truncation occurred.
func SanitizeExcerpt(html string) string {
	if html == "" {
		return ""
	}

	stripped := tagRe.ReplaceAllString(html, "")
	decoded := DecodeEntities(stripped)

	runes := []rune(decoded)
	if len(runes) > excerptMaxChars {
		runes = runes[:excerptMaxChars]
	}
	return string(runes) + "..."
}
