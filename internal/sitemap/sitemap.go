// Package sitemap renders the Google News sitemap for recently published
// posts.
package sitemap

import (
	"strings"
	"time"

	"github.com/Sharecom5/TBM/internal/wordpress"
)

const (
	publicationName     = "The Bharat Mirror"
	publicationLanguage = "en"

	header = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"
        xmlns:news="http://www.google.com/schemas/sitemap-news/0.9">`
	footer = "\n</urlset>\n"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Generate renders a news sitemap for the given posts. siteURL must not
// have a trailing slash.
func Generate(posts []wordpress.PostData, siteURL string) string {
	var b strings.Builder
	b.WriteString(header)

	for _, post := range posts {
		b.WriteString("\n  <url>\n")
		b.WriteString("    <loc>" + siteURL + "/" + post.Slug + "</loc>\n")
		b.WriteString("    <news:news>\n")
		b.WriteString("      <news:publication>\n")
		b.WriteString("        <news:name>" + publicationName + "</news:name>\n")
		b.WriteString("        <news:language>" + publicationLanguage + "</news:language>\n")
		b.WriteString("      </news:publication>\n")
		b.WriteString("      <news:publication_date>" + publicationDate(post.Date) + "</news:publication_date>\n")
		b.WriteString("      <news:title>" + xmlEscaper.Replace(post.Title) + "</news:title>\n")
		b.WriteString("    </news:news>\n")
		b.WriteString("  </url>")
	}

	b.WriteString(footer)
	return b.String()
}

// publicationDate normalizes a WordPress post date to RFC 3339 UTC. The
// CMS emits dates without a zone designator; those are taken as UTC. An
// unparseable date passes through unchanged.
func publicationDate(date string) string {
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	if t, err := time.Parse("2006-01-02T15:04:05", date); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	return date
}
