// internal/app/system/sanitize/sanitize.go

// Package sanitize cleans user-generated content before it is persisted.
// Post and comment bodies authored as HTML go through a rich-content
// policy that removes anything executable.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/noyonalways/tech-tips-hub-api/internal/domain/models"
)

var richPolicy = newRichPolicy()

// newRichPolicy builds the policy for post and comment bodies: standard
// user-generated-content elements plus tables, images, and code blocks.
// Scripts, iframes, forms, and event handlers are always removed.
func newRichPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowTables()
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td", "pre", "code", "span", "div")
	p.AllowAttrs("style").OnElements("table", "tr", "th", "td")
	p.AllowImages()
	return p
}

// HTML sanitizes a rich HTML fragment, keeping allowed markup and
// dropping everything executable.
func HTML(s string) string {
	return richPolicy.Sanitize(s)
}

// Content cleans a post or comment body according to its declared content
// type. HTML bodies are sanitized; markdown and plain-text bodies are
// stored verbatim and escaped at render time by clients.
func Content(contentType, body string) string {
	if contentType == models.ContentTypeHTML {
		return HTML(body)
	}
	return body
}
