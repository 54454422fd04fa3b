// Package sanitize strips unsafe HTML from user-authored content before it is
// persisted. The policy is allowlist-based: basic formatting tags survive,
// script/iframe/style and all on* event attributes are removed, and links are
// forced to open in a new tab without a referrer.
package sanitize

import "github.com/microcosm-cc/bluemonday"

// Content sanitizes post and comment bodies.
type Content struct {
	policy *bluemonday.Policy
}

// NewContent builds the sanitizer with the service's content policy.
func NewContent() *Content {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em",
	)

	p.AllowAttrs("href").OnElements("a")
	p.AllowRelativeURLs(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)
	p.AllowURLSchemes("https")

	return &Content{policy: p}
}

// Sanitize returns the safe form of rawHTML. Plain text passes through
// unchanged; the same input always yields the same output.
func (c *Content) Sanitize(rawHTML string) string {
	return c.policy.Sanitize(rawHTML)
}
