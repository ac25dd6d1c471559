package fetcher

import (
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips unsafe markup from extracted article HTML.
// It is safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns a sanitizer based on the user-generated-content policy:
// scripts, styles and event handlers are removed, links get rel="nofollow"
// and absolute links open in a new tab.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.AllowAttrs("loading").Matching(bluemonday.SpaceSeparatedTokens).OnElements("img")
	return &Sanitizer{policy: p}
}

// Sanitize returns html with disallowed elements and attributes removed.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
