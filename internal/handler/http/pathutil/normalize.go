package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// UnmatchedPath is the label used for paths that are not routed by the API.
const UnmatchedPath = "/:unmatched"

// pathPatterns defines the dynamic routes, most specific first.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/sources/[^/]+$`), Template: "/sources/:id"},
	{Pattern: regexp.MustCompile(`^/swagger(/.*)?$`), Template: "/swagger/*"},
}

// staticPaths are reported unchanged.
var staticPaths = map[string]struct{}{
	"/":          {},
	"/feed":      {},
	"/article":   {},
	"/reactions": {},
	"/sources":   {},
	"/health":    {},
	"/ready":     {},
	"/live":      {},
	"/metrics":   {},
}

// NormalizePath maps a request path onto a bounded set of metric labels.
// Query strings and trailing slashes are ignored; unrouted paths collapse into
// UnmatchedPath so scanners cannot inflate label cardinality.
//
// Examples:
//
//	NormalizePath("/feed?x=0.1&y=0.2")   // "/feed"
//	NormalizePath("/sources/bbc-news")   // "/sources/:id"
//	NormalizePath("/swagger/index.html") // "/swagger/*"
//	NormalizePath("/wp-admin")           // "/:unmatched"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := staticPaths[path]; ok {
		return path
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return UnmatchedPath
}

// GetExpectedCardinality returns the number of distinct labels NormalizePath can produce.
func GetExpectedCardinality() int {
	return len(staticPaths) + len(pathPatterns) + 1
}
