package pathutil

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

// ExtractSlug extracts a catalog slug such as "bbc-news" from a URL path.
//
// Example:
//
//	id, err := ExtractSlug("/sources/bbc-news", "/sources/")
//	// Returns: "bbc-news", nil
func ExtractSlug(path, prefix string) (string, error) {
	if !strings.HasPrefix(path, prefix) {
		return "", ErrInvalidID
	}
	id := strings.TrimSuffix(strings.TrimPrefix(path, prefix), "/")
	if !slugPattern.MatchString(id) {
		return "", ErrInvalidID
	}
	return id, nil
}
