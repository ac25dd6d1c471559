// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Source, Article and Card, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// Article is a news item supplied by an external news provider.
// ID is the article's canonical URL; SourceID is the provider's source identifier.
type Article struct {
	ID          string
	Title       string
	SourceID    string
	ImageURL    string
	PublishedAt time.Time
}

// URL returns the canonical URL of the article.
func (a Article) URL() string {
	return a.ID
}

// Card is one slot of an assembled feed.
// SourceID, SourceName and Side always describe the source the slot was
// assembled for, even when the article content came from another source.
type Card struct {
	ArticleID   string    `json:"articleId"`
	Title       string    `json:"title"`
	SourceID    string    `json:"sourceId"`
	SourceName  string    `json:"sourceName"`
	ImageURL    string    `json:"imageUrl"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	Side        Side      `json:"side"`
}

// ExtractedArticle is the readable form of an article page.
type ExtractedArticle struct {
	URL          string     `json:"url"`
	CanonicalURL string     `json:"canonicalUrl,omitempty"`
	Title        string     `json:"title"`
	Byline       string     `json:"byline,omitempty"`
	SiteName     string     `json:"siteName,omitempty"`
	Excerpt      string     `json:"excerpt,omitempty"`
	Content      string     `json:"content"`
	TextContent  string     `json:"textContent"`
	ImageURL     string     `json:"imageUrl,omitempty"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	Length       int        `json:"length"`
}
