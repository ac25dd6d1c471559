package entity

import "time"

// Reaction is a user's emoji reaction to an article.
type Reaction struct {
	ID        string
	UserID    string
	ArticleID string
	Emoji     string
	ReactedAt time.Time
	CreatedAt time.Time
}

// ReactionCount is the number of users that reacted to an article with one emoji.
type ReactionCount struct {
	Emoji string `json:"emoji"`
	Count int64  `json:"count"`
}
