// Package reaction provides HTTP handlers for emoji reactions to articles.
package reaction

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"spectrum-feed/internal/domain/entity"
)

// Timestamp accepts either an RFC 3339 string or Unix epoch milliseconds.
type Timestamp struct{ time.Time }

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			t.Time = time.Time{}
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return errors.New("timestamp must be RFC3339 or epoch milliseconds")
		}
		t.Time = parsed
		return nil
	}
	ms, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return errors.New("timestamp must be RFC3339 or epoch milliseconds")
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}

// CreateRequest is the body of POST /reactions.
type CreateRequest struct {
	UserID    string    `json:"userId" example:"device-3f9c"`
	ArticleID string    `json:"articleId" example:"https://www.reuters.com/world/example"`
	Emoji     string    `json:"emoji" example:"👍"`
	Timestamp Timestamp `json:"timestamp" swaggertype:"string" example:"2026-10-18T09:30:00Z"`
}

// DTO represents a stored reaction.
type DTO struct {
	ID        string    `json:"id" example:"6f1c2b9e-8a4d-4f57-9a0e-3c7b1e2d4f60"`
	UserID    string    `json:"userId" example:"device-3f9c"`
	ArticleID string    `json:"articleId" example:"https://www.reuters.com/world/example"`
	Emoji     string    `json:"emoji" example:"👍"`
	Timestamp time.Time `json:"timestamp" example:"2026-10-18T09:30:00Z"`
	CreatedAt time.Time `json:"createdAt" example:"2026-10-18T09:30:01Z"`
}

// SummaryDTO is the response of GET /reactions.
type SummaryDTO struct {
	ArticleID string                 `json:"articleId"`
	Total     int64                  `json:"total"`
	Counts    []entity.ReactionCount `json:"counts"`
	// Mine is the requesting user's reaction when userId was given.
	Mine *DTO `json:"mine,omitempty"`
}

func toDTO(r *entity.Reaction) DTO {
	return DTO{
		ID:        r.ID,
		UserID:    r.UserID,
		ArticleID: r.ArticleID,
		Emoji:     r.Emoji,
		Timestamp: r.ReactedAt,
		CreatedAt: r.CreatedAt,
	}
}
