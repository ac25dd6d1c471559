package feed

import (
	"time"

	"spectrum-feed/internal/domain/entity"
)

// CardDTO is one feed slot on the wire.
type CardDTO struct {
	ArticleID   string    `json:"articleId" example:"https://www.bbc.co.uk/news/world-1"`
	Title       string    `json:"title" example:"Leaders meet for climate summit"`
	SourceID    string    `json:"sourceId" example:"bbc-news"`
	SourceName  string    `json:"sourceName" example:"BBC News"`
	ImageURL    string    `json:"imageUrl" example:"https://ichef.bbci.co.uk/news/1.jpg"`
	URL         string    `json:"url" example:"https://www.bbc.co.uk/news/world-1"`
	PublishedAt time.Time `json:"publishedAt" example:"2026-10-18T09:30:00Z"`
	Side        string    `json:"side" example:"CENTER" enums:"LEFT,CENTER,RIGHT"`
}

func toDTOs(cards []entity.Card) []CardDTO {
	out := make([]CardDTO, 0, len(cards))
	for _, c := range cards {
		out = append(out, CardDTO{
			ArticleID:   c.ArticleID,
			Title:       c.Title,
			SourceID:    c.SourceID,
			SourceName:  c.SourceName,
			ImageURL:    c.ImageURL,
			URL:         c.URL,
			PublishedAt: c.PublishedAt,
			Side:        c.Side.String(),
		})
	}
	return out
}
