package feed

import "spectrum-feed/internal/domain/entity"

// Assembly is the result of AssembleCards with per-card provenance counts.
type Assembly struct {
	Cards    []entity.Card
	Matched  int // cards built from an article of their own source
	Fallback int // cards built from another source's article
	Missing  int // sources that produced no card
}

// AssembleCards builds one card per source, in source order.
//
// A source's card uses the first article published by that source. When the
// source has no article, the card borrows the article at index
// (cards emitted so far) mod len(articles). With no articles at all nothing
// is emitted. The card's source fields always describe the source, never the
// article.
func AssembleCards(sources []entity.Source, articles []entity.Article) []entity.Card {
	return Assemble(sources, articles).Cards
}

// Assemble is AssembleCards with provenance counts.
func Assemble(sources []entity.Source, articles []entity.Article) Assembly {
	first := make(map[string]int, len(articles))
	for i, a := range articles {
		if _, ok := first[a.SourceID]; !ok {
			first[a.SourceID] = i
		}
	}

	res := Assembly{Cards: make([]entity.Card, 0, len(sources))}
	for _, src := range sources {
		idx, ok := first[src.ID]
		switch {
		case ok:
			res.Matched++
		case len(articles) > 0:
			idx = len(res.Cards) % len(articles)
			res.Fallback++
		default:
			res.Missing++
			continue
		}
		res.Cards = append(res.Cards, newCard(src, articles[idx]))
	}
	return res
}

func newCard(src entity.Source, a entity.Article) entity.Card {
	return entity.Card{
		ArticleID:   a.ID,
		Title:       a.Title,
		SourceID:    src.ID,
		SourceName:  src.Name,
		ImageURL:    a.ImageURL,
		URL:         a.URL(),
		PublishedAt: a.PublishedAt,
		Side:        src.Side,
	}
}
