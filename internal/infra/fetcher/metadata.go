package fetcher

import (
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// pageMetadata is the subset of <head> metadata used to complete an extraction.
type pageMetadata struct {
	Title        string
	SiteName     string
	CanonicalURL string
	ImageURL     string
	PublishedAt  *time.Time
}

// publishedTimeLayouts are tried in order for article:published_time values.
var publishedTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseMetadata reads Open Graph, canonical link and publication time from an HTML document.
// Relative URLs are resolved against base.
func parseMetadata(r io.Reader, base *url.URL) (pageMetadata, error) {
	var meta pageMetadata
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return meta, err
	}

	metaContent := func(selectors ...string) string {
		for _, sel := range selectors {
			if v, ok := doc.Find(sel).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}

	meta.Title = metaContent(`meta[property="og:title"]`, `meta[name="twitter:title"]`)
	if meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	meta.SiteName = metaContent(`meta[property="og:site_name"]`)
	meta.ImageURL = resolve(base, metaContent(
		`meta[property="og:image"]`,
		`meta[property="og:image:url"]`,
		`meta[name="twitter:image"]`,
	))
	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		meta.CanonicalURL = resolve(base, strings.TrimSpace(href))
	}
	if meta.CanonicalURL == "" {
		meta.CanonicalURL = resolve(base, metaContent(`meta[property="og:url"]`))
	}

	published := metaContent(
		`meta[property="article:published_time"]`,
		`meta[name="pubdate"]`,
		`meta[itemprop="datePublished"]`,
	)
	if published == "" {
		published, _ = doc.Find("time[datetime]").First().Attr("datetime")
	}
	meta.PublishedAt = parseTime(published)
	return meta, nil
}

func parseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range publishedTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// resolve returns ref resolved against base, or "" when ref is empty,
// unparsable, or not http(s).
func resolve(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
