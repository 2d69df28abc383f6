// Package scraper fetches a page and pulls out the SEO-relevant markup.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/seo-pirate/backend/internal/common/constants"
	commonerrors "github.com/seo-pirate/backend/internal/common/errors"
	"github.com/seo-pirate/backend/internal/website/domain"
)

// Extractor turns a URL into an SEO snapshot of the live page.
type Extractor interface {
	Extract(ctx context.Context, url string) (domain.Snapshot, error)
}

type HTTPExtractor struct {
	client    *http.Client
	userAgent string
}

func NewHTTPExtractor(timeout time.Duration) *HTTPExtractor {
	return &HTTPExtractor{
		client:    &http.Client{Timeout: timeout},
		userAgent: constants.DefaultScrapeUserAgent,
	}
}

func (e *HTTPExtractor) Extract(ctx context.Context, url string) (domain.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Snapshot{}, commonerrors.ErrScrapeFailed.WithCause(err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return domain.Snapshot{}, commonerrors.ErrScrapeFailed.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Snapshot{}, commonerrors.ErrScrapeFailed.WithCause(
			fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return domain.Snapshot{}, commonerrors.ErrScrapeFailed.WithCause(err)
	}

	return Parse(doc), nil
}

// Parse collects every occurrence of each tag. Duplicates are kept on
// purpose: a page with two titles is exactly what users want to see.
func Parse(doc *goquery.Document) domain.Snapshot {
	snap := domain.Snapshot{
		Title:           texts(doc, "title"),
		MetaDescription: attrs(doc, `meta[name="description"]`, "content"),
		H1:              texts(doc, "h1"),
		H2:              texts(doc, "h2"),
		H3:              texts(doc, "h3"),
		H4:              texts(doc, "h4"),
		H5:              texts(doc, "h5"),
		H6:              texts(doc, "h6"),
		Robots:          attrs(doc, `meta[name="robots"]`, "content"),
		Links:           attrs(doc, "a[href]", "href"),
		Canonical:       attrs(doc, `link[rel="canonical"]`, "href"),
		Mobile:          attrs(doc, `link[rel="alternate"][media]`, "href"),
		PaginationPrev:  attrs(doc, `link[rel="prev"]`, "href"),
		PaginationNext:  attrs(doc, `link[rel="next"]`, "href"),
		AMP:             attrs(doc, `link[rel="amphtml"]`, "href"),
	}

	doc.Find(`link[rel="alternate"][hreflang]`).Each(func(_ int, s *goquery.Selection) {
		lang, _ := s.Attr("hreflang")
		href, _ := s.Attr("href")
		snap.Hreflang = append(snap.Hreflang, fmt.Sprintf("%s %s", lang, href))
	})

	return snap
}

func texts(doc *goquery.Document, selector string) []string {
	values := make([]string, 0)
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		values = append(values, strings.TrimSpace(s.Text()))
	})
	return values
}

func attrs(doc *goquery.Document, selector, attr string) []string {
	values := make([]string, 0)
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr(attr); ok {
			values = append(values, v)
		}
	})
	return values
}
