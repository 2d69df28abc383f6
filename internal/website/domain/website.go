package domain

import (
	"time"

	userdomain "github.com/seo-pirate/backend/internal/user/domain"
)

type ID string

// Snapshot is one scrape of a page's SEO-relevant markup. Every field is
// multi-valued: real pages repeat tags that should be unique (two titles,
// six h1s), and the point of the product is to surface that.
type Snapshot struct {
	Title           []string `json:"title"`
	MetaDescription []string `json:"metaDescription"`
	H1              []string `json:"h1"`
	H2              []string `json:"h2"`
	H3              []string `json:"h3"`
	H4              []string `json:"h4"`
	H5              []string `json:"h5"`
	H6              []string `json:"h6"`
	Robots          []string `json:"robots"`
	Links           []string `json:"links"`
	Canonical       []string `json:"canonical"`
	Mobile          []string `json:"mobile"`
	PaginationPrev  []string `json:"paginationPrev"`
	PaginationNext  []string `json:"paginationNext"`
	AMP             []string `json:"amp"`
	Hreflang        []string `json:"hreflang"`
}

type Website struct {
	ID        ID            `json:"id"`
	Name      string        `json:"name"`
	URL       string        `json:"url"`
	UserID    userdomain.ID `json:"userId"`
	SEOData   Snapshot      `json:"seodatas"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
