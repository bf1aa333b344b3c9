package content

import (
	"time"

	"github.com/goliatone/go-folio/internal/domain"
	"github.com/goliatone/go-folio/internal/markdown"
)

// Kind binds a header schema to the entity type assembled from it, along
// with the accessors the repository needs to sort, filter, and aggregate
// entities without knowing their concrete shape.
type Kind[T any] struct {
	// Name identifies the kind in logs, metrics, and not-found errors.
	Name   string
	Schema markdown.Schema
	// Build assembles an entity from a successfully loaded document.
	Build func(doc *markdown.Document) T
	Slug  func(T) string
	// Date is the sort key; listings are ordered by it, newest first.
	Date   func(T) time.Time
	Status func(T) domain.Status
	// Labels returns the category-like values an entity can be filtered by.
	Labels func(T) []string
	// Text returns the values searched by ListOptions.Search.
	Text func(T) []string
}

// Source records where an entity was loaded from.
type Source struct {
	Path         string
	Checksum     string
	LastModified time.Time
}

func sourceOf(doc *markdown.Document) Source {
	return Source{
		Path:         doc.Path,
		Checksum:     hexChecksum(doc.Checksum),
		LastModified: doc.LastModified,
	}
}

// DescriptionLength is the number of characters of rendered HTML used as a
// description when a header leaves it empty.
const DescriptionLength = 200

func backfillDescription(description string, html []byte) string {
	if description != "" {
		return description
	}
	runes := []rune(string(html))
	if len(runes) > DescriptionLength {
		runes = runes[:DescriptionLength]
	}
	return string(runes)
}
