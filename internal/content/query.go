package content

import (
	"cmp"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-folio/internal/domain"
)

const (
	DefaultPageSize      = 10
	DefaultAdminPageSize = 20
)

// ListOptions selects one page of a filtered listing. Zero Page and PageSize
// take the repository defaults. Filters are applied before pagination.
type ListOptions struct {
	Page     int
	PageSize int
	// Category matches any label of an entity after slug normalisation.
	Category string
	// Search is a case-insensitive substring match over title, description,
	// and rendered body.
	Search string
	Status domain.Status
}

func (o ListOptions) validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Page, validation.Min(1)),
		validation.Field(&o.PageSize, validation.Min(1)),
		validation.Field(&o.Status, validation.By(func(value any) error {
			status, _ := value.(domain.Status)
			if status == "" || status.Known() {
				return nil
			}
			return validation.NewError("validation_status_unknown", "unknown status")
		})),
	)
}

// PageResult is one page of a listing together with the size of the
// filtered set it was cut from.
type PageResult[T any] struct {
	Items      []T
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Paginate returns the 1-based page of items. A page past the end yields an
// empty, non-nil slice.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return []T{}
	}
	// Compare page numbers rather than offsets so huge pages cannot overflow.
	if page > totalPages(len(items), pageSize) {
		return []T{}
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	return slices.Clone(items[start:end])
}

func totalPages(total, pageSize int) int {
	if total == 0 || pageSize < 1 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}

// Term is an aggregated label with the number of entities carrying it.
type Term struct {
	Name  string
	Slug  string
	Count int
}

// sortTerms orders by count, highest first, then by name.
func sortTerms(terms []Term) {
	slices.SortFunc(terms, func(a, b Term) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

// normalizeLabel maps a label to the slug form used for matching and term
// grouping. Values go-slug rejects fall back to lower case.
func normalizeLabel(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if normalized, err := slug.Normalize(trimmed); err == nil && normalized != "" {
		return normalized
	}
	return strings.ToLower(trimmed)
}

type matcher[T any] struct {
	kind     Kind[T]
	category string
	search   string
	status   domain.Status
}

func newMatcher[T any](kind Kind[T], opts ListOptions) matcher[T] {
	return matcher[T]{
		kind:     kind,
		category: normalizeLabel(opts.Category),
		search:   strings.ToLower(strings.TrimSpace(opts.Search)),
		status:   opts.Status,
	}
}

func (m matcher[T]) active() bool {
	return m.category != "" || m.search != "" || m.status != ""
}

func (m matcher[T]) match(item T) bool {
	if m.status != "" && m.kind.Status(item) != m.status {
		return false
	}
	if m.category != "" && !slices.ContainsFunc(m.kind.Labels(item), func(label string) bool {
		return normalizeLabel(label) == m.category
	}) {
		return false
	}
	if m.search != "" && !slices.ContainsFunc(m.kind.Text(item), func(text string) bool {
		return strings.Contains(strings.ToLower(text), m.search)
	}) {
		return false
	}
	return true
}

func (m matcher[T]) filter(items []T) []T {
	if !m.active() {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if m.match(item) {
			out = append(out, item)
		}
	}
	return out
}
