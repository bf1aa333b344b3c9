package content

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/markdown"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// DefaultConcurrency bounds the number of documents loaded in parallel
// during one scan.
const DefaultConcurrency = 8

// ScanObserver receives the outcome of every directory scan.
type ScanObserver interface {
	ObserveScan(kind string, duration time.Duration, loaded, skipped int, err error)
}

// Option configures a Repository at construction time.
type Option func(*settings)

type settings struct {
	logger          interfaces.Logger
	observer        ScanObserver
	concurrency     int
	defaultPageSize int
}

// WithLogger sets the logger used to report skipped documents.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver reports scan results, typically to a metrics recorder.
func WithObserver(observer ScanObserver) Option {
	return func(s *settings) {
		s.observer = observer
	}
}

// WithConcurrency bounds parallel document loads. Values below one load
// documents sequentially.
func WithConcurrency(n int) Option {
	return func(s *settings) {
		s.concurrency = max(n, 1)
	}
}

// WithDefaultPageSize overrides the page size used when ListOptions.PageSize
// is zero. Explicit page sizes are never capped here.
func WithDefaultPageSize(size int) Option {
	return func(s *settings) {
		if size > 0 {
			s.defaultPageSize = size
		}
	}
}

// Repository serves one content kind from one flat directory. Every call
// rescans the directory; nothing is cached and no field is mutated after
// construction, so a Repository is safe for concurrent use.
type Repository[T any] struct {
	kind   Kind[T]
	loader *markdown.Loader
	settings
}

// NewRepository builds a repository for kind over the documents loader finds.
func NewRepository[T any](loader *markdown.Loader, kind Kind[T], opts ...Option) *Repository[T] {
	s := settings{
		logger:          logging.NoOp(),
		concurrency:     DefaultConcurrency,
		defaultPageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return &Repository[T]{kind: kind, loader: loader, settings: s}
}

// Kind returns the kind served by the repository.
func (r *Repository[T]) Kind() Kind[T] {
	return r.kind
}

// All loads every valid document and returns them newest first. Documents
// that fail to load are logged and left out.
func (r *Repository[T]) All(ctx context.Context) ([]T, error) {
	return r.scan(ctx)
}

// List returns one page of the full listing. It is shorthand for Page
// without filters.
func (r *Repository[T]) List(ctx context.Context, page, pageSize int) ([]T, error) {
	if page < 1 || pageSize < 1 {
		return nil, wrapValidationError(errors.New("page and page size must be positive"), "invalid list options")
	}
	result, err := r.Page(ctx, ListOptions{Page: page, PageSize: pageSize})
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}

// Page filters the full listing and returns the requested page along with
// the filtered total.
func (r *Repository[T]) Page(ctx context.Context, opts ListOptions) (PageResult[T], error) {
	if opts.Page == 0 {
		opts.Page = 1
	}
	if opts.PageSize == 0 {
		opts.PageSize = r.defaultPageSize
	}
	opts.Status = opts.Status.Normalize()
	if err := opts.validate(); err != nil {
		return PageResult[T]{}, wrapValidationError(err, "invalid list options")
	}

	items, err := r.scan(ctx)
	if err != nil {
		return PageResult[T]{}, err
	}
	items = newMatcher(r.kind, opts).filter(items)

	return PageResult[T]{
		Items:      Paginate(items, opts.Page, opts.PageSize),
		Total:      len(items),
		Page:       opts.Page,
		PageSize:   opts.PageSize,
		TotalPages: totalPages(len(items), opts.PageSize),
	}, nil
}

// Get loads the document stored under slug. A missing file yields a
// NotFoundError; a file that exists but cannot be loaded yields its
// *LoadError instead of being reported as missing.
func (r *Repository[T]) Get(ctx context.Context, slug string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	slug = strings.TrimSpace(slug)
	name, ok := r.loader.PathFor(slug)
	if !ok {
		return zero, &NotFoundError{Resource: r.kind.Name, Key: slug}
	}
	exists, err := r.loader.Exists(slug)
	if err != nil {
		return zero, err
	}
	if !exists {
		return zero, &NotFoundError{Resource: r.kind.Name, Key: slug}
	}

	doc, err := r.loader.Load(ctx, name, r.kind.Schema)
	if err != nil {
		return zero, err
	}
	return r.kind.Build(doc), nil
}

// Featured returns the first limit entities of the full listing. The
// header featured flag is not consulted.
func (r *Repository[T]) Featured(ctx context.Context, limit int) ([]T, error) {
	if limit < 1 {
		return nil, wrapValidationError(errors.New("limit must be positive"), "invalid featured limit")
	}
	items, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items[:min(limit, len(items))]), nil
}

// Terms aggregates the labels of every valid document. Labels that
// normalise to the same slug are counted together under the first spelling
// seen in listing order.
func (r *Repository[T]) Terms(ctx context.Context) ([]Term, error) {
	items, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}

	index := map[string]int{}
	terms := []Term{}
	for _, item := range items {
		seen := map[string]struct{}{}
		for _, label := range r.kind.Labels(item) {
			key := normalizeLabel(label)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			if i, ok := index[key]; ok {
				terms[i].Count++
				continue
			}
			index[key] = len(terms)
			terms = append(terms, Term{Name: strings.TrimSpace(label), Slug: key, Count: 1})
		}
	}
	sortTerms(terms)
	return terms, nil
}

// Check loads every document of the directory and returns the failures
// keyed by path, in scan order. Nothing is skipped silently.
func (r *Repository[T]) Check(ctx context.Context) (loaded int, failures []*LoadError, err error) {
	paths, err := r.loader.Scan(ctx)
	if err != nil {
		return 0, nil, &ScanError{Dir: r.loader.Dir(), Err: err}
	}
	for _, name := range paths {
		if _, err := r.loader.Load(ctx, name, r.kind.Schema); err != nil {
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				return loaded, failures, err
			}
			failures = append(failures, loadErr)
			continue
		}
		loaded++
	}
	return loaded, failures, nil
}

func (r *Repository[T]) scan(ctx context.Context) (items []T, err error) {
	started := time.Now()
	loaded, skipped := 0, 0
	defer func() {
		if r.observer != nil {
			r.observer.ObserveScan(r.kind.Name, time.Since(started), loaded, skipped, err)
		}
	}()

	paths, err := r.loader.Scan(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ScanError{Dir: r.loader.Dir(), Err: err}
	}
	r.logger.Debug("content.scan.start", "content_kind", r.kind.Name, "files", len(paths))

	results := make([]T, len(paths))
	ok := make([]bool, len(paths))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.concurrency)
	for i, name := range paths {
		group.Go(func() error {
			doc, err := r.loader.Load(groupCtx, name, r.kind.Schema)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				logging.WithDocumentContext(r.logger, r.kind.Name, name, markdown.SlugFromPath(name, r.loader.Extension())).
					Warn("content.document.skipped", "error", err)
				return nil
			}
			results[i] = r.kind.Build(doc)
			ok[i] = true
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	items = make([]T, 0, len(paths))
	for i := range results {
		if ok[i] {
			items = append(items, results[i])
		}
	}
	loaded, skipped = len(items), len(paths)-len(items)

	slices.SortStableFunc(items, func(a, b T) int {
		return r.kind.Date(b).Compare(r.kind.Date(a))
	})

	r.logger.Debug("content.scan.done", "content_kind", r.kind.Name, "loaded", loaded, "skipped", skipped)
	return items, nil
}
