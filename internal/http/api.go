package http

import (
	"context"
	"net/http"
	"runtime/debug"

	"github.com/rs/cors"

	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/metrics"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Source is the read contract the API needs from a content repository.
type Source[T any] interface {
	Page(ctx context.Context, opts content.ListOptions) (content.PageResult[T], error)
	Get(ctx context.Context, slug string) (T, error)
	Featured(ctx context.Context, limit int) ([]T, error)
	Terms(ctx context.Context) ([]content.Term, error)
}

const (
	defaultFeaturedPosts    = 5
	defaultFeaturedProjects = 3
	defaultMaxPageSize      = 100
)

// API registers the read-only content routes.
type API struct {
	posts            Source[*content.Post]
	projects         Source[*content.Project]
	logger           interfaces.Logger
	metrics          *metrics.Recorder
	pageSize         int
	adminPageSize    int
	maxPageSize      int
	featuredPosts    int
	featuredProjects int
	allowedOrigins   []string
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API. Routes for a kind are only registered when its
// source is configured.
func NewAPI(opts ...Option) *API {
	api := &API{
		logger:           logging.NoOp(),
		pageSize:         content.DefaultPageSize,
		adminPageSize:    content.DefaultAdminPageSize,
		maxPageSize:      defaultMaxPageSize,
		featuredPosts:    defaultFeaturedPosts,
		featuredProjects: defaultFeaturedProjects,
		allowedOrigins:   []string{"*"},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithPosts wires the post repository.
func WithPosts(source Source[*content.Post]) Option {
	return func(api *API) {
		api.posts = source
	}
}

// WithProjects wires the project repository.
func WithProjects(source Source[*content.Project]) Option {
	return func(api *API) {
		api.projects = source
	}
}

// WithLogger sets the logger for request failures.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithMetrics records request metrics and serves /metrics.
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(api *API) {
		api.metrics = recorder
	}
}

// WithPageSizes sets the default page size of public and admin listings.
func WithPageSizes(public, admin int) Option {
	return func(api *API) {
		if public > 0 {
			api.pageSize = public
		}
		if admin > 0 {
			api.adminPageSize = admin
		}
	}
}

// WithMaxPageSize caps the page_size query parameter.
func WithMaxPageSize(size int) Option {
	return func(api *API) {
		if size > 0 {
			api.maxPageSize = size
		}
	}
}

// WithFeaturedLimits sets how many posts and projects the featured routes return.
func WithFeaturedLimits(posts, projects int) Option {
	return func(api *API) {
		if posts > 0 {
			api.featuredPosts = posts
		}
		if projects > 0 {
			api.featuredProjects = projects
		}
	}
}

// WithAllowedOrigins sets the CORS origins; defaults to "*".
func WithAllowedOrigins(origins []string) Option {
	return func(api *API) {
		if len(origins) > 0 {
			api.allowedOrigins = origins
		}
	}
}

// Register mounts every route on mux.
func (api *API) Register(mux *http.ServeMux) {
	if api == nil || mux == nil {
		return
	}
	api.handle(mux, "GET /health", api.handleHealth)
	if api.metrics != nil {
		mux.Handle("GET /metrics", api.metrics.Handler())
	}
	if api.posts != nil {
		api.handle(mux, "GET /blog/posts", api.handlePostList)
		api.handle(mux, "GET /blog/posts/{slug}", api.handlePostGet)
		api.handle(mux, "GET /blog/featured", api.handlePostFeatured)
		api.handle(mux, "GET /blog/categories", api.handlePostCategories)
		api.handle(mux, "GET /admin/blog/posts", api.handleAdminPostList)
	}
	if api.projects != nil {
		api.handle(mux, "GET /projects", api.handleProjectList)
		// The literal segment wins over {slug}, so "featured" is never looked up.
		api.handle(mux, "GET /projects/featured", api.handleProjectFeatured)
		api.handle(mux, "GET /projects/{slug}", api.handleProjectGet)
	}
}

// Handler returns a mux with every route registered, wrapped with panic
// recovery and CORS.
func (api *API) Handler() http.Handler {
	mux := http.NewServeMux()
	api.Register(mux)

	var handler http.Handler = mux
	handler = api.recover(handler)
	return cors.New(cors.Options{
		AllowedOrigins: api.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "If-None-Match"},
		ExposedHeaders: []string{headerTotalCount, headerPage, headerPageSize, headerTotalPages, "ETag"},
	}).Handler(handler)
}

func (api *API) handle(mux *http.ServeMux, pattern string, fn http.HandlerFunc) {
	var handler http.Handler = fn
	if api.metrics != nil {
		handler = api.metrics.Middleware(pattern, handler)
	}
	mux.Handle(pattern, handler)
}

func (api *API) recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				api.logger.Error("http.panic",
					"error", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (api *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, payload := mapError(err)
	if status >= http.StatusInternalServerError {
		api.logger.WithContext(r.Context()).Error("http.request.failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"error", err,
		)
	}
	writeJSON(w, status, payload)
}

func (api *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
