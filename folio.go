// Package folio serves blog posts and portfolio projects from flat
// directories of Markdown files with YAML headers.
package folio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/goliatone/go-folio/internal/commands"
	contentcmd "github.com/goliatone/go-folio/internal/commands/content"
	"github.com/goliatone/go-folio/internal/content"
	folhttp "github.com/goliatone/go-folio/internal/http"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/logging/console"
	"github.com/goliatone/go-folio/internal/logging/gologger"
	"github.com/goliatone/go-folio/internal/markdown"
	"github.com/goliatone/go-folio/internal/metrics"
	"github.com/goliatone/go-folio/internal/runtimeconfig"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

type (
	Post        = content.Post
	Project     = content.Project
	Term        = content.Term
	ListOptions = content.ListOptions
	CheckReport = contentcmd.CheckReport

	PostRepository    = *content.Repository[*content.Post]
	ProjectRepository = *content.Repository[*content.Project]
)

// IsNotFound reports whether err means the requested document does not exist.
func IsNotFound(err error) bool {
	return content.IsNotFound(err)
}

// Module wires repositories, logging, metrics, the HTTP API and commands
// from one Config.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	recorder *metrics.Recorder
	posts    PostRepository
	projects ProjectRepository
	api      *folhttp.API
	checks   *contentcmd.HandlerSet
}

// Option overrides collaborators built from the config.
type Option func(*moduleOptions)

type moduleOptions struct {
	fsys      fs.FS
	provider  interfaces.LoggerProvider
	logWriter io.Writer
	recorder  *metrics.Recorder
	parser    interfaces.MarkdownParser
	reporter  contentcmd.Reporter
}

// WithFS resolves content directories against fsys instead of the working
// directory.
func WithFS(fsys fs.FS) Option {
	return func(o *moduleOptions) {
		o.fsys = fsys
	}
}

// WithLoggerProvider replaces the provider selected by Logging.Provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// WithLogWriter sets the console provider output.
func WithLogWriter(w io.Writer) Option {
	return func(o *moduleOptions) {
		o.logWriter = w
	}
}

// WithMetricsRecorder replaces the recorder created when metrics are enabled.
func WithMetricsRecorder(recorder *metrics.Recorder) Option {
	return func(o *moduleOptions) {
		o.recorder = recorder
	}
}

// WithMarkdownParser replaces the goldmark renderer.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(o *moduleOptions) {
		o.parser = parser
	}
}

// WithCheckReporter receives every directory check report.
func WithCheckReporter(reporter contentcmd.Reporter) Option {
	return func(o *moduleOptions) {
		o.reporter = reporter
	}
}

// New validates cfg and builds the module.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := moduleOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.fsys == nil {
		options.fsys = os.DirFS(".")
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = newLoggerProvider(cfg.Logging, options.logWriter)
		if err != nil {
			return nil, err
		}
	}

	recorder := options.recorder
	if recorder == nil && cfg.Features.Metrics {
		recorder = metrics.New()
	}

	parser := options.parser
	parseOpts := interfaces.ParseOptions{
		Extensions: cfg.Markdown.Extensions,
		Sanitize:   cfg.Markdown.Sanitize,
		HardWraps:  cfg.Markdown.HardWraps,
		SafeMode:   cfg.Markdown.SafeMode,
	}
	if parser == nil {
		parser = markdown.NewGoldmarkParser(parseOpts)
	}

	m := &Module{cfg: cfg, provider: provider, recorder: recorder}

	repoOpts := []content.Option{
		content.WithLogger(logging.ContentLogger(provider)),
		content.WithConcurrency(cfg.Content.Concurrency),
		content.WithDefaultPageSize(cfg.Query.PageSize),
	}
	if recorder != nil {
		repoOpts = append(repoOpts, content.WithObserver(recorder))
	}

	loader := func(dir string) *markdown.Loader {
		return markdown.NewLoader(options.fsys, markdown.LoaderConfig{
			Dir:          dir,
			Extension:    cfg.Content.Extension,
			Parser:       parser,
			ParseOptions: parseOpts,
		})
	}

	apiOpts := []folhttp.Option{
		folhttp.WithLogger(logging.HTTPLogger(provider)),
		folhttp.WithPageSizes(cfg.Query.PageSize, cfg.Query.AdminPageSize),
		folhttp.WithMaxPageSize(cfg.Query.MaxPageSize),
		folhttp.WithFeaturedLimits(cfg.Query.FeaturedPosts, cfg.Query.FeaturedProjects),
		folhttp.WithAllowedOrigins(cfg.HTTP.AllowedOrigins),
		folhttp.WithMetrics(recorder),
	}
	checkers := map[string]contentcmd.Checker{}

	if cfg.Features.Posts {
		m.posts = content.NewRepository(loader(cfg.Content.PostsDir), content.Posts(), repoOpts...)
		apiOpts = append(apiOpts, folhttp.WithPosts(m.posts))
		checkers[content.KindPost] = m.posts
	}
	if cfg.Features.Projects {
		m.projects = content.NewRepository(loader(cfg.Content.ProjectsDir), content.Projects(), repoOpts...)
		apiOpts = append(apiOpts, folhttp.WithProjects(m.projects))
		checkers[content.KindProject] = m.projects
	}
	if len(checkers) == 0 {
		return nil, errors.New("folio: no content kind enabled")
	}

	m.api = folhttp.NewAPI(apiOpts...)

	checks, err := contentcmd.RegisterContentCommands(nil, checkers, provider,
		contentcmd.WithReporter(options.reporter),
		contentcmd.WithCheckHandlerOptions(
			commands.WithTelemetry(commands.DefaultTelemetry[contentcmd.CheckDirectoryCommand](logging.CommandsLogger(provider))),
		),
	)
	if err != nil {
		return nil, err
	}
	m.checks = checks

	return m, nil
}

// Config returns the validated configuration.
func (m *Module) Config() Config {
	return m.cfg
}

// Logger returns the named module logger.
func (m *Module) Logger(name string) interfaces.Logger {
	return logging.ModuleLogger(m.provider, name)
}

// Posts returns the post repository, or nil when posts are disabled.
func (m *Module) Posts() PostRepository {
	return m.posts
}

// Projects returns the project repository, or nil when projects are disabled.
func (m *Module) Projects() ProjectRepository {
	return m.projects
}

// Metrics returns the recorder, or nil when metrics are disabled.
func (m *Module) Metrics() *metrics.Recorder {
	return m.recorder
}

// Handler returns the HTTP API with recovery and CORS applied.
func (m *Module) Handler() http.Handler {
	return m.api.Handler()
}

// RegisterCommands registers the content command handlers with reg, e.g. a
// go-command registry.
func (m *Module) RegisterCommands(reg contentcmd.CommandRegistry) error {
	if reg == nil {
		return nil
	}
	return reg.RegisterCommand(m.checks.Check)
}

// Check validates every document of kind and returns an error if any
// document fails to load.
func (m *Module) Check(ctx context.Context, kind string) error {
	return m.checks.Check.Execute(ctx, contentcmd.CheckDirectoryCommand{Kind: kind})
}

func newLoggerProvider(cfg LoggingConfig, w io.Writer) (interfaces.LoggerProvider, error) {
	switch runtimeconfig.NormalizeProvider(cfg.Provider) {
	case runtimeconfig.ProviderGoLogger:
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	case runtimeconfig.ProviderConsole:
		level, err := console.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		return console.NewProvider(console.Options{Writer: w, MinLevel: level}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrLoggingProviderUnknown, cfg.Provider)
	}
}
