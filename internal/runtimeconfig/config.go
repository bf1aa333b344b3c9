package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrContentDirRequired     = errors.New("folio config: a content directory is required for every enabled kind")
	ErrExtensionInvalid       = errors.New("folio config: content extension must start with a dot")
	ErrConcurrencyInvalid     = errors.New("folio config: scan concurrency must be positive")
	ErrPageSizeInvalid        = errors.New("folio config: page sizes must be positive and not exceed the maximum")
	ErrFeaturedLimitInvalid   = errors.New("folio config: featured limits must be positive")
	ErrHTTPAddrRequired       = errors.New("folio config: http address is required")
	ErrLoggingProviderUnknown = errors.New("folio config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("folio config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("folio config: logging format is invalid")
)

// Config aggregates the settings of the content service.
type Config struct {
	Content  ContentConfig  `mapstructure:"content"`
	Query    QueryConfig    `mapstructure:"query"`
	Markdown MarkdownConfig `mapstructure:"markdown"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Features Features       `mapstructure:"features"`
}

// ContentConfig locates the content directories.
type ContentConfig struct {
	PostsDir    string `mapstructure:"posts_dir"`
	ProjectsDir string `mapstructure:"projects_dir"`
	Extension   string `mapstructure:"extension"`
	// Concurrency bounds parallel document loads within one scan.
	Concurrency int `mapstructure:"concurrency"`
}

// QueryConfig holds listing defaults.
type QueryConfig struct {
	PageSize         int `mapstructure:"page_size"`
	AdminPageSize    int `mapstructure:"admin_page_size"`
	MaxPageSize      int `mapstructure:"max_page_size"`
	FeaturedPosts    int `mapstructure:"featured_posts"`
	FeaturedProjects int `mapstructure:"featured_projects"`
}

// MarkdownConfig mirrors interfaces.ParseOptions.
type MarkdownConfig struct {
	Extensions []string `mapstructure:"extensions"`
	Sanitize   bool     `mapstructure:"sanitize"`
	HardWraps  bool     `mapstructure:"hard_wraps"`
	SafeMode   bool     `mapstructure:"safe_mode"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig selects and configures the logger provider.
type LoggingConfig struct {
	Provider  string   `mapstructure:"provider"`
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

// Features toggles optional parts of the service.
type Features struct {
	Posts    bool `mapstructure:"posts"`
	Projects bool `mapstructure:"projects"`
	Metrics  bool `mapstructure:"metrics"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			PostsDir:    "content/blog",
			ProjectsDir: "content/projects",
			Extension:   ".md",
			Concurrency: 8,
		},
		Query: QueryConfig{
			PageSize:         10,
			AdminPageSize:    20,
			MaxPageSize:      100,
			FeaturedPosts:    5,
			FeaturedProjects: 3,
		},
		Markdown: MarkdownConfig{
			Extensions: []string{"gfm", "linkify", "tasklist"},
		},
		HTTP: HTTPConfig{
			Addr:            ":8000",
			AllowedOrigins:  []string{"*"},
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{
			Posts:    true,
			Projects: true,
			Metrics:  true,
		},
	}
}

// Validate performs consistency checks and returns the first violation.
func (cfg Config) Validate() error {
	if cfg.Features.Posts && strings.TrimSpace(cfg.Content.PostsDir) == "" {
		return fmt.Errorf("%w: posts", ErrContentDirRequired)
	}
	if cfg.Features.Projects && strings.TrimSpace(cfg.Content.ProjectsDir) == "" {
		return fmt.Errorf("%w: projects", ErrContentDirRequired)
	}
	if ext := strings.TrimSpace(cfg.Content.Extension); ext != "" && !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("%w: %s", ErrExtensionInvalid, ext)
	}
	if cfg.Content.Concurrency < 1 {
		return ErrConcurrencyInvalid
	}

	q := cfg.Query
	if q.PageSize < 1 || q.AdminPageSize < 1 || q.MaxPageSize < max(q.PageSize, q.AdminPageSize) {
		return fmt.Errorf("%w: page_size=%d admin_page_size=%d max_page_size=%d", ErrPageSizeInvalid, q.PageSize, q.AdminPageSize, q.MaxPageSize)
	}
	if q.FeaturedPosts < 1 || q.FeaturedProjects < 1 {
		return ErrFeaturedLimitInvalid
	}

	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}

	provider := NormalizeProvider(cfg.Logging.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %q", ErrLoggingProviderUnknown, cfg.Logging.Provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == ProviderGoLogger {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// Logger providers.
const (
	ProviderConsole  = "console"
	ProviderGoLogger = "gologger"
)

// NormalizeProvider lower-cases the provider name; blank selects console.
func NormalizeProvider(provider string) string {
	normalized := strings.ToLower(strings.TrimSpace(provider))
	if normalized == "" {
		return ProviderConsole
	}
	return normalized
}

func isSupportedProvider(provider string) bool {
	return provider == ProviderConsole || provider == ProviderGoLogger
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
