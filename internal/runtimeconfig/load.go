package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. FOLIO_HTTP_ADDR.
const EnvPrefix = "FOLIO"

// Load reads configuration on top of DefaultConfig. When path is empty a
// folio.yaml in the working directory is used if present. Environment
// variables override file values. The result is validated.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("folio config: read %s: %w", describe(path), err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("folio config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key so environment variables can override
// values that no config file mentions.
func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("content.posts_dir", cfg.Content.PostsDir)
	v.SetDefault("content.projects_dir", cfg.Content.ProjectsDir)
	v.SetDefault("content.extension", cfg.Content.Extension)
	v.SetDefault("content.concurrency", cfg.Content.Concurrency)

	v.SetDefault("query.page_size", cfg.Query.PageSize)
	v.SetDefault("query.admin_page_size", cfg.Query.AdminPageSize)
	v.SetDefault("query.max_page_size", cfg.Query.MaxPageSize)
	v.SetDefault("query.featured_posts", cfg.Query.FeaturedPosts)
	v.SetDefault("query.featured_projects", cfg.Query.FeaturedProjects)

	v.SetDefault("markdown.extensions", cfg.Markdown.Extensions)
	v.SetDefault("markdown.sanitize", cfg.Markdown.Sanitize)
	v.SetDefault("markdown.hard_wraps", cfg.Markdown.HardWraps)
	v.SetDefault("markdown.safe_mode", cfg.Markdown.SafeMode)

	v.SetDefault("http.addr", cfg.HTTP.Addr)
	v.SetDefault("http.allowed_origins", cfg.HTTP.AllowedOrigins)
	v.SetDefault("http.read_timeout", cfg.HTTP.ReadTimeout)
	v.SetDefault("http.write_timeout", cfg.HTTP.WriteTimeout)
	v.SetDefault("http.shutdown_timeout", cfg.HTTP.ShutdownTimeout)

	v.SetDefault("logging.provider", cfg.Logging.Provider)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.add_source", cfg.Logging.AddSource)
	v.SetDefault("logging.focus", cfg.Logging.Focus)

	v.SetDefault("features.posts", cfg.Features.Posts)
	v.SetDefault("features.projects", cfg.Features.Projects)
	v.SetDefault("features.metrics", cfg.Features.Metrics)
}

func describe(path string) string {
	if path == "" {
		return "folio.yaml"
	}
	return path
}
