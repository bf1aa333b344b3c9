package folio

import "github.com/goliatone/go-folio/internal/runtimeconfig"

var (
	ErrContentDirRequired     = runtimeconfig.ErrContentDirRequired
	ErrExtensionInvalid       = runtimeconfig.ErrExtensionInvalid
	ErrConcurrencyInvalid     = runtimeconfig.ErrConcurrencyInvalid
	ErrPageSizeInvalid        = runtimeconfig.ErrPageSizeInvalid
	ErrFeaturedLimitInvalid   = runtimeconfig.ErrFeaturedLimitInvalid
	ErrHTTPAddrRequired       = runtimeconfig.ErrHTTPAddrRequired
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	ContentConfig  = runtimeconfig.ContentConfig
	QueryConfig    = runtimeconfig.QueryConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	HTTPConfig     = runtimeconfig.HTTPConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML config file and FOLIO_* environment overrides.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
