package interfaces

// MarkdownParser converts a Markdown body into HTML. Implementations must be
// safe for concurrent use because repositories render documents from several
// goroutines during a scan.
type MarkdownParser interface {
	// Parse renders Markdown using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions renders Markdown using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises rendering. Field names stay plain so they can be
// bound from configuration files and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}
