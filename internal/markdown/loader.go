package markdown

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

// DefaultExtension is the content file extension recognised when none is configured.
const DefaultExtension = ".md"

// LoaderConfig configures how documents are discovered within a filesystem.
type LoaderConfig struct {
	// Dir is the flat directory holding the documents, relative to the filesystem root.
	Dir string
	// Extension selects content files; defaults to ".md".
	Extension string
	// Parser renders document bodies. A GoldmarkParser is created when nil.
	Parser interfaces.MarkdownParser
	// ParseOptions are passed to Parser on every render.
	ParseOptions interfaces.ParseOptions
}

// Loader reads documents from one flat directory. It holds no mutable state
// and is safe for concurrent use.
type Loader struct {
	fs        fs.FS
	dir       string
	extension string
	parser    interfaces.MarkdownParser
	opts      interfaces.ParseOptions
}

// Document is a loaded content file: identity derived from its filename,
// the extracted header, the Markdown body, and the rendered HTML.
type Document struct {
	Path         string
	Slug         string
	Header       Header
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum is the SHA-256 digest of the raw file content.
	Checksum []byte
}

// NewLoader constructs a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	ext := strings.TrimSpace(cfg.Extension)
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	dir := path.Clean(strings.TrimSpace(cfg.Dir))
	if dir == "" || dir == "/" {
		dir = "."
	}

	parser := cfg.Parser
	if parser == nil {
		parser = NewGoldmarkParser(cfg.ParseOptions)
	}

	return &Loader{
		fs:        filesystem,
		dir:       dir,
		extension: ext,
		parser:    parser,
		opts:      cfg.ParseOptions,
	}
}

// Dir returns the directory scanned, relative to the filesystem root.
func (l *Loader) Dir() string {
	return l.dir
}

// Extension returns the recognised content extension.
func (l *Loader) Extension() string {
	return l.extension
}

// Scan lists the content files of the directory in lexical order. Sub
// directories are not entered. An unreadable directory is returned as an
// error; there is nothing finer grained to isolate at that point.
func (l *Loader) Scan(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(l.fs, l.dir)
	if err != nil {
		return nil, fmt.Errorf("markdown scan %s: %w", l.dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if path.Ext(entry.Name()) != l.extension {
			continue
		}
		paths = append(paths, path.Join(l.dir, entry.Name()))
	}
	return paths, nil
}

// PathFor resolves the file a slug would be stored in. ok is false when the
// slug cannot name a file directly inside the directory.
func (l *Loader) PathFor(slug string) (string, bool) {
	slug = strings.TrimSpace(slug)
	if slug == "" || slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`) {
		return "", false
	}
	name := path.Join(l.dir, slug+l.extension)
	if !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}

// Exists reports whether a regular content file is stored for slug.
func (l *Loader) Exists(slug string) (bool, error) {
	name, ok := l.PathFor(slug)
	if !ok {
		return false, nil
	}
	info, err := fs.Stat(l.fs, name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &LoadError{Op: OpRead, Path: name, Slug: slug, Err: fmt.Errorf("%w: %w", ErrRead, err)}
	}
	return info.Mode().IsRegular(), nil
}

// Load reads, parses, and renders the document at name using schema.
func (l *Loader) Load(ctx context.Context, name string, schema Schema) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slug := SlugFromPath(name, l.extension)

	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, &LoadError{Op: OpRead, Path: name, Slug: slug, Err: fmt.Errorf("%w: %w", ErrRead, err)}
	}

	var modified time.Time
	if info, err := fs.Stat(l.fs, name); err == nil {
		modified = info.ModTime().UTC()
	}

	header, body, err := schema.Parse(data)
	if err != nil {
		return nil, &LoadError{Op: OpParse, Path: name, Slug: slug, Err: err}
	}

	html, err := l.parser.ParseWithOptions([]byte(body), l.opts)
	if err != nil {
		return nil, &LoadError{Op: OpRender, Path: name, Slug: slug, Err: err}
	}

	sum := sha256.Sum256(data)
	return &Document{
		Path:         name,
		Slug:         slug,
		Header:       header,
		Body:         []byte(body),
		BodyHTML:     html,
		LastModified: modified,
		Checksum:     sum[:],
	}, nil
}

// SlugFromPath returns the file name of p without ext. The slug never comes
// from header content, so it is unique within a directory.
func SlugFromPath(p, ext string) string {
	base := path.Base(p)
	if ext != "" && strings.HasSuffix(base, ext) {
		return strings.TrimSuffix(base, ext)
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
