package markdown

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingHeader reports a document that does not open with a header delimiter.
	ErrMissingHeader = errors.New("markdown: missing header")
	// ErrMalformedHeader reports a header that is never closed by a second delimiter.
	ErrMalformedHeader = errors.New("markdown: malformed header")
	// ErrHeaderDecode wraps YAML decoding failures of the header block.
	ErrHeaderDecode = errors.New("markdown: header decode failed")
	// ErrMissingField reports an absent required header key.
	ErrMissingField = errors.New("markdown: missing required field")
	// ErrInvalidDate reports a header date that is not a YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("markdown: invalid date")
	// ErrRead wraps filesystem failures while reading a document.
	ErrRead = errors.New("markdown: read failed")
)

// Load operations recorded on LoadError.
const (
	OpRead   = "read"
	OpParse  = "parse"
	OpRender = "render"
)

// HeaderError describes why a header could not be turned into field values.
// Kind is one of the Err* sentinels above so callers can use errors.Is.
type HeaderError struct {
	Kind  error
	Field string
	Value string
	Cause error
}

func (e *HeaderError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrMissingField):
		return fmt.Sprintf("%v: %s", e.Kind, e.Field)
	case errors.Is(e.Kind, ErrInvalidDate):
		return fmt.Sprintf("%v: %s=%q", e.Kind, e.Field, e.Value)
	case e.Cause != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
	case e.Kind != nil:
		return e.Kind.Error()
	default:
		return "markdown: header error"
	}
}

func (e *HeaderError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return out
}

// LoadError is returned by Loader.Load. It carries the file path and derived
// slug so listings can log which document was skipped.
type LoadError struct {
	Op   string
	Path string
	Slug string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("markdown %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err was caused by an authoring mistake in the
// document header rather than by I/O.
func IsParseError(err error) bool {
	var headerErr *HeaderError
	return errors.As(err, &headerErr)
}

// IsReadError reports whether err was caused by the filesystem.
func IsReadError(err error) bool {
	return errors.Is(err, ErrRead)
}
