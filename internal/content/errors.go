package content

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-folio/internal/markdown"
)

const listOptionsInvalidCode = "LIST_OPTIONS_INVALID"

// NotFoundError is the absence signal of a lookup. It is not a failure of the
// repository: the document simply does not exist.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// ScanError reports a content directory that could not be listed. It fails
// the whole operation, unlike per-document errors which are skipped.
type ScanError struct {
	Dir string
	Err error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("content scan %s: %v", e.Dir, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// LoadError is the per-document failure type returned by Get.
type LoadError = markdown.LoadError

// IsLoadError reports whether err carries a document load failure.
func IsLoadError(err error) bool {
	var target *LoadError
	return errors.As(err, &target)
}

// IsValidation reports whether err was rejected as invalid input.
func IsValidation(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryValidation)
}

func wrapValidationError(err error, message string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).
		WithTextCode(listOptionsInvalidCode)
}
