package contentcmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-folio/internal/commands"
	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

const checkOperation = "content.check_directory"

// ErrDocumentsInvalid is returned when at least one document failed to load.
var ErrDocumentsInvalid = errors.New("content command: documents failed to load")

// ErrKindNotConfigured is returned for a kind with no registered checker.
var ErrKindNotConfigured = errors.New("content command: kind not configured")

// Checker is implemented by content.Repository.
type Checker interface {
	Check(ctx context.Context) (loaded int, failures []*content.LoadError, err error)
}

// CheckReport is the outcome of one directory check.
type CheckReport struct {
	Kind     string
	Loaded   int
	Failures []*content.LoadError
}

// Reporter receives every completed report, including failing ones.
type Reporter func(ctx context.Context, report CheckReport)

var _ command.Commander[CheckDirectoryCommand] = (*CheckDirectoryHandler)(nil)

// CheckDirectoryHandler runs CheckDirectoryCommand through the shared
// command handler.
type CheckDirectoryHandler struct {
	inner *commands.Handler[CheckDirectoryCommand]
}

// NewCheckDirectoryHandler binds the handler to one checker per kind.
func NewCheckDirectoryHandler(checkers map[string]Checker, logger interfaces.Logger, report Reporter, opts ...commands.HandlerOption[CheckDirectoryCommand]) *CheckDirectoryHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CheckDirectoryCommand) error {
		kind := strings.TrimSpace(msg.Kind)
		checker, ok := checkers[kind]
		if !ok || checker == nil {
			return fmt.Errorf("%w: %s", ErrKindNotConfigured, kind)
		}

		loaded, failures, err := checker.Check(ctx)
		if err != nil {
			return err
		}

		for _, failure := range failures {
			logging.WithDocumentContext(logger, kind, failure.Path, failure.Slug).
				Warn("content.check.document_invalid", "error", failure.Err)
		}
		if report != nil {
			report(ctx, CheckReport{Kind: kind, Loaded: loaded, Failures: failures})
		}

		logging.WithFields(logger, map[string]any{
			"content_kind":  kind,
			"loaded_count":  loaded,
			"invalid_count": len(failures),
		}).Info("content.check.completed")

		if len(failures) > 0 {
			return fmt.Errorf("%w: %d of %d %s documents", ErrDocumentsInvalid, len(failures), loaded+len(failures), kind)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CheckDirectoryCommand]{
		commands.WithLogger[CheckDirectoryCommand](logger),
		commands.WithOperation[CheckDirectoryCommand](checkOperation),
		commands.WithMessageFields(func(msg CheckDirectoryCommand) map[string]any {
			return map[string]any{"content_kind": msg.Kind}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CheckDirectoryHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CheckDirectoryCommand].
func (h *CheckDirectoryHandler) Execute(ctx context.Context, msg CheckDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
