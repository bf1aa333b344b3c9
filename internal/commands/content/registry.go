package contentcmd

import (
	"errors"

	"github.com/goliatone/go-folio/internal/commands"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// CommandRegistry is the registration contract used when wiring handlers,
// satisfied by go-command registries.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers built by RegisterContentCommands.
type HandlerSet struct {
	Check *CheckDirectoryHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	reporter  Reporter
	checkOpts []commands.HandlerOption[CheckDirectoryCommand]
}

// WithReporter receives every check report.
func WithReporter(reporter Reporter) Option {
	return func(o *options) {
		o.reporter = reporter
	}
}

// WithCheckHandlerOptions forwards options to the check handler.
func WithCheckHandlerOptions(opts ...commands.HandlerOption[CheckDirectoryCommand]) Option {
	return func(o *options) {
		o.checkOpts = append(o.checkOpts, opts...)
	}
}

// RegisterContentCommands builds the content handlers and registers them
// with reg when it is not nil.
func RegisterContentCommands(reg CommandRegistry, checkers map[string]Checker, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if len(checkers) == 0 {
		return nil, errors.New("content command registration: no checkers")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "content")
	check := NewCheckDirectoryHandler(checkers, logger, cfg.reporter, cfg.checkOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(check); err != nil {
			return nil, err
		}
	}
	return &HandlerSet{Check: check}, nil
}
