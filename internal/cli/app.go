package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ArthurCoding/agenda/internal/session"
	"github.com/ArthurCoding/agenda/internal/store"
)

// app is the store, controller and output of one command invocation.
type app struct {
	store  *store.Store
	ctrl   *session.Controller
	out    *OutputFormatter
	logger *slog.Logger
}

// newLogger configures logging based on the verbose flag.
// Logs go to w and carry the invocation's trace id.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	logger := slog.New(handler)
	if opts.TraceID != "" {
		logger = logger.With("trace_id", opts.TraceID)
	}
	return logger
}

// newOutput creates the formatter for a command.
func newOutput(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		TraceID:   opts.TraceID,
	}
}

// openApp opens the database and creates the controller.
// An unavailable database is a command error.
func openApp(opts *RootOptions, cmd *cobra.Command) (*app, error) {
	out := newOutput(opts, cmd)
	logger := newLogger(opts, cmd.ErrOrStderr())

	logger.Debug("opening database", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, out.Fail("failed to open database", err)
	}

	return &app{
		store:  st,
		ctrl:   session.New(st, session.WithLogger(logger)),
		out:    out,
		logger: logger,
	}, nil
}

// Close closes the database, logging any error.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("error closing database", "error", err)
	}
}
