// Package cli holds the start-up and exit handling shared by the commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/committools/internal/config"
	"github.com/JonMunkholm/committools/internal/errmsg"
	"github.com/JonMunkholm/committools/internal/logging"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// UsageError marks an error caused by bad command-line arguments.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// Usagef returns a UsageError with a formatted message.
func Usagef(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// Bootstrap loads .env and the environment configuration, configures
// logging and returns a run context cancelled on SIGINT or SIGTERM.
func Bootstrap(name string) (context.Context, *config.Config, context.CancelFunc, error) {
	envLoaded := config.LoadEnvFile()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx = logging.NewRunContext(ctx)

	logging.FromContext(ctx).Debug("configuration loaded",
		"command", name,
		"env_file", envLoaded,
		"config", cfg.String(),
	)
	return ctx, cfg, stop, nil
}

// ExitCode reports err on w and returns the process exit code for it.
func ExitCode(w io.Writer, err error) int {
	if err == nil {
		return ExitOK
	}

	var ue *UsageError
	if errors.As(err, &ue) {
		fmt.Fprintf(w, "usage error: %v\n", ue.Err)
		return ExitUsage
	}

	slog.Error("run failed", "error", err, "code", errmsg.Map(err).Code)
	fmt.Fprintln(w, errmsg.Format(err))
	return ExitError
}
