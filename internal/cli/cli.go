// Package cli implements the safeinfer command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/born-ml/safeinfer/internal/envconfig"
	"github.com/born-ml/safeinfer/internal/executor"
)

// Version is the safeinfer release.
const Version = "v0.1.0-dev"

type rootOptions struct {
	logLevel  string
	logFormat string

	logger *slog.Logger
}

// executor returns an Executor logging through the configured logger.
func (o *rootOptions) executor() *executor.Executor {
	return executor.New(executor.WithLogger(o.logger))
}

// NewCLI returns the root command.
func NewCLI() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "safeinfer",
		Short:         "Plan and execute small tensor graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(opts.logLevel, opts.logFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error (default from SAFEINFER_DEBUG)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: text or json (default from SAFEINFER_LOG_FORMAT)")

	root.AddCommand(
		newReluCmd(opts),
		newMatMulCmd(opts),
		newXORCmd(opts),
		newAttackCmd(opts),
		newPlanCmd(),
		newVersionCmd(),
	)

	return root
}

// newLogger builds a logger writing to w. Empty arguments fall back to the environment.
func newLogger(levelStr, formatStr string, w io.Writer) (*slog.Logger, error) {
	level := envconfig.LogLevel()
	switch levelStr {
	case "":
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level %q", levelStr)
	}

	if formatStr == "" {
		formatStr = envconfig.LogFormat()
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch formatStr {
	case "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	case "text":
		handler = slog.NewTextHandler(w, handlerOpts)
	default:
		return nil, fmt.Errorf("invalid log format %q", formatStr)
	}

	return slog.New(handler), nil
}
