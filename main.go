// jones summarizes Python class declarations found in a project tree.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phobologic/jones/internal/config"
	"github.com/phobologic/jones/internal/discover"
	"github.com/phobologic/jones/internal/lang"
	"github.com/phobologic/jones/internal/parse"
	"github.com/phobologic/jones/internal/render"
	"github.com/phobologic/jones/internal/search"
)

var version = "dev"

var errMissingClassName = errors.New("class name query was not given")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var showVersion bool

	cmd := &cobra.Command{
		Use:   "jones [flags] <class-name> [path]",
		Short: "Summarize a Python class: bases, docstring and method signatures",
		Long: `jones searches a project for a Python class declaration and prints its
base classes, docstring and method signatures. With --grep it lists every
class whose name contains the query instead.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				_, _ = fmt.Fprintf(stdout, "jones %s\n", version)
				return nil
			}
			if len(args) == 0 {
				return errMissingClassName
			}

			cfg, err := config.Load(cmd.Flags(), os.Getenv)
			if err != nil {
				return err
			}
			if len(args) > 1 {
				cfg.Path = args[1]
			}
			return execute(cfg, args[0], stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	config.RegisterFlags(cmd.Flags())
	cmd.Flags().BoolVarP(&showVersion, "version", "V", false, "show version and exit")

	return cmd
}

func execute(cfg *config.Config, query string, stdout, stderr io.Writer) error {
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := []search.Option{
		search.WithLogger(logger),
		search.WithFilterOptions(discover.Options{NoIgnore: cfg.NoIgnore, Excludes: cfg.Excludes}),
		search.WithMaxFileSize(cfg.MaxFileSize),
		search.WithIgnoreCase(cfg.IgnoreCase),
	}
	if cfg.Backend == config.BackendAST {
		opts = append(opts, search.WithBackend(parse.NewBackend(lang.Python(), logger)))
	}
	engine := search.New(opts...)
	out := render.New(stdout, format, cfg.NoColor)

	logger.Debug("searching",
		slog.String("query", query),
		slog.String("root", cfg.Path),
		slog.Bool("grep", cfg.Grep),
		slog.String("backend", engine.Backend().Name()))

	if cfg.Grep {
		matches, err := engine.GrepClasses(cfg.Path, query)
		if err != nil {
			return fmt.Errorf("searching %s: %w", cfg.Path, err)
		}
		return out.Matches(matches)
	}

	summary, err := engine.FindClass(cfg.Path, query)
	if err != nil {
		return fmt.Errorf("searching %s: %w", cfg.Path, err)
	}
	return out.Summary(summary)
}
