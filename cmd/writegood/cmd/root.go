// Package cmd implements the writegood command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tinovyatkin/writegood/internal/version"
)

// NewApp creates the CLI application
func NewApp() *cli.Command {
	return &cli.Command{
		Name:    "writegood",
		Usage:   "A naive linter for English prose",
		Version: version.Version(),
		Description: `writegood flags passive voice, weasel words, lexical illusions,
wordy phrases, cliches and other prose issues.

It runs as a one-shot checker, as a language server for editors,
or as a watcher printing suggestions while you write.

Examples:
  writegood check README.md docs/
  writegood check --format sarif . > writegood.sarif
  writegood lsp --stdio
  writegood watch docs/`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a config file (default: .writegood.toml discovered upward)",
				Sources: cli.EnvVars("WRITEGOOD_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level: debug, info, warn, error",
				Value:   "warn",
				Sources: cli.EnvVars("WRITEGOOD_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: "Colorize output: auto, always, never",
				Value: "auto",
			},
		},
		Commands: []*cli.Command{
			checkCommand(),
			lspCommand(),
			watchCommand(),
			serveCommand(),
			versionCommand(),
		},
		// Exit codes are handled by Execute so that commands stay testable.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

// Execute runs the CLI application and returns the process exit code.
func Execute() int {
	return run(context.Background(), os.Args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := NewApp()
	app.Writer = stdout
	app.ErrWriter = stderr
	err := app.Run(ctx, args)
	if err == nil {
		return 0
	}
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		if msg := exitErr.Error(); msg != "" {
			fmt.Fprintln(stderr, msg)
		}
		return exitErr.ExitCode()
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
