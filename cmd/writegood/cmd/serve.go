package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/tinovyatkin/writegood/internal/host"
	"github.com/tinovyatkin/writegood/internal/lspserver"
)

// serveCommand picks the host from the environment: an editor spawning the
// binary with piped stdin gets the language server, a terminal gets the
// watcher on the working directory.
func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run as a language server when spawned by an editor, otherwise watch the working directory",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, logger)
			if err != nil {
				return err
			}

			h, err := host.Resolve(ctx,
				host.Candidate{
					Name:   "lsp",
					Detect: host.NotTerminal(os.Stdin),
					New: func(context.Context) (host.Host, error) {
						return lspserver.New(cfg, logger), nil
					},
				},
				host.Candidate{
					Name: "watch",
					New: func(context.Context) (host.Host, error) {
						return newWatcher(cmd, cfg, logger, "")
					},
				},
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return activate(ctx, h, logger)
		},
	}
}
