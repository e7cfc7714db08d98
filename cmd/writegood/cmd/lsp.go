package cmd

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/tinovyatkin/writegood/internal/lspserver"
)

func lspCommand() *cli.Command {
	return &cli.Command{
		Name:  "lsp",
		Usage: "Start the Language Server Protocol server",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "stdio",
				Usage: "Use stdio transport",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.Bool("stdio") {
				return errors.New("only --stdio transport is supported")
			}
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, logger)
			if err != nil {
				return err
			}
			return activate(ctx, lspserver.New(cfg, logger), logger)
		},
	}
}
