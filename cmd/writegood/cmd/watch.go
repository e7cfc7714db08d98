package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/tinovyatkin/writegood/internal/config"
	"github.com/tinovyatkin/writegood/internal/watcher"
)

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Watch a directory and print suggestions as files change",
		ArgsUsage: "[DIR]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "pattern",
				Aliases: []string{"p"},
				Usage:   "Glob of files to watch, relative to DIR (repeatable)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, logger)
			if err != nil {
				return err
			}
			w, err := newWatcher(cmd, cfg, logger, cmd.Args().First())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return activate(ctx, w, logger)
		},
	}
}

func newWatcher(cmd *cli.Command, cfg *config.Source, logger logrus.FieldLogger, root string) (*watcher.Watcher, error) {
	fd := os.Stdout.Fd()
	return watcher.New(watcher.Options{
		Root:     root,
		Patterns: cmd.StringSlice("pattern"),
		Config:   cfg,
		Out:      cmd.Root().Writer,
		Color:    config.ColorEnabled(cmd.String("color"), isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)),
		Logger:   logger,
	})
}
