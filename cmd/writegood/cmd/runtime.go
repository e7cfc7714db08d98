package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/tinovyatkin/writegood/internal/config"
	"github.com/tinovyatkin/writegood/internal/host"
	"github.com/tinovyatkin/writegood/internal/lint"
	"github.com/tinovyatkin/writegood/internal/scheduler"
	"github.com/tinovyatkin/writegood/internal/store"
)

// analysisCacheSize bounds the per-line analysis cache shared by a process.
const analysisCacheSize = 4096

func loadConfig(cmd *cli.Command, logger logrus.FieldLogger) (*config.Source, error) {
	cfg, err := config.Load(config.LoadOptions{
		File:   cmd.String("config"),
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"file": cfg.Path(),
		"ci":   config.CIName(),
	}).Debug("config: loaded")
	return cfg, nil
}

func newAnalyzer() (lint.Analyzer, error) {
	cached, err := lint.NewCachedAnalyzer(lint.WriteGood{}, analysisCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create analyzer: %w", err)
	}
	return cached, nil
}

// activate wires a scheduler to h and runs it until h stops.
func activate(ctx context.Context, h host.Host, logger logrus.FieldLogger) error {
	analyzer, err := newAnalyzer()
	if err != nil {
		return err
	}
	sched := scheduler.New(scheduler.Options{
		Store:    store.New(nil),
		Analyzer: analyzer,
		Config:   h.Config(),
		Sink:     h.Collection(),
		Logger:   logger.WithField("host", h.Name()),
	})

	logger.WithField("host", h.Name()).Info("write-good linter active")
	defer logger.WithField("host", h.Name()).Info("write-good linter deactivating")

	return h.Run(ctx, sched.Handlers())
}
