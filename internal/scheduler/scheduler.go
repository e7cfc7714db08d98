// Package scheduler decides when a document is analyzed.
//
// Opening and saving an allow-listed document always analyzes it. Edits
// analyze it only when save-only mode is off and the debounce interval has
// elapsed since the last completed analysis; edits arriving sooner are
// dropped, never queued. Closing a document removes its annotations.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/tinovyatkin/writegood/internal/config"
	"github.com/tinovyatkin/writegood/internal/document"
	"github.com/tinovyatkin/writegood/internal/host"
	"github.com/tinovyatkin/writegood/internal/lint"
	"github.com/tinovyatkin/writegood/internal/store"
)

// Scheduler reacts to document lifecycle events.
type Scheduler struct {
	store    *store.Store
	analyzer lint.Analyzer
	config   config.Reader
	sink     store.Sink
	clock    clockwork.Clock
	log      logrus.FieldLogger

	// mu runs one event at a time so that analyses and flushes of
	// different events never interleave.
	mu sync.Mutex
}

// Options configures a Scheduler. Store, Analyzer, Config and Sink are
// required.
type Options struct {
	Store    *store.Store
	Analyzer lint.Analyzer
	Config   config.Reader
	Sink     store.Sink
	Clock    clockwork.Clock
	Logger   logrus.FieldLogger
}

// New creates a Scheduler.
func New(opts Options) *Scheduler {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Scheduler{
		store:    opts.Store,
		analyzer: opts.Analyzer,
		config:   opts.Config,
		sink:     opts.Sink,
		clock:    opts.Clock,
		log:      opts.Logger,
	}
}

// Handlers returns the dispatch table a host invokes.
func (s *Scheduler) Handlers() host.Handlers {
	return host.Handlers{
		Open:   s.OnOpen,
		Save:   s.OnSave,
		Change: s.OnChange,
		Close:  s.OnClose,
	}
}

// OnOpen analyzes a newly opened document of an allow-listed language.
func (s *Scheduler) OnOpen(ctx context.Context, doc document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := config.Read(s.config)
	if !settings.Languages.Allows(doc.LanguageID) {
		s.skip(doc, "language not enabled")
		return nil
	}
	return s.analyze(ctx, doc, settings)
}

// OnSave analyzes a saved document of an allow-listed language, regardless
// of save-only mode and debounce.
func (s *Scheduler) OnSave(ctx context.Context, doc document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := config.Read(s.config)
	if !settings.Languages.Allows(doc.LanguageID) {
		s.skip(doc, "language not enabled")
		return nil
	}
	return s.analyze(ctx, doc, settings)
}

// OnChange analyzes an edited document unless save-only mode is on or the
// last analysis is more recent than the debounce interval.
func (s *Scheduler) OnChange(ctx context.Context, doc document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := config.Read(s.config)
	if !settings.Languages.Allows(doc.LanguageID) {
		s.skip(doc, "language not enabled")
		return nil
	}
	if settings.OnlyLintOnSave {
		s.skip(doc, "only linting on save")
		return nil
	}
	if last, ok := s.store.LastAnalyzedAt(doc.ID); ok {
		if elapsed := s.clock.Since(last); elapsed < settings.Debounce {
			s.log.WithFields(logrus.Fields{
				"document": doc.ID,
				"elapsed":  elapsed,
				"debounce": settings.Debounce,
			}).Debug("scheduler: skipped, within debounce interval")
			return nil
		}
	}
	return s.analyze(ctx, doc, settings)
}

// OnClose removes the annotations of a closed document. The language
// allow-list is not consulted so that a configuration change between open
// and close cannot leave stale annotations behind.
func (s *Scheduler) OnClose(ctx context.Context, id document.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Remove(id)
	s.log.WithField("document", id).Debug("scheduler: removed annotations")
	if err := s.store.FlushAll(ctx, s.sink); err != nil {
		return fmt.Errorf("close %s: %w", id, err)
	}
	return nil
}

// analyze runs a full analysis and publishes the result. A failed analysis
// leaves the previous annotations in place.
func (s *Scheduler) analyze(ctx context.Context, doc document.Document, settings config.Settings) error {
	annotations, err := lint.Build(s.analyzer, doc.Text, lint.Options(settings.Options), 0)
	if err != nil {
		s.log.WithError(err).WithField("document", doc.ID).Error("scheduler: analysis failed")
		return fmt.Errorf("analyze %s: %w", doc.ID, err)
	}

	s.store.Replace(doc.ID, annotations)
	s.log.WithFields(logrus.Fields{
		"document":    doc.ID,
		"language":    doc.LanguageID,
		"annotations": len(annotations),
	}).Debug("scheduler: analyzed")

	if err := s.store.FlushAll(ctx, s.sink); err != nil {
		return fmt.Errorf("publish %s: %w", doc.ID, err)
	}
	return nil
}

func (s *Scheduler) skip(doc document.Document, reason string) {
	s.log.WithFields(logrus.Fields{
		"document": doc.ID,
		"language": doc.LanguageID,
		"reason":   reason,
	}).Debug("scheduler: skipped")
}
