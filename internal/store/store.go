// Package store holds the annotations of every analyzed document and pushes
// them to a host's rendering surface.
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tinovyatkin/writegood/internal/document"
	"github.com/tinovyatkin/writegood/internal/lint"
)

// Sink is a host's rendering surface for annotations.
type Sink interface {
	// Clear drops everything previously set.
	Clear(ctx context.Context) error
	// Set shows annotations for a document.
	Set(ctx context.Context, id document.ID, annotations []lint.Annotation) error
}

// Flusher is implemented by sinks that buffer Clear and Set and render them
// in one step.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Entry is the state of one analyzed document.
type Entry struct {
	Annotations []lint.Annotation
	AnalyzedAt  time.Time
}

// Store maps document identities to their latest annotations. An entry
// exists from the first completed analysis until the document is removed.
// It is safe for concurrent use.
type Store struct {
	clock clockwork.Clock

	mu      sync.Mutex
	entries map[document.ID]Entry

	flushMu sync.Mutex
}

// New creates an empty store reading time from clock.
func New(clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		clock:   clock,
		entries: make(map[document.ID]Entry),
	}
}

// Replace records annotations as the latest analysis of id.
func (s *Store) Replace(id document.ID, annotations []lint.Annotation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = Entry{
		Annotations: slices.Clone(annotations),
		AnalyzedAt:  s.clock.Now(),
	}
}

// Remove forgets id. Removing an unknown id is a no-op.
func (s *Store) Remove(id document.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// LastAnalyzedAt returns when id was last analyzed.
func (s *Store) LastAnalyzedAt(id document.ID) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	return e.AnalyzedAt, ok
}

// Get returns the entry of id.
func (s *Store) Get(id document.ID) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if ok {
		e.Annotations = slices.Clone(e.Annotations)
	}
	return e, ok
}

// IDs returns the identities of all entries in sorted order.
func (s *Store) IDs() []document.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]document.ID, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// FlushAll makes sink show exactly the current entries: it clears the sink,
// sets every entry in identity order and flushes buffering sinks. Concurrent
// flushes are serialized, and the entries are snapshotted once so a flush
// never mixes two states of the store.
func (s *Store) FlushAll(ctx context.Context, sink Sink) error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.Lock()
	ids := make([]document.ID, 0, len(s.entries))
	snapshot := make(map[document.ID][]lint.Annotation, len(s.entries))
	for id, e := range s.entries {
		ids = append(ids, id)
		snapshot[id] = e.Annotations
	}
	s.mu.Unlock()
	slices.Sort(ids)

	if err := sink.Clear(ctx); err != nil {
		return fmt.Errorf("clear annotations: %w", err)
	}
	for _, id := range ids {
		if err := sink.Set(ctx, id, slices.Clone(snapshot[id])); err != nil {
			return fmt.Errorf("set annotations for %s: %w", id, err)
		}
	}
	if f, ok := sink.(Flusher); ok {
		if err := f.Flush(ctx); err != nil {
			return fmt.Errorf("flush annotations: %w", err)
		}
	}
	return nil
}
