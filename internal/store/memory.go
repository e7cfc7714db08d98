package store

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/tinovyatkin/writegood/internal/document"
	"github.com/tinovyatkin/writegood/internal/lint"
)

// MemorySink is a Sink keeping the rendered annotations in memory.
type MemorySink struct {
	mu      sync.Mutex
	shown   map[document.ID][]lint.Annotation
	flushes int
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{shown: make(map[document.ID][]lint.Annotation)}
}

// Clear implements Sink.
func (m *MemorySink) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.shown)
	return nil
}

// Set implements Sink.
func (m *MemorySink) Set(_ context.Context, id document.ID, annotations []lint.Annotation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown[id] = slices.Clone(annotations)
	return nil
}

// Flush implements Flusher.
func (m *MemorySink) Flush(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushes++
	return nil
}

// Shown returns a copy of the rendered annotations.
func (m *MemorySink) Shown() map[document.ID][]lint.Annotation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.shown)
}

// Flushes returns how many times the sink was flushed.
func (m *MemorySink) Flushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}
