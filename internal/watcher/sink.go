package watcher

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"

	"github.com/tinovyatkin/writegood/internal/document"
	"github.com/tinovyatkin/writegood/internal/lint"
	"github.com/tinovyatkin/writegood/internal/reporter"
	"github.com/tinovyatkin/writegood/internal/store"
)

// TerminalSink prints annotations as text. Clear and Set are buffered;
// Flush prints only the documents whose annotations changed since the
// previous flush.
type TerminalSink struct {
	out     io.Writer
	color   bool
	display func(document.ID) string
	source  func(document.ID) []byte

	mu      sync.Mutex
	pending map[document.ID][]lint.Annotation
	shown   map[document.ID][]lint.Annotation
}

var (
	_ store.Sink    = (*TerminalSink)(nil)
	_ store.Flusher = (*TerminalSink)(nil)
)

// NewTerminalSink creates a sink writing to out. display and source may be
// nil.
func NewTerminalSink(out io.Writer, color bool, display func(document.ID) string, source func(document.ID) []byte) *TerminalSink {
	if display == nil {
		display = document.ID.Display
	}
	if source == nil {
		source = func(document.ID) []byte { return nil }
	}
	return &TerminalSink{
		out:     out,
		color:   color,
		display: display,
		source:  source,
		pending: make(map[document.ID][]lint.Annotation),
		shown:   make(map[document.ID][]lint.Annotation),
	}
}

// Clear implements store.Sink.
func (s *TerminalSink) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.pending)
	return nil
}

// Set implements store.Sink.
func (s *TerminalSink) Set(_ context.Context, id document.ID, annotations []lint.Annotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[id] = slices.Clone(annotations)
	return nil
}

// Flush implements store.Flusher.
func (s *TerminalSink) Flush(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		changed []lint.FileResult
		sources = make(map[string][]byte)
	)
	ids := slices.Collect(maps.Keys(s.pending))
	for id := range s.shown {
		// Dropped since the previous flush: report it as clean.
		if _, ok := s.pending[id]; !ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	for _, id := range ids {
		anns, current := s.pending[id]
		prev, shown := s.shown[id]
		if current && shown && slices.Equal(prev, anns) {
			continue
		}
		if !current && len(prev) == 0 {
			continue
		}
		name := s.display(id)
		src := s.source(id)
		sources[name] = src
		changed = append(changed, lint.FileResult{
			File:        name,
			Lines:       lint.CountLines(string(src)),
			Annotations: anns,
		})
	}

	s.shown = maps.Clone(s.pending)

	for _, r := range changed {
		var line string
		switch n := len(r.Annotations); n {
		case 0:
			line = fmt.Sprintf("%s: no suggestions\n", r.File)
		case 1:
			line = fmt.Sprintf("%s: 1 suggestion\n", r.File)
		default:
			line = fmt.Sprintf("%s: %d suggestions\n", r.File, n)
		}
		if _, err := io.WriteString(s.out, line); err != nil {
			return err
		}
		if err := reporter.PrintText(s.out, []lint.FileResult{r}, sources, s.color); err != nil {
			return err
		}
	}
	return nil
}
