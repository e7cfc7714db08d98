package lspserver

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
	"go.lsp.dev/protocol"

	"github.com/tinovyatkin/writegood/internal/document"
	"github.com/tinovyatkin/writegood/internal/lint"
	"github.com/tinovyatkin/writegood/internal/store"
)

const diagnosticSource = "write-good"

var errNotConnected = errors.New("lsp: diagnostics collection is not connected")

// Notifier sends JSON-RPC notifications. jsonrpc2.Conn satisfies it.
type Notifier interface {
	Notify(ctx context.Context, method string, params any) error
}

// Collection is the LSP rendering surface. Clear and Set are buffered and
// Flush publishes the difference to the client: every buffered document,
// plus an empty diagnostics array for documents published before but no
// longer present.
type Collection struct {
	log logrus.FieldLogger

	mu        sync.Mutex
	notifier  Notifier
	pending   map[document.ID][]lint.Annotation
	published map[document.ID]struct{}
}

var (
	_ store.Sink    = (*Collection)(nil)
	_ store.Flusher = (*Collection)(nil)
)

// NewCollection creates a disconnected collection.
func NewCollection(logger logrus.FieldLogger) *Collection {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Collection{
		log:       logger,
		pending:   make(map[document.ID][]lint.Annotation),
		published: make(map[document.ID]struct{}),
	}
}

func (c *Collection) attach(n Notifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifier = n
}

// Clear implements store.Sink.
func (c *Collection) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.pending)
	return nil
}

// Set implements store.Sink.
func (c *Collection) Set(_ context.Context, id document.ID, annotations []lint.Annotation) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[id] = slices.Clone(annotations)
	return nil
}

// Flush implements store.Flusher.
func (c *Collection) Flush(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.notifier == nil {
		return errNotConnected
	}

	var errs []error
	for _, id := range slices.Sorted(maps.Keys(c.pending)) {
		if err := c.publish(ctx, id, convertDiagnostics(c.pending[id])); err != nil {
			errs = append(errs, err)
		}
	}
	for _, id := range slices.Sorted(maps.Keys(c.published)) {
		if _, ok := c.pending[id]; ok {
			continue
		}
		if err := c.publish(ctx, id, []protocol.Diagnostic{}); err != nil {
			errs = append(errs, err)
		}
	}

	clear(c.published)
	for id := range c.pending {
		c.published[id] = struct{}{}
	}
	return errors.Join(errs...)
}

// Reset clears every published document on the client.
func (c *Collection) Reset(ctx context.Context) error {
	if err := c.Clear(ctx); err != nil {
		return err
	}
	return c.Flush(ctx)
}

func (c *Collection) publish(ctx context.Context, id document.ID, diagnostics []protocol.Diagnostic) error {
	if err := c.notifier.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         id.URI(),
		Diagnostics: diagnostics,
	}); err != nil {
		c.log.WithError(err).WithField("document", id).Warn("lsp: failed to publish diagnostics")
		return fmt.Errorf("publish diagnostics for %s: %w", id, err)
	}
	return nil
}

// convertDiagnostics converts annotations to LSP diagnostics.
func convertDiagnostics(annotations []lint.Annotation) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(annotations))
	for _, a := range annotations {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    annotationRange(a.Range),
			Severity: protocol.DiagnosticSeverityWarning,
			Source:   diagnosticSource,
			Message:  a.Message,
		})
	}
	return diagnostics
}

// annotationRange converts a zero-based annotation range to an LSP Range.
// Both use UTF-16 columns, so only the integer width changes.
func annotationRange(r lint.Range) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: clampUint32(r.Start.Line), Character: clampUint32(r.Start.Column)},
		End:   protocol.Position{Line: clampUint32(r.End.Line), Character: clampUint32(r.End.Column)},
	}
}

// clampUint32 safely converts an int to uint32, clamping negative values to 0.
func clampUint32(v int) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v) //nolint:gosec // line/column numbers are well within uint32 range
}
