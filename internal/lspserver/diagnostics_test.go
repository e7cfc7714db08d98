package lspserver

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"

	"github.com/tinovyatkin/writegood/internal/document"
	"github.com/tinovyatkin/writegood/internal/lint"
)

type recordingNotifier struct {
	mu        sync.Mutex
	published []*protocol.PublishDiagnosticsParams
	err       error
}

func (n *recordingNotifier) Notify(_ context.Context, method string, params any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	if method == protocol.MethodTextDocumentPublishDiagnostics {
		n.published = append(n.published, params.(*protocol.PublishDiagnosticsParams))
	}
	return nil
}

func (n *recordingNotifier) take() []*protocol.PublishDiagnosticsParams {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.published
	n.published = nil
	return out
}

func newTestCollection(t *testing.T) (*Collection, *recordingNotifier) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	c := NewCollection(logger)
	n := &recordingNotifier{}
	c.attach(n)
	return c, n
}

func TestCollectionFlushPublishesPending(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c, n := newTestCollection(t)

	a := document.ID("file:///tmp/a.md")
	b := document.ID("file:///tmp/b.md")
	ann := lint.Annotation{Range: lint.NewLineRange(2, 4, 9), Message: "m", Severity: lint.SeverityWarning}

	require.NoError(t, c.Clear(ctx))
	require.NoError(t, c.Set(ctx, b, []lint.Annotation{ann}))
	require.NoError(t, c.Set(ctx, a, nil))
	assert.Empty(t, n.take(), "Set must not publish before Flush")

	require.NoError(t, c.Flush(ctx))
	got := n.take()
	require.Len(t, got, 2)
	assert.Equal(t, protocol.DocumentURI(a), got[0].URI)
	assert.Empty(t, got[0].Diagnostics)
	assert.NotNil(t, got[0].Diagnostics)
	assert.Equal(t, protocol.DocumentURI(b), got[1].URI)
	require.Len(t, got[1].Diagnostics, 1)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 2, Character: 4},
		End:   protocol.Position{Line: 2, Character: 9},
	}, got[1].Diagnostics[0].Range)
	assert.Equal(t, diagnosticSource, got[1].Diagnostics[0].Source)
}

func TestCollectionFlushClearsRemovedDocuments(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c, n := newTestCollection(t)

	a := document.ID("file:///tmp/a.md")
	b := document.ID("file:///tmp/b.md")
	require.NoError(t, c.Set(ctx, a, nil))
	require.NoError(t, c.Set(ctx, b, nil))
	require.NoError(t, c.Flush(ctx))
	n.take()

	require.NoError(t, c.Clear(ctx))
	require.NoError(t, c.Set(ctx, a, nil))
	require.NoError(t, c.Flush(ctx))

	got := n.take()
	require.Len(t, got, 2)
	assert.Equal(t, protocol.DocumentURI(a), got[0].URI)
	assert.Equal(t, protocol.DocumentURI(b), got[1].URI)
	assert.Empty(t, got[1].Diagnostics)

	// b is gone now and is not cleared twice.
	require.NoError(t, c.Clear(ctx))
	require.NoError(t, c.Set(ctx, a, nil))
	require.NoError(t, c.Flush(ctx))
	assert.Len(t, n.take(), 1)
}

func TestCollectionReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c, n := newTestCollection(t)

	a := document.ID("file:///tmp/a.md")
	require.NoError(t, c.Set(ctx, a, []lint.Annotation{{Message: "m"}}))
	require.NoError(t, c.Flush(ctx))
	n.take()

	require.NoError(t, c.Reset(ctx))
	got := n.take()
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Diagnostics)
}

func TestCollectionNotConnected(t *testing.T) {
	t.Parallel()
	logger, _ := test.NewNullLogger()
	c := NewCollection(logger)
	require.NoError(t, c.Set(context.Background(), "file:///tmp/a.md", nil))
	assert.ErrorIs(t, c.Flush(context.Background()), errNotConnected)
}

func TestCollectionNotifyError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c, n := newTestCollection(t)
	boom := errors.New("boom")
	n.err = boom

	require.NoError(t, c.Set(ctx, "file:///tmp/a.md", nil))
	assert.ErrorIs(t, c.Flush(ctx), boom)
}

func TestAnnotationRangeClampsNegative(t *testing.T) {
	t.Parallel()
	got := annotationRange(lint.Range{
		Start: lint.Position{Line: -1, Column: -3},
		End:   lint.Position{Line: 0, Column: 4},
	})
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 0, Character: 4},
	}, got)
}

func TestDocumentStore(t *testing.T) {
	t.Parallel()
	s := NewDocumentStore()
	id := document.ID("file:///tmp/a.md")

	_, ok := s.Update(id, 2, "x")
	assert.False(t, ok)

	s.Open(id, "markdown", 1, "first")
	doc, ok := s.Update(id, 2, "second")
	require.True(t, ok)
	assert.Equal(t, int32(2), doc.Version)
	assert.Equal(t, document.Document{ID: id, LanguageID: "markdown", Text: "second"}, doc.Snapshot())

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, "second", got.Text)
	assert.Equal(t, 1, s.Len())

	s.Close(id)
	_, ok = s.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}
