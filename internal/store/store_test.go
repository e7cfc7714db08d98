package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinovyatkin/writegood/internal/document"
	"github.com/tinovyatkin/writegood/internal/lint"
)

func ann(line int, msg string) lint.Annotation {
	return lint.Annotation{Range: lint.NewLineRange(line, 0, 1), Message: msg, Severity: lint.SeverityWarning}
}

func TestReplaceAndRemove(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s := New(clock)
	id := document.ID("file:///a.md")

	_, ok := s.LastAnalyzedAt(id)
	assert.False(t, ok)

	s.Replace(id, []lint.Annotation{ann(0, "x")})
	at, ok := s.LastAnalyzedAt(id)
	require.True(t, ok)
	assert.Equal(t, clock.Now(), at)

	clock.Advance(time.Second)
	s.Replace(id, nil)
	e, ok := s.Get(id)
	require.True(t, ok)
	assert.Empty(t, e.Annotations, "last completed analysis wins")
	assert.Equal(t, clock.Now(), e.AnalyzedAt)

	s.Remove(id)
	s.Remove(id)
	_, ok = s.Get(id)
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}

func TestReplaceCopiesAnnotations(t *testing.T) {
	t.Parallel()

	s := New(nil)
	anns := []lint.Annotation{ann(0, "x")}
	s.Replace("a", anns)
	anns[0].Message = "changed"

	e, _ := s.Get("a")
	assert.Equal(t, "x", e.Annotations[0].Message)
}

func TestFlushAll(t *testing.T) {
	t.Parallel()

	s := New(nil)
	sink := NewMemorySink()
	ctx := context.Background()

	s.Replace("file:///b.md", []lint.Annotation{ann(1, "b")})
	s.Replace("file:///a.md", []lint.Annotation{ann(0, "a")})
	require.NoError(t, s.FlushAll(ctx, sink))
	assert.Equal(t, map[document.ID][]lint.Annotation{
		"file:///a.md": {ann(0, "a")},
		"file:///b.md": {ann(1, "b")},
	}, sink.Shown())
	assert.Equal(t, 1, sink.Flushes())

	s.Remove("file:///a.md")
	require.NoError(t, s.FlushAll(ctx, sink))
	assert.Equal(t, map[document.ID][]lint.Annotation{
		"file:///b.md": {ann(1, "b")},
	}, sink.Shown())
	assert.Equal(t, []document.ID{"file:///b.md"}, s.IDs())
}

type recordingSink struct {
	calls  []string
	setErr error
}

func (r *recordingSink) Clear(context.Context) error {
	r.calls = append(r.calls, "clear")
	return nil
}

func (r *recordingSink) Set(_ context.Context, id document.ID, _ []lint.Annotation) error {
	r.calls = append(r.calls, "set "+string(id))
	return r.setErr
}

func TestFlushAllOrderWithoutFlusher(t *testing.T) {
	t.Parallel()

	s := New(nil)
	s.Replace("c", nil)
	s.Replace("a", nil)
	s.Replace("b", nil)

	sink := &recordingSink{}
	require.NoError(t, s.FlushAll(context.Background(), sink))
	assert.Equal(t, []string{"clear", "set a", "set b", "set c"}, sink.calls)
}

func TestFlushAllPropagatesErrors(t *testing.T) {
	t.Parallel()

	s := New(nil)
	s.Replace("a", nil)

	boom := errors.New("boom")
	err := s.FlushAll(context.Background(), &recordingSink{setErr: boom})
	assert.ErrorIs(t, err, boom)
}

// blockingSink parks in Set until release is closed.
type blockingSink struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSink) Clear(context.Context) error { return nil }

func (b *blockingSink) Set(context.Context, document.ID, []lint.Annotation) error {
	b.entered <- struct{}{}
	<-b.release
	return nil
}

func TestFlushAllReleasesStoreDuringSink(t *testing.T) {
	t.Parallel()

	s := New(nil)
	s.Replace("a", []lint.Annotation{ann(0, "a")})

	sink := &blockingSink{entered: make(chan struct{}, 1), release: make(chan struct{})}
	flushed := make(chan error, 1)
	go func() { flushed <- s.FlushAll(context.Background(), sink) }()
	<-sink.entered

	// Mutations proceed while the sink is busy.
	s.Replace("b", []lint.Annotation{ann(1, "b")})
	s.Remove("a")
	assert.Equal(t, []document.ID{"b"}, s.IDs())

	// A second flush waits for the first one to finish.
	second := make(chan error, 1)
	go func() { second <- s.FlushAll(context.Background(), NewMemorySink()) }()
	select {
	case <-second:
		t.Fatal("concurrent flush did not wait")
	case <-time.After(50 * time.Millisecond):
	}

	close(sink.release)
	require.NoError(t, <-flushed)
	require.NoError(t, <-second)
}
