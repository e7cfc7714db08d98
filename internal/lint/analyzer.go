// Package lint turns prose analyzer findings into positioned annotations.
package lint

import (
	"encoding/json"
	"fmt"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tinovyatkin/writegood/internal/writegood"
)

// Options are passed through to the analyzer unchanged.
type Options map[string]any

// Analyzer analyzes a single line of text.
type Analyzer interface {
	AnalyzeLine(line string, opts Options) ([]Finding, error)
}

// AnalyzerFunc adapts a function to the Analyzer interface.
type AnalyzerFunc func(line string, opts Options) ([]Finding, error)

// AnalyzeLine calls f.
func (f AnalyzerFunc) AnalyzeLine(line string, opts Options) ([]Finding, error) {
	return f(line, opts)
}

// WriteGood is the Analyzer backed by the write-good checks.
type WriteGood struct{}

// AnalyzeLine runs every enabled write-good check against line.
func (WriteGood) AnalyzeLine(line string, opts Options) ([]Finding, error) {
	suggestions, err := writegood.Suggest(line, writegood.Options(opts))
	if err != nil {
		return nil, err
	}
	findings := make([]Finding, 0, len(suggestions))
	for _, s := range suggestions {
		findings = append(findings, Finding{
			ColumnStart: s.Index,
			Length:      s.Offset,
			Message:     s.Reason,
		})
	}
	return findings, nil
}

type cacheKey struct {
	options string
	line    string
}

// CachedAnalyzer memoizes the findings of a deterministic Analyzer.
// Editors re-send whole documents on every keystroke, so most lines are
// analyzed again unchanged.
type CachedAnalyzer struct {
	next  Analyzer
	cache *lru.Cache[cacheKey, []Finding]
}

// NewCachedAnalyzer wraps next with an LRU cache holding up to size lines.
func NewCachedAnalyzer(next Analyzer, size int) (*CachedAnalyzer, error) {
	cache, err := lru.New[cacheKey, []Finding](size)
	if err != nil {
		return nil, fmt.Errorf("create analysis cache: %w", err)
	}
	return &CachedAnalyzer{next: next, cache: cache}, nil
}

// AnalyzeLine returns cached findings when the same line was analyzed with
// equal options before. Errors are never cached.
func (c *CachedAnalyzer) AnalyzeLine(line string, opts Options) ([]Finding, error) {
	fingerprint, err := json.Marshal(opts)
	if err != nil {
		return c.next.AnalyzeLine(line, opts)
	}
	key := cacheKey{options: string(fingerprint), line: line}
	if findings, ok := c.cache.Get(key); ok {
		return slices.Clone(findings), nil
	}
	findings, err := c.next.AnalyzeLine(line, opts)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, slices.Clone(findings))
	return findings, nil
}

// Len returns the number of cached lines.
func (c *CachedAnalyzer) Len() int {
	return c.cache.Len()
}
