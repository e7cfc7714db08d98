// Package reporter provides output formatters for lint results.
package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tinovyatkin/writegood/internal/lint"
	"github.com/tinovyatkin/writegood/internal/writegood"
)

// Format selects an output formatter.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatSARIF Format = "sarif"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatText, FormatJSON, FormatSARIF}

// ParseFormat resolves a format name case-insensitively.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want one of text, json, sarif)", name)
}

// Options configures Write.
type Options struct {
	Format Format
	// Color enables ANSI styling in text output.
	Color bool
	// Sources maps FileResult.File to file content for text snippets.
	Sources map[string][]byte
	// ToolVersion is recorded in SARIF output.
	ToolVersion string
}

// Write renders results in the selected format.
func Write(w io.Writer, results []lint.FileResult, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		return PrintText(w, results, opts.Sources, opts.Color)
	case FormatJSON:
		return WriteJSON(w, results)
	case FormatSARIF:
		return WriteSARIF(w, results, opts.ToolVersion)
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// Count returns the number of annotations across results.
func Count(results []lint.FileResult) int {
	n := 0
	for _, r := range results {
		n += len(r.Annotations)
	}
	return n
}

// checkFor maps an annotation message back to the check that produced it.
// Merged messages resolve to the first explanation they contain.
func checkFor(message string) string {
	best, bestAt := "", -1
	for _, c := range writegood.Checks() {
		at := strings.Index(message, c.Explanation)
		if at >= 0 && (bestAt < 0 || at < bestAt) {
			best, bestAt = c.Name, at
		}
	}
	if best == "" {
		return "write-good"
	}
	return best
}
