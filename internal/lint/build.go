package lint

import (
	"fmt"
	"strings"
)

// Build analyzes text line by line and returns its annotations ordered by
// line, then by analyzer order within the line. Line i of text is reported
// as line startingLine+i.
//
// Lines are separated by "\n" with an optional preceding "\r". Build is all
// or nothing: the first analyzer error aborts it with no partial result.
func Build(a Analyzer, text string, opts Options, startingLine int) ([]Annotation, error) {
	annotations := make([]Annotation, 0)
	if text == "" {
		return annotations, nil
	}

	for i, line := range SplitLines(text) {
		findings, err := a.AnalyzeLine(line, opts)
		if err != nil {
			return nil, fmt.Errorf("analyze line %d: %w", startingLine+i, err)
		}
		for _, f := range findings {
			ln := startingLine + i + f.LineOffset
			annotations = append(annotations, Annotation{
				Range:    NewLineRange(ln, f.ColumnStart, f.ColumnStart+f.Length),
				Message:  f.Message,
				Severity: SeverityWarning,
			})
		}
	}
	return annotations, nil
}

// SplitLines splits text on "\n", dropping a "\r" that ends a line.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// CountLines returns the number of lines in text, 0 for empty text.
func CountLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
