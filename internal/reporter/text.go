package reporter

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tinovyatkin/writegood/internal/lint"
)

type textStyles struct {
	warning lipgloss.Style
	path    lipgloss.Style
	marker  lipgloss.Style
	muted   lipgloss.Style
}

func newTextStyles(w io.Writer, color bool) textStyles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return textStyles{
		warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		path:    r.NewStyle().Bold(true),
		marker:  r.NewStyle().Foreground(lipgloss.Color("214")),
		muted:   r.NewStyle().Faint(true),
	}
}

// PrintText writes annotations with source snippets, ordered by file and
// position.
//
// Example output:
//
//	WARNING: "is licensed" may be passive voice
//	README.md:3:6
//	--------------------
//	   1 |     # Title
//	   2 |
//	   3 | >>> This is licensed under the MIT license.
//	--------------------
func PrintText(w io.Writer, results []lint.FileResult, sources map[string][]byte, color bool) error {
	st := newTextStyles(w, color)

	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b lint.FileResult) int {
		return strings.Compare(a.File, b.File)
	})

	for _, r := range sorted {
		anns := slices.Clone(r.Annotations)
		slices.SortStableFunc(anns, comparePosition)
		for _, a := range anns {
			if err := printWarning(w, st, r.File, a, sources[r.File]); err != nil {
				return err
			}
		}
	}
	return nil
}

func comparePosition(a, b lint.Annotation) int {
	if a.Range.Start.Line != b.Range.Start.Line {
		return a.Range.Start.Line - b.Range.Start.Line
	}
	return a.Range.Start.Column - b.Range.Start.Column
}

// printWarning formats a single warning.
func printWarning(w io.Writer, st textStyles, file string, a lint.Annotation, source []byte) error {
	if _, err := fmt.Fprintf(w, "\n%s %s\n", st.warning.Render("WARNING:"), a.Message); err != nil {
		return err
	}
	header := fmt.Sprintf("%s:%d:%d", file, a.Range.Start.Line+1, a.Range.Start.Column+1)
	if _, err := fmt.Fprintln(w, st.path.Render(header)); err != nil {
		return err
	}
	if len(source) > 0 {
		return printSource(w, st, a.Range, source)
	}
	return nil
}

// printSource renders the source snippet with line highlighting:
//   - adds 2-4 lines of context padding
//   - marks affected lines with ">>>"
//   - uses 1-based line numbers in display (internally 0-based)
func printSource(w io.Writer, st textStyles, rng lint.Range, source []byte) error {
	lines := lint.SplitLines(string(source))

	start := rng.Start.Line + 1
	end := rng.End.Line + 1
	if end < start {
		end = start
	}

	if start > len(lines) || start < 1 {
		return nil
	}
	if end > len(lines) {
		end = len(lines)
	}

	pad := 2
	if end == start {
		pad = 4
	}

	affectedStart, affectedEnd := start, end
	p := 0
	for p < pad {
		if start > 1 {
			start--
			p++
		}
		if end < len(lines) {
			end++
			p++
		}
		p++
	}

	rule := st.muted.Render("--------------------")
	var b strings.Builder
	b.WriteString(rule + "\n")
	for i := start; i <= end; i++ {
		pfx := "   "
		if i >= affectedStart && i <= affectedEnd {
			pfx = st.marker.Render(">>>")
		}
		fmt.Fprintf(&b, " %3d | %s %s\n", i, pfx, lines[i-1])
	}
	b.WriteString(rule + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}
