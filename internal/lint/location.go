package lint

// Position is a zero-based point in a document. Column counts UTF-16 code
// units from the start of the line.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Range spans [Start, End) within a document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NewLineRange creates a range covering columns [startCol, endCol) of one line.
func NewLineRange(line, startCol, endCol int) Range {
	return Range{
		Start: Position{Line: line, Column: startCol},
		End:   Position{Line: line, Column: endCol},
	}
}

