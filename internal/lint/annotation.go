package lint

// Severity is the importance of an annotation.
type Severity string

// SeverityWarning is the only severity prose findings carry.
const SeverityWarning Severity = "warning"

// Annotation is a positioned, human readable finding within a document.
type Annotation struct {
	Range    Range    `json:"range"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Finding is a single analyzer result relative to the line it was found on.
type Finding struct {
	// LineOffset is the line within the analyzed text, normally 0 for
	// single-line analysis.
	LineOffset int
	// ColumnStart is the first flagged UTF-16 code unit.
	ColumnStart int
	// Length is the number of flagged UTF-16 code units.
	Length int
	// Message explains the finding.
	Message string
}

// FileResult contains the annotations found in a single file.
type FileResult struct {
	// File is the path of the linted file.
	File string `json:"file"`
	// Lines is the number of lines in the file.
	Lines int `json:"lines"`
	// Annotations are the findings, ordered by position.
	Annotations []Annotation `json:"annotations"`
}
