package reporter

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/tinovyatkin/writegood/internal/lint"
	"github.com/tinovyatkin/writegood/internal/writegood"
)

const (
	sarifToolName = "write-good"
	sarifToolURI  = "https://github.com/tinovyatkin/writegood"
)

// WriteSARIF writes results as a SARIF 2.1.0 log with one rule per check.
func WriteSARIF(w io.Writer, results []lint.FileResult, toolVersion string) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("create sarif report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(sarifToolName, sarifToolURI)
	if toolVersion != "" {
		run.Tool.Driver.Version = &toolVersion
	}
	for _, c := range writegood.Checks() {
		run.AddRule(c.Name).
			WithDescription(c.Explanation).
			WithDefaultConfiguration(sarif.NewReportingConfiguration().WithLevel("warning"))
	}
	// Messages that match no explanation fall back to a generic rule.
	run.AddRule(sarifToolName).WithDescription("prose suggestion")

	for _, r := range results {
		artifact := filepath.ToSlash(r.File)
		for _, a := range r.Annotations {
			run.CreateResultForRule(checkFor(a.Message)).
				WithLevel("warning").
				WithMessage(sarif.NewTextMessage(a.Message)).
				AddLocation(sarif.NewLocationWithPhysicalLocation(
					sarif.NewPhysicalLocation().
						WithArtifactLocation(sarif.NewSimpleArtifactLocation(artifact)).
						WithRegion(sarif.NewRegion().
							WithStartLine(a.Range.Start.Line + 1).
							WithStartColumn(a.Range.Start.Column + 1).
							WithEndLine(a.Range.End.Line + 1).
							WithEndColumn(a.Range.End.Column + 1)),
				))
		}
	}

	report.AddRun(run)
	return report.PrettyWrite(w)
}
