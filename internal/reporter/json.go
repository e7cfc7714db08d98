package reporter

import (
	"encoding/json"
	"io"

	"github.com/tinovyatkin/writegood/internal/lint"
)

// jsonReport is the top-level document of JSON output.
type jsonReport struct {
	Files   []lint.FileResult `json:"files"`
	Summary jsonSummary       `json:"summary"`
}

type jsonSummary struct {
	Files       int `json:"files"`
	Annotations int `json:"annotations"`
}

// WriteJSON writes results as an indented JSON document.
func WriteJSON(w io.Writer, results []lint.FileResult) error {
	files := make([]lint.FileResult, 0, len(results))
	for _, r := range results {
		if r.Annotations == nil {
			r.Annotations = []lint.Annotation{}
		}
		files = append(files, r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		Files: files,
		Summary: jsonSummary{
			Files:       len(results),
			Annotations: Count(results),
		},
	})
}
