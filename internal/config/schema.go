package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed settings.schema.json
var schemaJSON []byte

const schemaURL = "https://github.com/tinovyatkin/writegood/settings.schema.json"

// Schema returns the JSON Schema describing the configuration.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse settings schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add settings schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// ValidationError lists the schema violations of a configuration.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// Validate checks a configuration tree against the settings schema.
// The tree is round-tripped through JSON so values from any provider
// (TOML integers, editor JSON numbers) are validated alike.
func Validate(tree map[string]any) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode configuration: %w", err)
	}

	err = sch.Validate(inst)
	var verr *jsonschema.ValidationError
	if errors.As(err, &verr) {
		return &ValidationError{Problems: leafProblems(verr)}
	}
	return err
}

var printer = message.NewPrinter(language.English)

// leafProblems flattens the error tree to its most specific causes.
func leafProblems(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		loc := "/" + strings.Join(verr.InstanceLocation, "/")
		return []string{fmt.Sprintf("%s: %s", loc, verr.ErrorKind.LocalizedString(printer))}
	}
	var out []string
	for _, c := range verr.Causes {
		out = append(out, leafProblems(c)...)
	}
	return out
}
