package validation

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaBytes []byte

var schema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft2020)

	var object any

	if err := json.Unmarshal(schemaBytes, &object); err != nil {
		panic(err)
	}

	if err := compiler.AddResource("qforms-schema.json", object); err != nil {
		panic(err)
	}

	schema = compiler.MustCompile("qforms-schema.json")
}

// Validate checks a JSON document against the parameter subset of Swagger 2.0.
func Validate(documentBytes []byte) error {
	var document any

	if err := json.Unmarshal(documentBytes, &document); err != nil {
		return fmt.Errorf("Unable to parse document: %w", err)
	}

	return schema.Validate(document)
}

// ValidateYAML converts YAML (or JSON) to JSON before validating.
func ValidateYAML(documentBytes []byte) error {
	jsonBytes, err := yaml.YAMLToJSON(documentBytes)
	if err != nil {
		return fmt.Errorf("Unable to convert document: %w", err)
	}

	return Validate(jsonBytes)
}
