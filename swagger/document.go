package swagger

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

type ParamIn string

const (
	InQuery    ParamIn = "query"
	InPath     ParamIn = "path"
	InHeader   ParamIn = "header"
	InFormData ParamIn = "formData"
	InBody     ParamIn = "body"
)

type Parameter struct {
	Name        string  `json:"name" yaml:"name"`
	In          ParamIn `json:"in" yaml:"in"`
	Type        string  `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string  `json:"format,omitempty" yaml:"format,omitempty"`
	Enum        []any   `json:"enum,omitempty" yaml:"enum,omitempty"`
	Required    bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`

	// keys absent from the decoded document
	missing []string
}

func (p Parameter) IsQuery() bool { return p.In == InQuery }

// UnmarshalYAML implements BytesUnmarshaler for goccy/go-yaml
func (p *Parameter) UnmarshalYAML(data []byte) error {
	type plain Parameter

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out plain
	if err := yaml.Unmarshal(data, &out); err != nil {
		return err
	}

	*p = Parameter(out)
	p.missing = missingKeys(raw, "name", "in", "type")
	return nil
}

// check reports the keys needed to render p that the document left out.
// Only "in" is needed for every parameter; "name" and "type" matter for
// query parameters, and "type" is never read for date-time ones.
func (p Parameter) check() error {
	if slices.Contains(p.missing, "in") {
		return fmt.Errorf("parameter %q: missing key \"in\"", p.Name)
	}
	if !p.IsQuery() {
		return nil
	}
	if slices.Contains(p.missing, "name") {
		return errors.New(`query parameter: missing key "name"`)
	}
	if p.Format != "date-time" && slices.Contains(p.missing, "type") {
		return fmt.Errorf("query parameter %q: missing key \"type\"", p.Name)
	}
	return nil
}

type Operation struct {
	OperationID string      `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Summary     string      `json:"summary,omitempty" yaml:"summary,omitempty"`
	Parameters  []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	hasParameters bool
}

// UnmarshalYAML implements BytesUnmarshaler for goccy/go-yaml
func (o *Operation) UnmarshalYAML(data []byte) error {
	type plain Operation

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out plain
	if err := yaml.Unmarshal(data, &out); err != nil {
		return err
	}

	*o = Operation(out)
	o.hasParameters = len(missingKeys(raw, "parameters")) == 0
	return nil
}

// Check fails when the operation lacks a key the converter reads.
func (o *Operation) Check() error {
	if !o.hasParameters {
		return fmt.Errorf(`%w: missing key "parameters"`, ErrMalformedOperation)
	}
	for idx, p := range o.Parameters {
		if err := p.check(); err != nil {
			return fmt.Errorf("%w: parameters[%d]: %w", ErrMalformedOperation, idx, err)
		}
	}
	return nil
}

// missingKeys lists the keys that are absent or null in raw.
func missingKeys(raw map[string]any, keys ...string) []string {
	var out []string
	for _, key := range keys {
		if v, ok := raw[key]; !ok || v == nil {
			out = append(out, key)
		}
	}
	return out
}

type PathItem struct {
	Get     *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put     *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post    *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Delete  *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options *Operation `json:"options,omitempty" yaml:"options,omitempty"`
	Head    *Operation `json:"head,omitempty" yaml:"head,omitempty"`
	Patch   *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
}

// Method returns the operation registered for an HTTP method, or nil.
func (p *PathItem) Method(method string) *Operation {
	switch strings.ToLower(method) {
	case "get":
		return p.Get
	case "put":
		return p.Put
	case "post":
		return p.Post
	case "delete":
		return p.Delete
	case "options":
		return p.Options
	case "head":
		return p.Head
	case "patch":
		return p.Patch
	default:
		return nil
	}
}

type Info struct {
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

type Document struct {
	Swagger  string              `json:"swagger,omitempty" yaml:"swagger,omitempty"`
	Info     Info                `json:"info,omitempty" yaml:"info,omitempty"`
	Host     string              `json:"host,omitempty" yaml:"host,omitempty"`
	BasePath string              `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	Paths    map[string]PathItem `json:"paths" yaml:"paths"`
}

var (
	ErrPathNotFound       = errors.New("path not found")
	ErrMethodNotFound     = errors.New("method not found")
	ErrMalformedOperation = errors.New("malformed operation")
)

// Load decodes a Swagger document. JSON input is accepted as YAML.
func Load(data []byte) (*Document, error) {
	var document Document

	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("Unable to parse document: %w", err)
	}

	return &document, nil
}

func (d *Document) Operation(path, method string) (*Operation, error) {
	item, ok := d.Paths[path]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPathNotFound, path)
	}

	op := item.Method(method)
	if op == nil {
		return nil, fmt.Errorf("%w: %s %q", ErrMethodNotFound, strings.ToUpper(method), path)
	}

	if err := op.Check(); err != nil {
		return nil, fmt.Errorf("%s %q: %w", strings.ToUpper(method), path, err)
	}

	return op, nil
}
