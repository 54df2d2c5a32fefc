package forms

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/masnyjimmy/qforms/swagger"
)

var ErrUnknownParameter = errors.New("unknown query parameter")

// Value is one submitted form field.
type Value struct {
	Name  string
	Value string
}

// ParseValue splits a "name=value" pair.
func ParseValue(pair string) (Value, error) {
	name, value, ok := strings.Cut(pair, "=")
	if !ok || name == "" {
		return Value{}, fmt.Errorf("Invalid value %q, expected name=value", pair)
	}
	return Value{Name: name, Value: value}, nil
}

// Submitted reports whether a field belongs in the query string. Fields
// whose name starts with "_" are form helpers, and empty fields are unset.
func Submitted(v Value) bool {
	return !strings.HasPrefix(v.Name, "_") && v.Value != ""
}

// ActionURL is the service endpoint a form for path submits to. Without a
// host it is relative: basePath + path.
func ActionURL(doc *swagger.Document, path string) string {
	action := doc.BasePath + path
	if doc.Host != "" {
		action = "http://" + doc.Host + action
	}
	return action
}

// QueryURL builds the request URL for submitting values to op. Submitted
// values are ordered by the operation's parameter declarations; repeated
// names keep their relative order. Names that are not query parameters of
// op are rejected.
func QueryURL(doc *swagger.Document, path string, op *swagger.Operation, values []Value) (string, error) {
	byName := make(map[string][]string)

	for _, v := range values {
		if !Submitted(v) {
			continue
		}
		byName[v.Name] = append(byName[v.Name], v.Value)
	}

	var query []string

	for _, p := range op.Parameters {
		if !p.IsQuery() {
			continue
		}
		for _, value := range byName[p.Name] {
			query = append(query, url.QueryEscape(p.Name)+"="+url.QueryEscape(value))
		}
		delete(byName, p.Name)
	}

	for _, v := range values {
		if _, ok := byName[v.Name]; ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownParameter, v.Name)
		}
	}

	action := ActionURL(doc, path)
	if len(query) == 0 {
		return action, nil
	}
	return action + "?" + strings.Join(query, "&"), nil
}
