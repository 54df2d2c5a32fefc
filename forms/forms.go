// Package forms maps the query parameters of a Swagger operation to
// template input tags.
package forms

import (
	"fmt"
	"io"
	"iter"

	"github.com/masnyjimmy/qforms/swagger"
)

type Kind string

const (
	TextInput    Kind = "text-input"
	DateInput    Kind = "date-input"
	BooleanInput Kind = "boolean-input"
	ChoiceInput  Kind = "choice-input"
)

const FormatDateTime = "date-time"

// KindFor picks the input kind for a parameter. Checks run in order:
// date-time format, boolean type, non-empty enum. Everything else,
// numbers included, is a text input.
func KindFor(p swagger.Parameter) Kind {
	switch {
	case p.Format == FormatDateTime:
		return DateInput
	case p.Type == "boolean":
		return BooleanInput
	case len(p.Enum) > 0:
		return ChoiceInput
	default:
		return TextInput
	}
}

// Tag renders a tag. The name is not escaped.
func Tag(kind Kind, name string) string {
	return fmt.Sprintf(`<%s name="%s"></%s>`, kind, name, kind)
}

// LabeledTag renders a tag with a label attribute, or a plain Tag when
// label is empty.
func LabeledTag(kind Kind, name, label string) string {
	if label == "" {
		return Tag(kind, name)
	}
	return fmt.Sprintf(`<%s name="%s" label="%s"></%s>`, kind, name, label, kind)
}

// Tags yields one tag per query parameter of op, in declaration order.
func Tags(op *swagger.Operation) iter.Seq[string] {
	return LabeledTags(op, nil)
}

// LabeledTags is Tags with labels looked up by parameter name.
func LabeledTags(op *swagger.Operation, labels map[string]string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, p := range op.Parameters {
			if !p.IsQuery() {
				continue
			}
			if !yield(LabeledTag(KindFor(p), p.Name, labels[p.Name])) {
				return
			}
		}
	}
}

func Write(w io.Writer, lines iter.Seq[string]) error {
	for line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
