package forms

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/masnyjimmy/qforms/swagger"
)

func TestKindFor(t *testing.T) {
	tests := []struct {
		name  string
		param swagger.Parameter
		want  Kind
	}{
		{"date-time", swagger.Parameter{Type: "string", Format: "date-time"}, DateInput},
		{"boolean", swagger.Parameter{Type: "boolean"}, BooleanInput},
		{"enum", swagger.Parameter{Type: "string", Enum: []any{"a", "b"}}, ChoiceInput},
		{"empty enum", swagger.Parameter{Type: "string", Enum: []any{}}, TextInput},
		{"plain string", swagger.Parameter{Type: "string"}, TextInput},
		{"number", swagger.Parameter{Type: "number"}, TextInput},
		{"integer", swagger.Parameter{Type: "integer"}, TextInput},
		{"date-time wins over boolean", swagger.Parameter{Type: "boolean", Format: "date-time"}, DateInput},
		{"boolean wins over enum", swagger.Parameter{Type: "boolean", Enum: []any{true}}, BooleanInput},
		{"date-time wins over enum", swagger.Parameter{Type: "string", Format: "date-time", Enum: []any{"x"}}, DateInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindFor(tt.param); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestTag(t *testing.T) {
	got := Tag(DateInput, "starttime")
	want := `<date-input name="starttime"></date-input>`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	got = Tag(TextInput, `a"b<c>`)
	want = `<text-input name="a"b<c>"></text-input>`
	if got != want {
		t.Errorf("Expected name verbatim, got %s", got)
	}
}

func TestLabeledTags(t *testing.T) {
	labels := map[string]string{
		"starttime": "Start Time",
		"magtype":   "Magnitude Type",
		"eventid":   "ignored, not a query parameter",
	}

	got := slices.Collect(LabeledTags(eventOperation(), labels))
	want := []string{
		`<date-input name="starttime" label="Start Time"></date-input>`,
		`<text-input name="minmag"></text-input>`,
		`<choice-input name="magtype" label="Magnitude Type"></choice-input>`,
		`<boolean-input name="includearrivals"></boolean-input>`,
	}

	if !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func eventOperation() *swagger.Operation {
	return &swagger.Operation{
		Parameters: []swagger.Parameter{
			{Name: "starttime", In: swagger.InQuery, Type: "string", Format: "date-time"},
			{Name: "eventid", In: swagger.InPath, Type: "string"},
			{Name: "minmag", In: swagger.InQuery, Type: "number"},
			{Name: "magtype", In: swagger.InQuery, Type: "string", Enum: []any{"ML", "Mw"}},
			{Name: "X-Trace", In: swagger.InHeader, Type: "string"},
			{Name: "includearrivals", In: swagger.InQuery, Type: "boolean"},
		},
	}
}

func TestTags(t *testing.T) {
	got := slices.Collect(Tags(eventOperation()))
	want := []string{
		`<date-input name="starttime"></date-input>`,
		`<text-input name="minmag"></text-input>`,
		`<choice-input name="magtype"></choice-input>`,
		`<boolean-input name="includearrivals"></boolean-input>`,
	}

	if !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestTagsRestartable(t *testing.T) {
	seq := Tags(eventOperation())

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	if !slices.Equal(first, second) {
		t.Errorf("Expected identical runs, got %v and %v", first, second)
	}
}

func TestTagsStopsEarly(t *testing.T) {
	count := 0
	for range Tags(eventOperation()) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("Expected to stop after 2 tags, got %d", count)
	}
}

func TestTagsNoQueryParams(t *testing.T) {
	op := &swagger.Operation{
		Parameters: []swagger.Parameter{
			{Name: "id", In: swagger.InPath, Type: "string"},
			{Name: "payload", In: swagger.InBody},
		},
	}

	if got := slices.Collect(Tags(op)); len(got) != 0 {
		t.Errorf("Expected no tags, got %v", got)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer

	op := &swagger.Operation{
		Parameters: []swagger.Parameter{
			{Name: "starttime", In: swagger.InQuery, Type: "string", Format: "date-time"},
			{Name: "endtime", In: swagger.InQuery, Type: "string"},
		},
	}

	if err := Write(&buf, Tags(op)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := "<date-input name=\"starttime\"></date-input>\n<text-input name=\"endtime\"></text-input>\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

type failingWriter struct{}

var errWrite = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestWriteError(t *testing.T) {
	if err := Write(failingWriter{}, Tags(eventOperation())); !errors.Is(err, errWrite) {
		t.Errorf("Expected write error, got %v", err)
	}
}
