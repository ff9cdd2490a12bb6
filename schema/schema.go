// ABOUTME: Field schema declarations for master-data screens
// ABOUTME: Each screen declares its fields once; forms are rendered from the schema
package schema

import "fmt"

// FieldType is the semantic type of a screen field.
type FieldType int

const (
	Text FieldType = iota
	Number
	Bool
	Date
	Select
	Ref
)

// Field describes one form field: how it renders, how it validates, and
// how its wire value maps onto the record.
type Field struct {
	Name     string
	Label    string
	Type     FieldType
	Required bool
	MaxLen   int

	// Options constrains Select fields to a fixed value set.
	Options []string

	// Ref names the referenced collection for foreign-key fields. The
	// referenced collection must be loaded before the field can offer
	// choices.
	Ref string

	// Default is the wire value a create-mode draft starts with.
	Default string
}

// Schema is the ordered field set of one screen.
type Schema struct {
	Resource string
	Fields   []Field
}

// Defaults returns a fresh create-mode draft: every field at its declared
// default, booleans without one at "false", except is_active which
// defaults on.
func (s Schema) Defaults() map[string]string {
	draft := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		switch {
		case f.Default != "":
			draft[f.Name] = f.Default
		case f.Type == Bool && f.Name == "is_active":
			draft[f.Name] = "true"
		case f.Type == Bool:
			draft[f.Name] = "false"
		default:
			draft[f.Name] = ""
		}
	}
	return draft
}

// Field looks a field up by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate runs the client-side checks a form performs before submitting:
// required presence, numeric parse, max length and option membership.
// Everything else is the backend's job. The result maps field name to a
// human-readable problem; an empty map means the draft may be submitted.
func (s Schema) Validate(draft map[string]string) map[string]string {
	problems := map[string]string{}
	for _, f := range s.Fields {
		raw := draft[f.Name]
		if raw == "" {
			if f.Required {
				problems[f.Name] = fmt.Sprintf("%s is required", f.Label)
			}
			continue
		}
		if f.MaxLen > 0 && len(raw) > f.MaxLen {
			problems[f.Name] = fmt.Sprintf("%s must be at most %d characters", f.Label, f.MaxLen)
			continue
		}
		switch f.Type {
		case Number, Ref:
			if _, err := ParseWireInt(raw); err != nil {
				problems[f.Name] = fmt.Sprintf("%s must be a number", f.Label)
			}
		case Bool:
			if raw != "true" && raw != "false" {
				problems[f.Name] = fmt.Sprintf("%s must be true or false", f.Label)
			}
		case Date:
			if !validWireDate(raw) {
				problems[f.Name] = fmt.Sprintf("%s must be YYYY-MM-DD", f.Label)
			}
		case Select:
			if len(f.Options) > 0 && !contains(f.Options, raw) {
				problems[f.Name] = fmt.Sprintf("%s must be one of %v", f.Label, f.Options)
			}
		}
	}
	return problems
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
