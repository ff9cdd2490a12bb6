// ABOUTME: Form controller for the create/edit modal of a master-data screen
// ABOUTME: Owns the draft, runs schema validation, picks create vs update
package screens

import (
	"errors"
	"math"
	"strconv"

	"github.com/voyagehq/tripdesk/api"
	"github.com/voyagehq/tripdesk/schema"
)

// Form owns one in-progress draft. The draft holds wire values (strings,
// the shape a select or text control edits); coercion back to domain
// values happens once, at submit, through the schema.
type Form struct {
	Schema schema.Schema

	// ID is zero in create mode and the record's identifier in edit mode.
	ID     int64
	Draft  map[string]string
	Errors map[string]string

	// Generic is the backend failure message when no field map came back.
	Generic string

	open bool
}

// OpenCreate starts a create-mode draft from the schema defaults.
func (f *Form) OpenCreate(s schema.Schema) {
	f.Schema = s
	f.ID = 0
	f.Draft = s.Defaults()
	f.Errors = nil
	f.Generic = ""
	f.open = true
}

// OpenEdit starts an edit-mode draft from an existing record's flat field
// map, coercing every stored value to its wire form: numbers and foreign
// keys become strings a select control can hold, booleans become
// "true"/"false".
func (f *Form) OpenEdit(s schema.Schema, id int64, record map[string]any) {
	draft := make(map[string]string, len(s.Fields))
	for _, field := range s.Fields {
		draft[field.Name] = wireValue(record[field.Name])
	}
	f.Schema = s
	f.ID = id
	f.Draft = draft
	f.Errors = nil
	f.Generic = ""
	f.open = true
}

func (f *Form) IsOpen() bool   { return f.open }
func (f *Form) IsCreate() bool { return f.ID == 0 }
func (f *Form) Close()         { f.open = false }

// Set updates one draft field and clears its recorded error.
func (f *Form) Set(name, wire string) {
	if f.Draft == nil {
		return
	}
	f.Draft[name] = wire
	delete(f.Errors, name)
}

// Validate runs the client-side checks. It returns false and records the
// problems when the draft must not be submitted yet.
func (f *Form) Validate() bool {
	problems := f.Schema.Validate(f.Draft)
	if len(problems) > 0 {
		f.Errors = problems
		return false
	}
	f.Errors = nil
	return true
}

// BeginSubmit validates and coerces the draft into the payload to send.
// It returns false, leaving the problems recorded on the form, when the
// draft must not be submitted yet. The caller runs the create or update
// (based on IsCreate) and hands the outcome to Finish.
func (f *Form) BeginSubmit() (map[string]any, bool) {
	if !f.Validate() {
		return nil, false
	}
	payload, err := f.Schema.Payload(f.Draft)
	if err != nil {
		f.Generic = err.Error()
		return nil, false
	}
	return payload, true
}

// Finish applies a submit result. Success closes the form; the caller is
// expected to refetch its list. Failure keeps the form open with the
// draft intact, surfacing the backend's field errors where it sent any.
func (f *Form) Finish(err error) bool {
	if err != nil {
		f.fail(err)
		return false
	}
	f.Close()
	return true
}

// fail records a submit failure without touching the draft.
func (f *Form) fail(err error) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		fieldErrors := make(map[string]string, len(apiErr.Fields))
		for field, msgs := range apiErr.Fields {
			if len(msgs) > 0 {
				fieldErrors[field] = msgs[0]
			}
		}
		f.Errors = fieldErrors
		f.Generic = apiErr.Message
		return
	}
	f.Generic = "operation failed: " + err.Error()
}

func wireValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int64:
		return schema.RefToWire(val)
	case int:
		return schema.RefToWire(int64(val))
	case *int64:
		if val == nil {
			return ""
		}
		return schema.RefToWire(*val)
	case float64:
		// json.Unmarshal hands numbers over as float64.
		if val == math.Trunc(val) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}
