// ABOUTME: Screen registry: one entry per master-data and workflow screen
// ABOUTME: Each screen is a schema plus list controller over a generic record map
package tui

import (
	"fmt"
	"strconv"

	"github.com/voyagehq/tripdesk/api"
	"github.com/voyagehq/tripdesk/schema"
	"github.com/voyagehq/tripdesk/screens"
)

// record is the generic row shape the TUI works with. Typed models serve
// the CLI and MCP surfaces; the screens here are rendered entirely from
// their schemas, so a flat field map is the natural shape.
type record = map[string]any

// Screen is one tab of the console.
type Screen struct {
	Title        string
	Tab          string
	Path         string
	Schema       schema.Schema
	Columns      []string
	SearchFields []string

	// Chains lists cascading field chains within the form, parent first
	// (country→state→city). Fields in a chain reload their children's
	// options on change.
	Chains [][]string

	// MultiTargetField marks the ref field that supports multi-target
	// create (the approval-matrix grade field). Empty everywhere else.
	MultiTargetField string

	// HasItinerary marks the travel-application screen, whose detail
	// view can drill into the grouped timeline.
	HasItinerary bool

	List *screens.List[record]
	res  api.Resource[record]
}

func recordID(rec record) int64 {
	return recordRefID(rec, "id")
}

// recordRefID reads a numeric foreign-key field off a decoded record.
func recordRefID(rec record, name string) int64 {
	switch v := rec[name].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case string:
		id, _ := strconv.ParseInt(v, 10, 64)
		return id
	default:
		return 0
	}
}

func recordField(rec record, name string) string {
	switch v := rec[name].(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "yes"
		}
		return "no"
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func recordActive(rec record) bool {
	active, ok := rec["is_active"].(bool)
	if !ok {
		return true
	}
	return active
}

func newScreen(client *api.Client, s Screen) *Screen {
	s.res = api.NewResource[record](client, s.Path)
	fields := s.SearchFields
	s.List = screens.NewList(func(rec record) []string {
		out := make([]string, 0, len(fields))
		for _, f := range fields {
			out = append(out, recordField(rec, f))
		}
		return out
	}, recordActive)
	return &s
}

func buildScreens(client *api.Client) []*Screen {
	activeField := schema.Field{Name: "is_active", Label: "Active", Type: schema.Bool}

	return []*Screen{
		newScreen(client, Screen{
			Title: "Companies", Tab: "Comp", Path: "/companies/",
			Schema: schema.Schema{Resource: "companies", Fields: []schema.Field{
				{Name: "name", Label: "Name", Type: schema.Text, Required: true, MaxLen: 100},
				{Name: "code", Label: "Code", Type: schema.Text, Required: true, MaxLen: 20},
				{Name: "address", Label: "Address", Type: schema.Text, MaxLen: 500},
				activeField,
			}},
			Columns:      []string{"name", "code", "is_active"},
			SearchFields: []string{"name", "code"},
		}),
		newScreen(client, Screen{
			Title: "Departments", Tab: "Dept", Path: "/departments/",
			Schema: schema.Schema{Resource: "departments", Fields: []schema.Field{
				{Name: "name", Label: "Name", Type: schema.Text, Required: true, MaxLen: 100},
				{Name: "code", Label: "Code", Type: schema.Text, MaxLen: 20},
				{Name: "company", Label: "Company", Type: schema.Ref, Required: true, Ref: "/companies/"},
				activeField,
			}},
			Columns:      []string{"name", "code", "is_active"},
			SearchFields: []string{"name", "code"},
		}),
		newScreen(client, Screen{
			Title: "Designations", Tab: "Desig", Path: "/designations/",
			Schema: schema.Schema{Resource: "designations", Fields: []schema.Field{
				{Name: "name", Label: "Name", Type: schema.Text, Required: true, MaxLen: 100},
				{Name: "department", Label: "Department", Type: schema.Ref, Required: true, Ref: "/departments/"},
				{Name: "grade", Label: "Grade", Type: schema.Ref, Ref: "/grades/"},
				activeField,
			}},
			Columns:      []string{"name", "is_active"},
			SearchFields: []string{"name"},
		}),
		newScreen(client, Screen{
			Title: "Countries", Tab: "Ctry", Path: "/countries/",
			Schema: schema.Schema{Resource: "countries", Fields: []schema.Field{
				{Name: "name", Label: "Name", Type: schema.Text, Required: true, MaxLen: 100},
				{Name: "code", Label: "Code", Type: schema.Text, Required: true, MaxLen: 3},
				activeField,
			}},
			Columns:      []string{"name", "code", "is_active"},
			SearchFields: []string{"name", "code"},
		}),
		newScreen(client, Screen{
			Title: "States", Tab: "State", Path: "/states/",
			Schema: schema.Schema{Resource: "states", Fields: []schema.Field{
				{Name: "name", Label: "Name", Type: schema.Text, Required: true, MaxLen: 100},
				{Name: "country", Label: "Country", Type: schema.Ref, Required: true, Ref: "/countries/"},
				activeField,
			}},
			Columns:      []string{"name", "is_active"},
			SearchFields: []string{"name"},
		}),
		newScreen(client, Screen{
			Title: "Cities", Tab: "City", Path: "/cities/",
			Schema: schema.Schema{Resource: "cities", Fields: []schema.Field{
				{Name: "name", Label: "Name", Type: schema.Text, Required: true, MaxLen: 100},
				{Name: "state", Label: "State", Type: schema.Ref, Required: true, Ref: "/states/"},
				activeField,
			}},
			Columns:      []string{"name", "is_active"},
			SearchFields: []string{"name"},
		}),
		newScreen(client, Screen{
			Title: "Locations", Tab: "Loc", Path: "/locations/",
			Schema: schema.Schema{Resource: "locations", Fields: []schema.Field{
				{Name: "name", Label: "Name", Type: schema.Text, Required: true, MaxLen: 100},
				{Name: "code", Label: "Code", Type: schema.Text, MaxLen: 20},
				{Name: "country", Label: "Country", Type: schema.Ref, Ref: "/countries/"},
				{Name: "state", Label: "State", Type: schema.Ref, Ref: "/states/"},
				{Name: "city", Label: "City", Type: schema.Ref, Required: true, Ref: "/cities/"},
				{Name: "address", Label: "Address", Type: schema.Text, MaxLen: 500},
				activeField,
			}},
			Columns:      []string{"name", "code", "is_active"},
			SearchFields: []string{"name", "code"},
			Chains:       [][]string{{"country", "state", "city"}},
		}),
		newScreen(client, Screen{
			Title: "Grades", Tab: "Grade", Path: "/grades/",
			Schema: schema.Schema{Resource: "grades", Fields: []schema.Field{
				{Name: "name", Label: "Name", Type: schema.Text, Required: true, MaxLen: 50},
				{Name: "level", Label: "Level", Type: schema.Number, Required: true},
				activeField,
			}},
			Columns:      []string{"name", "level", "is_active"},
			SearchFields: []string{"name"},
		}),
		newScreen(client, Screen{
			Title: "Travel Modes", Tab: "Mode", Path: "/travel-modes/",
			Schema: schema.Schema{Resource: "travel-modes", Fields: []schema.Field{
				{Name: "name", Label: "Name", Type: schema.Text, Required: true, MaxLen: 50},
				{Name: "kind", Label: "Kind", Type: schema.Select, Required: true,
					Options: []string{"flight", "train", "car", "bus"}},
				activeField,
			}},
			Columns:      []string{"name", "kind", "is_active"},
			SearchFields: []string{"name", "kind"},
		}),
		newScreen(client, Screen{
			Title: "Approval Matrix", Tab: "Appr", Path: "/approval-matrices/",
			Schema: schema.Schema{Resource: "approval-matrices", Fields: []schema.Field{
				{Name: "grade", Label: "Grade", Type: schema.Ref, Required: true, Ref: "/grades/"},
				{Name: "company", Label: "Company", Type: schema.Ref, Required: true, Ref: "/companies/"},
				{Name: "level", Label: "Approval Level", Type: schema.Number, Required: true},
				{Name: "approver_designation", Label: "Approver", Type: schema.Ref, Required: true, Ref: "/designations/"},
				{Name: "min_amount", Label: "Min Amount", Type: schema.Number},
				{Name: "max_amount", Label: "Max Amount", Type: schema.Number},
				{Name: "effective_from", Label: "Effective From", Type: schema.Date},
				{Name: "effective_to", Label: "Effective To", Type: schema.Date},
				activeField,
			}},
			Columns:          []string{"level", "min_amount", "max_amount", "is_active"},
			SearchFields:     []string{"level"},
			MultiTargetField: "grade",
		}),
		newScreen(client, Screen{
			Title: "Conveyance Rates", Tab: "Conv", Path: "/conveyance-rates/",
			Schema: schema.Schema{Resource: "conveyance-rates", Fields: []schema.Field{
				{Name: "travel_mode", Label: "Travel Mode", Type: schema.Ref, Required: true, Ref: "/travel-modes/"},
				{Name: "grade", Label: "Grade", Type: schema.Ref, Required: true, Ref: "/grades/"},
				{Name: "rate_per_km", Label: "Rate per KM", Type: schema.Number, Required: true},
				{Name: "currency", Label: "Currency", Type: schema.Text, Required: true, MaxLen: 3, Default: "INR"},
				{Name: "effective_from", Label: "Effective From", Type: schema.Date},
				{Name: "effective_to", Label: "Effective To", Type: schema.Date},
				activeField,
			}},
			Columns:      []string{"rate_per_km", "currency", "effective_from", "effective_to", "is_active"},
			SearchFields: []string{"currency"},
		}),
		newScreen(client, Screen{
			Title: "Accommodations", Tab: "Accom", Path: "/accommodations/",
			Schema: schema.Schema{Resource: "accommodations", Fields: []schema.Field{
				{Name: "name", Label: "Name", Type: schema.Text, Required: true, MaxLen: 100},
				{Name: "kind", Label: "Kind", Type: schema.Select, Required: true,
					Options: []string{"hotel", "guest_house"}, Default: "hotel"},
				{Name: "city", Label: "City", Type: schema.Ref, Required: true, Ref: "/cities/"},
				{Name: "address", Label: "Address", Type: schema.Text, MaxLen: 500},
				{Name: "contact_name", Label: "Contact Name", Type: schema.Text, MaxLen: 100},
				{Name: "contact_phone", Label: "Contact Phone", Type: schema.Text, MaxLen: 20},
				{Name: "tariff_single", Label: "Tariff (Single)", Type: schema.Number},
				{Name: "tariff_double", Label: "Tariff (Double)", Type: schema.Number},
				{Name: "contract_from", Label: "Contract From", Type: schema.Date},
				{Name: "contract_to", Label: "Contract To", Type: schema.Date},
				activeField,
			}},
			Columns:      []string{"name", "kind", "contact_phone", "is_active"},
			SearchFields: []string{"name", "contact_name"},
		}),
		newScreen(client, Screen{
			Title: "Users", Tab: "User", Path: "/users/",
			Schema: schema.Schema{Resource: "users", Fields: []schema.Field{
				{Name: "name", Label: "Name", Type: schema.Text, Required: true, MaxLen: 100},
				{Name: "email", Label: "Email", Type: schema.Text, Required: true, MaxLen: 100},
				{Name: "employee_code", Label: "Employee Code", Type: schema.Text, Required: true, MaxLen: 20},
				{Name: "company", Label: "Company", Type: schema.Ref, Required: true, Ref: "/companies/"},
				{Name: "department", Label: "Department", Type: schema.Ref, Ref: "/departments/"},
				{Name: "designation", Label: "Designation", Type: schema.Ref, Ref: "/designations/"},
				{Name: "grade", Label: "Grade", Type: schema.Ref, Ref: "/grades/"},
				{Name: "location", Label: "Location", Type: schema.Ref, Ref: "/locations/"},
				{Name: "is_admin", Label: "Admin", Type: schema.Bool},
				activeField,
			}},
			Columns:      []string{"name", "email", "employee_code", "is_active"},
			SearchFields: []string{"name", "email", "employee_code"},
			Chains:       [][]string{{"company", "department", "designation"}},
		}),
		newScreen(client, Screen{
			Title: "Travel Applications", Tab: "Travel", Path: "/travel-applications/",
			Schema: schema.Schema{Resource: "travel-applications", Fields: []schema.Field{
				{Name: "applicant", Label: "Applicant", Type: schema.Ref, Required: true, Ref: "/users/"},
				{Name: "purpose", Label: "Purpose", Type: schema.Text, Required: true, MaxLen: 500},
				{Name: "from_date", Label: "From", Type: schema.Date, Required: true},
				{Name: "to_date", Label: "To", Type: schema.Date, Required: true},
				{Name: "advance_amount", Label: "Advance", Type: schema.Number},
			}},
			Columns:      []string{"purpose", "status", "from_date", "to_date"},
			SearchFields: []string{"purpose", "status"},
			HasItinerary: true,
		}),
	}
}
