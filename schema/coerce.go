// ABOUTME: Coercion boundary between wire values and domain values
// ABOUTME: Select controls carry strings; the backend wants typed JSON fields
package schema

import (
	"fmt"
	"strconv"
	"time"
)

// Foreign keys live as strings while a draft is being edited (that is what
// a select control holds) and as integers on the wire. These two functions
// are the only place that conversion happens.

// RefToWire renders a stored foreign-key id as a draft select value. Zero
// and nil map to the empty selection.
func RefToWire(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// RefFromWire parses a draft select value back to a foreign-key id. The
// empty selection maps to zero.
func RefFromWire(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	return ParseWireInt(raw)
}

// ParseWireInt parses a numeric draft value.
func ParseWireInt(raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return n, nil
}

// Payload converts a validated draft into the flat JSON field map mutation
// endpoints accept: numbers and refs become integers, bools become bools,
// and empty optional values become nulls so the backend clears them.
func (s Schema) Payload(draft map[string]string) (map[string]any, error) {
	payload := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		raw := draft[f.Name]
		if raw == "" {
			if !f.Required {
				payload[f.Name] = nil
			}
			continue
		}
		switch f.Type {
		case Number:
			n, err := ParseWireInt(raw)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			payload[f.Name] = n
		case Ref:
			id, err := RefFromWire(raw)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			if id == 0 {
				payload[f.Name] = nil
			} else {
				payload[f.Name] = id
			}
		case Bool:
			payload[f.Name] = raw == "true"
		default:
			payload[f.Name] = raw
		}
	}
	return payload, nil
}

func validWireDate(raw string) bool {
	_, err := time.Parse("2006-01-02", raw)
	return err == nil
}
