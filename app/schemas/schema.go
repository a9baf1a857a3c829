package schemas

import (
	"fmt"
	"net/mail"
	"strings"
)

// Errors is the client-facing validation error body. Fields carries one
// entry per invalid field.
type Errors struct {
	Message string              `json:"message"`
	Fields  []map[string]string `json:"fields"`
}

func (e *Errors) add(field, reason string) {
	e.Fields = append(e.Fields, map[string]string{field: reason})
}

// Field declares the rules for a single string field.
type Field struct {
	Name     string
	Required bool
	MaxLen   int
	Enum     []string
	Email    bool
	Check    func(string) bool
	CheckMsg string
}

type Schema struct {
	Fields []Field
}

// Verify validates form against the declared fields, aggregating every
// violation instead of failing on the first. With partial set, required
// checks are skipped for absent fields (PATCH semantics). Keys outside the
// schema are rejected. On success the returned map holds only declared
// fields, as strings.
func (s Schema) Verify(form map[string]any, partial bool) (map[string]any, *Errors) {
	errs := &Errors{Message: "Validation error"}
	data := make(map[string]any, len(form))

	declared := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		declared[f.Name] = true
	}
	for key := range form {
		if !declared[key] {
			errs.add(key, "Unknown field.")
		}
	}

	for _, f := range s.Fields {
		raw, ok := form[f.Name]
		if !ok {
			if f.Required && !partial {
				errs.add(f.Name, "Missing data for required field.")
			}
			continue
		}
		value, ok := raw.(string)
		if !ok {
			errs.add(f.Name, "Not a valid string.")
			continue
		}
		if reason := f.validate(value); reason != "" {
			errs.add(f.Name, reason)
			continue
		}
		data[f.Name] = value
	}

	if len(errs.Fields) > 0 {
		return nil, errs
	}
	return data, nil
}

func (f Field) validate(value string) string {
	if f.MaxLen > 0 && len(value) > f.MaxLen {
		return fmt.Sprintf("Longer than maximum length %d.", f.MaxLen)
	}
	if f.Email {
		if addr, err := mail.ParseAddress(value); err != nil || addr.Address != value {
			return "Not a valid email address."
		}
	}
	if len(f.Enum) > 0 {
		found := false
		for _, allowed := range f.Enum {
			if value == allowed {
				found = true
				break
			}
		}
		if !found {
			return fmt.Sprintf("Must be one of: %s.", strings.Join(f.Enum, ", "))
		}
	}
	if f.Check != nil && !f.Check(value) {
		return f.CheckMsg
	}
	return ""
}
