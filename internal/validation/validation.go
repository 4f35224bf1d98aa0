// internal/validation/validation.go
package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind is the wire type a field is validated and normalized as.
type Kind int

const (
	String Kind = iota
	Number
	Integer
	Date
	ObjectID
)

// Errors aggregates every per-field message produced for one request body.
type Errors []string

func (e Errors) Error() string {
	return strings.Join(e, ", ")
}

// Rule describes the constraints for a single document field.
type Rule struct {
	Name     string // JSON field name
	Label    string // human label used in messages ("donor ID")
	Kind     Kind
	Required bool
	Lower    bool // lower-case after trimming (email)
	MaxLen   int  // maximum length for string fields
	Min      *float64
	Max      *float64
	GT       *float64 // exclusive lower bound
	Enum     []string
	Message  string // overrides the generated range message
	Default  any    // applied on create when the field is absent
}

// Getter resolves a field by name against some document view. The second
// return reports whether the field is set at all, so cross-field rules
// can skip checks that involve optional fields.
type Getter func(name string) (any, bool)

// CrossRule checks a relation between fields. It returns a message, or
// "" when the rule holds.
type CrossRule func(get Getter) string

// Table is the full rule set for one entity. The same table backs the
// HTTP handlers (request shaping) and the store boundary (re-check on
// write), so both layers produce identical messages.
type Table struct {
	Entity      string
	Rules       []Rule
	Cross       []CrossRule // checked on every write against the merged document
	CrossCreate []CrossRule // checked only when the document is first created
}

// Document holds the normalized field values that passed validation.
// Strings are trimmed, numbers are float64 (int for Integer rules),
// dates are time.Time and identifier fields are primitive.ObjectID.
type Document map[string]any

func (d Document) get(name string) (any, bool) {
	v, ok := d[name]
	return v, ok
}

// ValidateCreate checks a full creation payload: all required fields
// must be present, defaults are applied for omitted optional fields and
// every cross-field rule (including create-only ones) runs. All
// failures are collected, not just the first.
func (t *Table) ValidateCreate(body map[string]any) (Document, Errors) {
	doc := Document{}
	var errs Errors

	for _, r := range t.Rules {
		raw, ok := body[r.Name]
		if !ok || raw == nil {
			if r.Required {
				errs = append(errs, fmt.Sprintf("%s is required", capFirst(r.label())))
			} else if r.Default != nil {
				doc[r.Name] = r.Default
			}
			continue
		}
		v, msg := r.check(raw)
		if msg != "" {
			errs = append(errs, msg)
			continue
		}
		doc[r.Name] = v
	}

	if len(errs) > 0 {
		return nil, errs
	}

	errs = append(errs, t.runCross(doc.get, t.CrossCreate)...)
	errs = append(errs, t.runCross(doc.get, t.Cross)...)
	if len(errs) > 0 {
		return nil, errs
	}
	return doc, nil
}

// ValidatePartial checks an update payload. Only the fields present in
// the body are validated; required fields may be absent but may not be
// set to an empty value. Cross-field rules are not run here: the caller
// applies the patch first and re-validates the merged document.
func (t *Table) ValidatePartial(body map[string]any) (Document, Errors) {
	doc := Document{}
	var errs Errors

	for _, r := range t.Rules {
		raw, ok := body[r.Name]
		if !ok || raw == nil {
			continue
		}
		v, msg := r.check(raw)
		if msg != "" {
			errs = append(errs, msg)
			continue
		}
		doc[r.Name] = v
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return doc, nil
}

// ValidateDocument re-checks a complete document at the store boundary.
// Defaults are not applied and create-only rules are skipped, so the
// same document stays valid across updates.
func (t *Table) ValidateDocument(m map[string]any) Errors {
	var errs Errors
	doc := Document{}

	for _, r := range t.Rules {
		raw, ok := m[r.Name]
		if !ok || raw == nil {
			if r.Required {
				errs = append(errs, fmt.Sprintf("%s is required", capFirst(r.label())))
			}
			continue
		}
		v, msg := r.check(raw)
		if msg != "" {
			errs = append(errs, msg)
			continue
		}
		doc[r.Name] = v
	}

	if len(errs) > 0 {
		return errs
	}
	return t.runCross(doc.get, t.Cross)
}

func (t *Table) runCross(get Getter, rules []CrossRule) Errors {
	var errs Errors
	for _, cr := range rules {
		if msg := cr(get); msg != "" {
			errs = append(errs, msg)
		}
	}
	return errs
}

func (r Rule) label() string {
	if r.Label != "" {
		return r.Label
	}
	return r.Name
}

// check normalizes a single raw JSON value and verifies the rule's
// constraints, returning the normalized value or a message.
func (r Rule) check(raw any) (any, string) {
	label := r.label()

	switch r.Kind {
	case String:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Sprintf("%s must be a string", capFirst(label))
		}
		s = strings.TrimSpace(s)
		if r.Lower {
			s = strings.ToLower(s)
		}
		if s == "" && r.Required {
			return nil, fmt.Sprintf("%s is required", capFirst(label))
		}
		if r.MaxLen > 0 && len(s) > r.MaxLen {
			return nil, fmt.Sprintf("%s must be at most %d characters", capFirst(label), r.MaxLen)
		}
		if len(r.Enum) > 0 && !contains(r.Enum, s) {
			if r.Message != "" {
				return nil, r.Message
			}
			return nil, fmt.Sprintf("%s must be one of: %s", capFirst(label), strings.Join(r.Enum, ", "))
		}
		return s, ""

	case Number, Integer:
		v, ok := Num(raw)
		if !ok {
			return nil, fmt.Sprintf("%s must be a number", capFirst(label))
		}
		if r.Kind == Integer && math.Trunc(v) != v {
			return nil, fmt.Sprintf("%s must be an integer", capFirst(label))
		}
		if r.GT != nil && v <= *r.GT {
			if r.Message != "" {
				return nil, r.Message
			}
			return nil, fmt.Sprintf("%s must be greater than %s", capFirst(label), formatNum(*r.GT))
		}
		if r.Min != nil && v < *r.Min {
			if r.Message != "" {
				return nil, r.Message
			}
			return nil, fmt.Sprintf("%s must be at least %s", capFirst(label), formatNum(*r.Min))
		}
		if r.Max != nil && v > *r.Max {
			if r.Message != "" {
				return nil, r.Message
			}
			return nil, fmt.Sprintf("%s must be at most %s", capFirst(label), formatNum(*r.Max))
		}
		if r.Kind == Integer {
			return int(v), ""
		}
		return v, ""

	case Date:
		switch d := raw.(type) {
		case time.Time:
			return d, ""
		case string:
			if parsed, err := time.Parse(time.RFC3339, d); err == nil {
				return parsed, ""
			}
			if parsed, err := time.Parse("2006-01-02", d); err == nil {
				return parsed, ""
			}
		}
		return nil, fmt.Sprintf("%s must be a valid date", capFirst(label))

	case ObjectID:
		switch id := raw.(type) {
		case primitive.ObjectID:
			return id, ""
		case string:
			oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
			if err == nil {
				return oid, ""
			}
		}
		return nil, fmt.Sprintf("Invalid %s", label)
	}

	return raw, ""
}

// Num coerces the numeric representations a decoded JSON body or a Go
// struct can carry, including numeric strings.
func Num(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Time extracts a time.Time from a document value.
func Time(raw any) (time.Time, bool) {
	t, ok := raw.(time.Time)
	return t, ok
}

// Float is a helper for rule literals.
func Float(v float64) *float64 {
	return &v
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func capFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
