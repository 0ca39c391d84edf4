package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Field roles resolved from the column names.
const (
	RoleID        = "id"
	RoleLatitude  = "latitude"
	RoleLongitude = "longitude"
	RoleLabel     = "label"
)

// ErrFieldNotFound is returned when a required column cannot be located by name.
var ErrFieldNotFound = errors.New("required field not found")

// FieldNotFoundError names the role that could not be resolved and the keywords that were tried.
type FieldNotFoundError struct {
	Role     string
	Keywords []string
}

func (e *FieldNotFoundError) Error() string {
	if len(e.Keywords) == 0 {
		return fmt.Sprintf("%s: %s", ErrFieldNotFound, e.Role)
	}

	return fmt.Sprintf("%s: %s (no column name contains %q)", ErrFieldNotFound, e.Role, e.Keywords)
}

func (e *FieldNotFoundError) Unwrap() error { return ErrFieldNotFound }

// Field is a resolved column: its position in the schema and its name.
type Field struct {
	Index int
	Name  string
}

// Fields holds the four columns the pipeline needs.
type Fields struct {
	ID        Field
	Latitude  Field
	Longitude Field
	Label     Field
}

// FindField returns the first column whose lower-cased name contains any of the keywords.
// Matching follows column order, so the first candidate in the schema wins.
func FindField(columns []string, keywords ...string) (Field, bool) {
	for idx, name := range columns {
		lower := strings.ToLower(name)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return Field{Index: idx, Name: name}, true
			}
		}
	}

	return Field{}, false
}

// ResolveFields locates the id, latitude, longitude and label columns.
//
// The id is the first column unconditionally; longitude is the first name containing "long",
// latitude the first containing "lat" and the label the first containing "place" or "city".
// A *FieldNotFoundError is returned for the first role that cannot be located.
func ResolveFields(columns []string) (Fields, error) {
	if len(columns) == 0 {
		return Fields{}, &FieldNotFoundError{Role: RoleID}
	}

	fields := Fields{ID: Field{Index: 0, Name: columns[0]}}

	lookups := []struct {
		role     string
		target   *Field
		keywords []string
	}{
		{role: RoleLongitude, target: &fields.Longitude, keywords: []string{"long"}},
		{role: RoleLatitude, target: &fields.Latitude, keywords: []string{"lat"}},
		{role: RoleLabel, target: &fields.Label, keywords: []string{"place", "city"}},
	}

	for _, lookup := range lookups {
		field, ok := FindField(columns, lookup.keywords...)
		if !ok {
			return Fields{}, &FieldNotFoundError{Role: lookup.role, Keywords: lookup.keywords}
		}
		*lookup.target = field
	}

	return fields, nil
}
