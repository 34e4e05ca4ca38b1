package resource

import (
	"fmt"
	"strings"
)

// ValidationCode is a unique code for a model validation error.
type ValidationCode string

const (
	// ErrDuplicateResource indicates two resources share a type name.
	ErrDuplicateResource ValidationCode = "MDL101"
	// ErrDuplicateField indicates a field name appears twice on one resource.
	ErrDuplicateField ValidationCode = "MDL102"
	// ErrAmbiguousField indicates a field resolves to more than one of
	// attribute, relationship, or aggregate.
	ErrAmbiguousField ValidationCode = "MDL103"
	// ErrUndeclaredField indicates a definition exists for a name missing
	// from the resource's field list.
	ErrUndeclaredField ValidationCode = "MDL104"
	// ErrUnknownDestination indicates a relationship points at a resource
	// type not present in the model.
	ErrUnknownDestination ValidationCode = "MDL105"
	// ErrUnknownJoinResource indicates a relationship's join-through
	// resource is not present in the model.
	ErrUnknownJoinResource ValidationCode = "MDL106"
	// ErrDuplicateRouteParam indicates a route path repeats a parameter name.
	ErrDuplicateRouteParam ValidationCode = "MDL107"
	// ErrDanglingRelationshipRoute indicates a linkage-mutation route
	// references a relationship the resource does not define.
	ErrDanglingRelationshipRoute ValidationCode = "MDL108"
)

// ValidationError reports a structural problem in a resource model. All
// validation errors are fatal: a model that fails validation must not be
// handed to the compiler.
type ValidationError struct {
	Code     ValidationCode
	Resource string
	Field    string
	Message  string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Code, e.Message)
	if e.Resource != "" {
		fmt.Fprintf(&b, " (resource %q", e.Resource)
		if e.Field != "" {
			fmt.Fprintf(&b, ", field %q", e.Field)
		}
		b.WriteString(")")
	}
	return b.String()
}

func newValidationError(code ValidationCode, res, field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Code:     code,
		Resource: res,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Validate checks the structural invariants the compiler relies on:
// unique resource type names, unique field names per resource, every
// field resolving to exactly one definition, relationship destinations
// and join resources present in the model, and distinct parameter names
// per route. It returns the first violation found.
func (m *Model) Validate() error {
	seen := make(map[string]bool, len(m.Resources))
	for _, res := range m.Resources {
		if seen[res.Type] {
			return newValidationError(ErrDuplicateResource, res.Type, "",
				"resource type %q declared more than once", res.Type)
		}
		seen[res.Type] = true

		if err := m.validateResource(res); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) validateResource(res *ResourceDefinition) error {
	fields := make(map[string]bool, len(res.Fields))
	for _, name := range res.Fields {
		if fields[name] {
			return newValidationError(ErrDuplicateField, res.Type, name,
				"field %q declared more than once", name)
		}
		fields[name] = true

		classes := 0
		if res.Attribute(name) != nil {
			classes++
		}
		if res.Relationship(name) != nil {
			classes++
		}
		if res.Aggregate(name) != nil {
			classes++
		}
		if classes > 1 {
			return newValidationError(ErrAmbiguousField, res.Type, name,
				"field %q resolves to multiple definitions", name)
		}
	}

	// Definitions must be reachable through the field list, otherwise
	// they silently never make it into the schema.
	for name := range res.Attributes {
		if !fields[name] {
			return newValidationError(ErrUndeclaredField, res.Type, name,
				"attribute %q is not in the field list", name)
		}
	}
	for name := range res.Relationships {
		if !fields[name] {
			return newValidationError(ErrUndeclaredField, res.Type, name,
				"relationship %q is not in the field list", name)
		}
	}
	for name := range res.Aggregates {
		if !fields[name] {
			return newValidationError(ErrUndeclaredField, res.Type, name,
				"aggregate %q is not in the field list", name)
		}
	}

	for _, name := range res.Fields {
		rel := res.Relationship(name)
		if rel == nil {
			continue
		}
		if m.Resource(rel.Destination) == nil {
			return newValidationError(ErrUnknownDestination, res.Type, name,
				"relationship %q points at unknown resource %q", name, rel.Destination)
		}
		if rel.Through != "" && m.Resource(rel.Through) == nil {
			return newValidationError(ErrUnknownJoinResource, res.Type, name,
				"relationship %q joins through unknown resource %q", name, rel.Through)
		}
	}

	for _, route := range res.Routes {
		params := make(map[string]bool)
		for _, seg := range strings.Split(route.Path, "/") {
			if !strings.HasPrefix(seg, ":") {
				continue
			}
			name := strings.TrimPrefix(seg, ":")
			if params[name] {
				return newValidationError(ErrDuplicateRouteParam, res.Type, "",
					"route %s %s repeats parameter %q", route.Method, route.Path, name)
			}
			params[name] = true
		}

		if route.Kind.IsRelationshipMutation() && res.Relationship(route.Relationship) == nil {
			return newValidationError(ErrDanglingRelationshipRoute, res.Type, route.Relationship,
				"route %s %s references unknown relationship %q", route.Method, route.Path, route.Relationship)
		}
	}

	return nil
}
