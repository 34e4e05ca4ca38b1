package schema

import (
	"fmt"
	"strings"
)

// ErrorCode is a unique code for a schema compilation error.
type ErrorCode string

const (
	// ErrUnknownField indicates a declared field resolved to neither
	// attribute, relationship, nor aggregate.
	ErrUnknownField ErrorCode = "SCH001"
	// ErrUnimplementedType indicates an attribute type with no schema
	// mapping, even after normalizing to its storage representation.
	ErrUnimplementedType ErrorCode = "SCH002"
	// ErrUnsupportedRouteShape indicates a route whose path parameters
	// the compiler does not support.
	ErrUnsupportedRouteShape ErrorCode = "SCH003"
)

// CompileError is a fatal schema compilation error. Compilation aborts at
// the first error and yields no partial document: schema generation runs
// at build or startup time, and a misconfigured model should stop the
// operator immediately rather than degrade into an incomplete document.
type CompileError struct {
	// Code is the unique error code (e.g. "SCH001").
	Code ErrorCode
	// Kind is a machine-readable error type identifier.
	Kind string
	// Resource is the type name of the resource being compiled.
	Resource string
	// Field is the field involved, when the error is field-scoped.
	Field string
	// Route describes the route involved, when the error is route-scoped.
	Route string
	// Message is the primary error message.
	Message string
	// Suggestion provides a hint for fixing the error.
	Suggestion string
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Code, e.Message)
	var scope []string
	if e.Resource != "" {
		scope = append(scope, fmt.Sprintf("resource %q", e.Resource))
	}
	if e.Field != "" {
		scope = append(scope, fmt.Sprintf("field %q", e.Field))
	}
	if e.Route != "" {
		scope = append(scope, fmt.Sprintf("route %s", e.Route))
	}
	if len(scope) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(scope, ", "))
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "; %s", e.Suggestion)
	}
	return b.String()
}

// NewUnknownField creates an SCH001 error.
func NewUnknownField(resourceType, field string) *CompileError {
	return &CompileError{
		Code:       ErrUnknownField,
		Kind:       "unknown_field",
		Resource:   resourceType,
		Field:      field,
		Message:    fmt.Sprintf("field %q has no attribute, relationship, or aggregate definition", field),
		Suggestion: "remove the field from the field list or add a matching definition",
	}
}

// NewUnimplementedType creates an SCH002 error.
func NewUnimplementedType(resourceType, field, typeName string) *CompileError {
	return &CompileError{
		Code:       ErrUnimplementedType,
		Kind:       "unimplemented_type",
		Resource:   resourceType,
		Field:      field,
		Message:    fmt.Sprintf("type %q has no schema mapping", typeName),
		Suggestion: "give the type a storage representation that maps to a schema primitive",
	}
}

// NewUnsupportedRouteShape creates an SCH003 error.
func NewUnsupportedRouteShape(resourceType, route string, params []string) *CompileError {
	return &CompileError{
		Code:     ErrUnsupportedRouteShape,
		Kind:     "unsupported_route_shape",
		Resource: resourceType,
		Route:    route,
		Message: fmt.Sprintf("routes with path parameters %v are not supported; only [] or [id] are",
			params),
	}
}
