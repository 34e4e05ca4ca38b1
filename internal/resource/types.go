// Package resource defines the immutable resource model consumed by the
// schema compiler. A Model describes every API resource: its attributes,
// relationships, aggregates, and the HTTP routes it exposes. The model is
// assembled by a loader (or directly in code) and validated once; the
// compiler never mutates it.
package resource

// TypeKind identifies the shape of a type descriptor.
type TypeKind string

const (
	// TypeString is a plain string attribute.
	TypeString TypeKind = "string"
	// TypeBoolean is a boolean attribute.
	TypeBoolean TypeKind = "boolean"
	// TypeInteger is an integer attribute.
	TypeInteger TypeKind = "integer"
	// TypeDateTime is an ISO-8601 timestamp attribute.
	TypeDateTime TypeKind = "datetime"
	// TypeUUID is a UUID attribute.
	TypeUUID TypeKind = "uuid"
	// TypeArray is a homogeneous list; Elem holds the element type.
	TypeArray TypeKind = "array"
	// TypeCustom is an application-defined type that normalizes to a
	// storage representation; Storage holds that representation.
	TypeCustom TypeKind = "custom"
)

// TypeDescriptor is a tagged variant describing an attribute type.
type TypeDescriptor struct {
	Kind TypeKind `json:"kind" yaml:"kind"`

	// Elem is the element type when Kind is TypeArray.
	Elem *TypeDescriptor `json:"elem,omitempty" yaml:"elem,omitempty"`

	// Name is the declared name when Kind is TypeCustom.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Storage is the underlying representation a custom type normalizes
	// to. A nil Storage on a custom type is a configuration error that
	// surfaces during compilation.
	Storage *TypeDescriptor `json:"storage,omitempty" yaml:"storage,omitempty"`
}

// StringType returns a string type descriptor.
func StringType() TypeDescriptor { return TypeDescriptor{Kind: TypeString} }

// BooleanType returns a boolean type descriptor.
func BooleanType() TypeDescriptor { return TypeDescriptor{Kind: TypeBoolean} }

// IntegerType returns an integer type descriptor.
func IntegerType() TypeDescriptor { return TypeDescriptor{Kind: TypeInteger} }

// DateTimeType returns a date-time type descriptor.
func DateTimeType() TypeDescriptor { return TypeDescriptor{Kind: TypeDateTime} }

// UUIDType returns a UUID type descriptor.
func UUIDType() TypeDescriptor { return TypeDescriptor{Kind: TypeUUID} }

// ArrayOf returns an array type descriptor wrapping elem.
func ArrayOf(elem TypeDescriptor) TypeDescriptor {
	return TypeDescriptor{Kind: TypeArray, Elem: &elem}
}

// CustomType returns a custom type descriptor with the given storage
// representation.
func CustomType(name string, storage TypeDescriptor) TypeDescriptor {
	return TypeDescriptor{Kind: TypeCustom, Name: name, Storage: &storage}
}

// String renders the descriptor for diagnostics.
func (t TypeDescriptor) String() string {
	switch t.Kind {
	case TypeArray:
		if t.Elem == nil {
			return "array<?>"
		}
		return "array<" + t.Elem.String() + ">"
	case TypeCustom:
		return t.Name
	default:
		return string(t.Kind)
	}
}

// AttributeDefinition describes a scalar or array field on a resource.
type AttributeDefinition struct {
	Name string         `json:"name"`
	Type TypeDescriptor `json:"type"`

	// Nullable marks the attribute as allowed to be null; non-nullable
	// attributes are required in the resource's canonical schema.
	Nullable bool `json:"nullable"`

	// Writable attributes may appear in create and update payloads.
	Writable bool `json:"writable"`

	// HasDefault marks attributes whose value is filled in server-side
	// when omitted.
	HasDefault bool `json:"has_default"`

	// Generated marks attributes computed by the server and never
	// accepted from clients even on create.
	Generated bool `json:"generated"`
}

// Cardinality is the arity of a relationship.
type Cardinality string

const (
	// One is a to-one relationship.
	One Cardinality = "one"
	// Many is a to-many relationship.
	Many Cardinality = "many"
)

// RelationshipDefinition describes a link from one resource to another.
type RelationshipDefinition struct {
	Name        string      `json:"name"`
	Cardinality Cardinality `json:"cardinality"`

	// Destination is the type name of the related resource.
	Destination string `json:"destination"`

	// Through names an intermediate join resource for many-to-many
	// relationships. Empty when the relationship is direct.
	Through string `json:"through,omitempty"`

	// JoinAttributes are the attribute names on the join resource that
	// may be written through relationship payloads as linkage meta.
	JoinAttributes []string `json:"join_attributes,omitempty"`
}

// AggregateKind identifies an aggregate computation over related data.
type AggregateKind string

const (
	AggregateCount  AggregateKind = "count"
	AggregateSum    AggregateKind = "sum"
	AggregateAvg    AggregateKind = "avg"
	AggregateExists AggregateKind = "exists"
	AggregateFirst  AggregateKind = "first"
	AggregateMin    AggregateKind = "min"
	AggregateMax    AggregateKind = "max"
	AggregateList   AggregateKind = "list"
)

// AggregateDefinition describes a computed, read-only field.
type AggregateDefinition struct {
	Name string        `json:"name"`
	Kind AggregateKind `json:"kind"`
}

// ResultType returns the type descriptor an aggregate evaluates to. The
// mapping is fixed per kind so aggregate fields schema out the same way
// everywhere.
func (a AggregateDefinition) ResultType() TypeDescriptor {
	switch a.Kind {
	case AggregateCount, AggregateSum, AggregateAvg:
		return IntegerType()
	case AggregateExists:
		return BooleanType()
	case AggregateList:
		return ArrayOf(StringType())
	default:
		return StringType()
	}
}

// RouteKind identifies the semantic of a route, independent of its HTTP
// method.
type RouteKind string

const (
	RouteIndex                  RouteKind = "index"
	RouteGet                    RouteKind = "get"
	RoutePost                   RouteKind = "post"
	RoutePatch                  RouteKind = "patch"
	RouteDelete                 RouteKind = "delete"
	RoutePostToRelationship     RouteKind = "post_to_relationship"
	RoutePatchRelationship      RouteKind = "patch_relationship"
	RouteDeleteFromRelationship RouteKind = "delete_from_relationship"
)

// IsListing reports whether the route returns a collection.
func (k RouteKind) IsListing() bool { return k == RouteIndex }

// IsRelationshipMutation reports whether the route mutates relationship
// linkage rather than resource bodies.
func (k RouteKind) IsRelationshipMutation() bool {
	switch k {
	case RoutePostToRelationship, RoutePatchRelationship, RouteDeleteFromRelationship:
		return true
	}
	return false
}

// IsReadOnly reports whether the route accepts no request body.
func (k RouteKind) IsReadOnly() bool {
	switch k {
	case RouteIndex, RouteGet, RouteDelete:
		return true
	}
	return false
}

// RouteDefinition describes one addressable operation on a resource.
type RouteDefinition struct {
	// Path is the route pattern relative to the API prefix. Parameter
	// segments carry a leading colon, e.g. "/posts/:id".
	Path string `json:"path"`

	Method string    `json:"method"`
	Kind   RouteKind `json:"kind"`

	// Relationship names the relationship a linkage-mutation route
	// operates on. Empty for all other kinds.
	Relationship string `json:"relationship,omitempty"`
}

// FieldClass identifies which definition a field name resolves to.
type FieldClass int

const (
	// FieldUnknown means the field resolves to no definition.
	FieldUnknown FieldClass = iota
	// FieldAttribute means the field is an attribute.
	FieldAttribute
	// FieldRelationship means the field is a relationship.
	FieldRelationship
	// FieldAggregate means the field is an aggregate.
	FieldAggregate
)

// ResourceDefinition describes one API resource.
type ResourceDefinition struct {
	// Type is the resource's unique type name, e.g. "posts".
	Type string `json:"type"`

	// Fields lists field names in declaration order. Order is
	// significant: it drives sort-format and required-list ordering in
	// the generated schema.
	Fields []string `json:"fields"`

	Attributes    map[string]*AttributeDefinition    `json:"attributes"`
	Relationships map[string]*RelationshipDefinition `json:"relationships"`
	Aggregates    map[string]*AggregateDefinition    `json:"aggregates"`

	Routes []RouteDefinition `json:"routes"`

	// Exposed opts the resource into schema document generation.
	Exposed bool `json:"exposed"`
}

// Attribute returns the attribute definition for name, or nil.
func (r *ResourceDefinition) Attribute(name string) *AttributeDefinition {
	return r.Attributes[name]
}

// Relationship returns the relationship definition for name, or nil.
func (r *ResourceDefinition) Relationship(name string) *RelationshipDefinition {
	return r.Relationships[name]
}

// Aggregate returns the aggregate definition for name, or nil.
func (r *ResourceDefinition) Aggregate(name string) *AggregateDefinition {
	return r.Aggregates[name]
}

// ClassOf resolves a field name to its definition class.
func (r *ResourceDefinition) ClassOf(name string) FieldClass {
	if _, ok := r.Attributes[name]; ok {
		return FieldAttribute
	}
	if _, ok := r.Relationships[name]; ok {
		return FieldRelationship
	}
	if _, ok := r.Aggregates[name]; ok {
		return FieldAggregate
	}
	return FieldUnknown
}

// Model is the complete, immutable resource model for one API.
type Model struct {
	// Prefix is the API-wide path prefix joined ahead of every route
	// path, e.g. "/api/v1". May be empty.
	Prefix string `json:"prefix"`

	// Resources in declaration order.
	Resources []*ResourceDefinition `json:"resources"`
}

// Resource returns the resource with the given type name, or nil.
func (m *Model) Resource(typeName string) *ResourceDefinition {
	for _, r := range m.Resources {
		if r.Type == typeName {
			return r
		}
	}
	return nil
}

// Exposed returns the resources that participate in schema generation,
// in declaration order.
func (m *Model) Exposed() []*ResourceDefinition {
	var out []*ResourceDefinition
	for _, r := range m.Resources {
		if r.Exposed {
			out = append(out, r)
		}
	}
	return out
}
